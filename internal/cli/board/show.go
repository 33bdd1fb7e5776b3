package board

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/cli/styles"
	"github.com/thenoetrevino/cadence/internal/converters"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render a board as columns",
		RunE:  runShow,
	}

	cli.AddScopeFlag(cmd)
	cmd.Flags().Bool("plain", false, "Unstyled text output")
	cli.AddOutputFlags(cmd)
	return cmd
}

type bucketView struct {
	Bucket string              `json:"bucket"`
	Items  []converters.ItemDTO `json:"items"`
}

type boardView struct {
	Scope   string       `json:"scope"`
	Buckets []bucketView `json:"buckets"`
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	plain, _ := cmd.Flags().GetBool("plain")

	coord, cliInstance, closeFn, err := openBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeFn()

	store := coord.Store()
	snap := store.Snapshot()

	if formatter.JSON {
		view := boardView{Scope: coord.Scope().String()}
		for _, b := range store.Buckets().Labels() {
			view.Buckets = append(view.Buckets, bucketView{
				Bucket: b.String(),
				Items:  converters.ItemsToDTOs(snap.ItemsInBucket(b)),
			})
		}
		return formatter.Success(view)
	}

	if plain {
		formatter.Printf("%s", RenderPlain(coord.Scope(), store.Buckets(), snap))
		return nil
	}

	styles.Init(cliInstance.Config.Theme)
	formatter.Printf("%s\n", RenderColumns(coord.Scope(), store.Buckets(), snap))
	return nil
}
