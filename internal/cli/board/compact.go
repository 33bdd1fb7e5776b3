package board

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/models"
)

// CompactCmd returns the board compact subcommand
func CompactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Renumber every bucket to 0..n-1 and persist the changes",
		Long: `Reload the board from the store, renumber positions densely and write
back every position that changed. Positions drift after deletions or when
another client edits the same board.`,
		RunE: runCompact,
	}

	cli.AddScopeFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

type positionDTO struct {
	ID       string `json:"id"`
	Bucket   string `json:"bucket"`
	Position int    `json:"position"`
}

type compactResult struct {
	Scope   string        `json:"scope"`
	Updated []positionDTO `json:"updated"`
}

func toPositionDTOs(updates []models.PositionUpdate) []positionDTO {
	out := make([]positionDTO, 0, len(updates))
	for _, u := range updates {
		out = append(out, positionDTO{ID: u.ItemID.String(), Bucket: u.Bucket.String(), Position: u.Position})
	}
	return out
}

func runCompact(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	coord, _, closeFn, err := openBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeFn()

	updates, err := coord.Compact(cmd.Context())
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.JSON {
		return formatter.Success(compactResult{Scope: coord.Scope().String(), Updated: toPositionDTOs(updates)})
	}
	if len(updates) == 0 {
		formatter.Printf("✓ %s is already compact\n", coord.Scope())
		return nil
	}
	formatter.Printf("✓ Renumbered %d item(s) on %s\n", len(updates), coord.Scope())
	for _, u := range updates {
		formatter.Printf("  %s -> %s #%d\n", u.ItemID, u.Bucket, u.Position)
	}
	return nil
}
