package item

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/cli/styles"
	"github.com/thenoetrevino/cadence/internal/converters"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/types"
)

// ListCmd returns the item list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items of a board in order",
		Long: `List the items of a board, bucket by bucket, in position order.

Opening the board re-derives positions, so gaps left by deletions are
compacted and persisted before the list is printed.`,
		RunE: runList,
	}

	cli.AddScopeFlag(cmd)
	cmd.Flags().String("bucket", "", "Only list this bucket")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	scope, err := cli.ScopeFromFlags(cmd, formatter)
	if err != nil {
		return err
	}
	only, _ := cmd.Flags().GetString("bucket")

	cliInstance, closeFn, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeFn()

	board, err := cliInstance.App.Board(ctx, scope)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	buckets, err := selectBuckets(board.Store().Buckets(), only)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	snap := board.Store().Snapshot()
	var items []models.Item
	for _, b := range buckets {
		items = append(items, snap.ItemsInBucket(b)...)
	}

	if formatter.Quiet {
		for _, it := range items {
			fmt.Fprintln(cmd.OutOrStdout(), it.ID)
		}
		return nil
	}
	if formatter.JSON {
		return formatter.Success(converters.ItemList{Items: converters.ItemsToDTOs(items)})
	}

	formatter.Printf("%s\n", styles.TitleStyle.Render(scope.String()))
	for _, b := range buckets {
		bucketItems := snap.ItemsInBucket(b)
		formatter.Printf("%s %s\n", styles.LabelStyle.Render(b.String()), styles.SubtitleStyle.Render("("+strconv.Itoa(len(bucketItems))+")"))
		if len(bucketItems) == 0 {
			formatter.Printf("  %s\n", styles.SubtitleStyle.Render("(empty)"))
		}
		for _, it := range bucketItems {
			formatter.Printf("  %s %s  %s\n",
				styles.PositionStyle.Render(strconv.Itoa(it.Position)+"."),
				styles.ValueStyle.Render(it.Payload.Title),
				styles.SubtitleStyle.Render(it.ID.String()))
		}
	}
	return nil
}

// selectBuckets returns every bucket of the board, or only the one named.
func selectBuckets(set models.BucketSet, only string) ([]types.Bucket, error) {
	if only == "" {
		return set.Labels(), nil
	}
	b, ok := set.Lookup(only)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ordering.ErrInvalidBucket, only)
	}
	return []types.Bucket{b}, nil
}
