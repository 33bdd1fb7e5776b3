package item

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/converters"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/types"
)

// MoveCmd returns the item move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move an item within its bucket or to another bucket",
		Long: `Move an item to an index in a bucket. The move is applied to the board,
persisted item by item, and rolled back if any write fails.

Examples:
  # Move to the top of its current bucket
  cadence item move --id 7f3c... --index 0

  # Move to another bucket (case-insensitive), third from the top
  cadence item move --id 7f3c... --bucket done --index 2

  # An index past the end appends
  cadence item move --id 7f3c... --bucket backlog --index 999 --json
`,
		RunE: runMove,
	}

	cmd.Flags().String("id", "", "Item id (required)")
	cmd.Flags().String("bucket", "", "Target bucket (defaults to the item's bucket)")
	cmd.Flags().Int("index", 0, "Target index within the bucket (required)")
	markRequired(cmd, "id", "index")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	id, _ := cmd.Flags().GetString("id")
	target, _ := cmd.Flags().GetString("bucket")
	index, _ := cmd.Flags().GetInt("index")

	cliInstance, closeFn, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeFn()

	stored, err := cliInstance.App.ItemService.Get(ctx, types.ItemID(id))
	if err != nil {
		return cli.Fail(formatter, err)
	}

	board, err := cliInstance.App.Board(ctx, stored.Scope)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	bucket := stored.Bucket
	if target != "" {
		b, ok := board.Store().Buckets().Lookup(target)
		if !ok {
			return cli.Fail(formatter, fmt.Errorf("%w: %s", ordering.ErrInvalidBucket, target))
		}
		bucket = b
	}

	if err := board.Move(ctx, models.MoveRequest{
		ItemID:       stored.ID,
		TargetBucket: bucket,
		TargetIndex:  index,
	}); err != nil {
		return cli.Fail(formatter, err)
	}

	moved, ok := board.Store().Get(stored.ID)
	if !ok {
		return cli.Fail(formatter, fmt.Errorf("%w: %s", ordering.ErrItemNotFound, stored.ID))
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(converters.ItemToDTO(moved))
	}

	formatter.Printf("✓ Moved '%s' to %s at position %d\n", moved.Payload.Title, moved.Bucket, moved.Position)
	return nil
}
