package item

import (
	"errors"
	"fmt"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/types"
)

// DeleteCmd returns the item delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an item",
		Long: `Delete an item by id (requires confirmation unless --force or --quiet).

The remaining items of the bucket are renumbered on the board's next refresh,
which runs right away when the board is open.`,
		RunE: runDelete,
	}

	cmd.Flags().String("id", "", "Item id (required)")
	markRequired(cmd, "id")
	cmd.Flags().Bool("force", false, "Skip confirmation")

	cli.AddOutputFlags(cmd)
	return cmd
}

// confirmDelete asks before deleting; tests replace it.
var confirmDelete = func(title string) (bool, error) {
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete '%s'?", title)).
			Affirmative("Yes").
			Negative("No").
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirm, nil
}

type deleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (r deleteResult) GetID() string { return r.ID }

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	id, _ := cmd.Flags().GetString("id")
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, closeFn, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeFn()

	item, err := cliInstance.App.ItemService.Get(ctx, types.ItemID(id))
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if !force && !formatter.Quiet && !formatter.JSON {
		ok, err := confirmDelete(item.Payload.Title)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		if !ok {
			formatter.Printf("Cancelled\n")
			return nil
		}
	}

	if err := cliInstance.App.ItemService.Delete(ctx, item.ID); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Success(deleteResult{ID: item.ID.String(), Deleted: true})
	}

	formatter.Printf("✓ Item '%s' deleted\n", item.Payload.Title)
	return nil
}
