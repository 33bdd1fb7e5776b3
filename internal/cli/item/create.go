package item

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/converters"
	itemservice "github.com/thenoetrevino/cadence/internal/services/item"
	"github.com/thenoetrevino/cadence/internal/types"
)

// CreateCmd returns the item create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a new item to a bucket",
		Long: `Append a new item to the end of a bucket.

Examples:
  cadence item create --scope focus:ana --bucket this_week --title "Write intro"

  # Capture the new id in a script
  ID=$(cadence item create --scope focus:ana --bucket backlog --title "Draft" --quiet)
`,
		RunE: runCreate,
	}

	cli.AddScopeFlag(cmd)
	cmd.Flags().String("bucket", "", "Bucket label (required, case-insensitive)")
	cmd.Flags().String("title", "", "Item title (required)")
	cmd.Flags().String("notes", "", "Markdown notes")
	cmd.Flags().String("id", "", "Item id (generated when omitted)")
	markRequired(cmd, "bucket", "title")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	scope, err := cli.ScopeFromFlags(cmd, formatter)
	if err != nil {
		return err
	}
	bucket, _ := cmd.Flags().GetString("bucket")
	title, _ := cmd.Flags().GetString("title")
	notes, _ := cmd.Flags().GetString("notes")
	id, _ := cmd.Flags().GetString("id")

	cliInstance, closeFn, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeFn()

	created, err := cliInstance.App.ItemService.Create(ctx, itemservice.CreateItemRequest{
		ID:     types.ItemID(id),
		Scope:  scope,
		Bucket: bucket,
		Title:  title,
		Notes:  notes,
	})
	if err != nil {
		return cli.Fail(formatter, err)
	}

	dto := converters.ItemToDTO(*created)
	if formatter.JSON || formatter.Quiet {
		return formatter.Success(dto)
	}

	formatter.Printf("✓ Item '%s' created in %s at position %d\n", created.Payload.Title, created.Bucket, created.Position)
	formatter.Printf("  ID: %s\n", created.ID)
	return nil
}
