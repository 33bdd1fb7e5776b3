package item

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/cli/styles"
	"github.com/thenoetrevino/cadence/internal/converters"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// ShowCmd returns the item show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an item and its notes",
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Item id (required)")
	markRequired(cmd, "id")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	id, _ := cmd.Flags().GetString("id")

	cliInstance, closeFn, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeFn()

	item, err := cliInstance.App.ItemService.Get(ctx, types.ItemID(id))
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(converters.ItemToDTO(*item))
	}

	formatter.Printf("%s\n", renderItem(item))
	return nil
}

func renderItem(item *models.Item) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(item.Payload.Title))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(item.ID.String()))
	content.WriteString("\n\n")

	content.WriteString(styles.Field("Scope", item.Scope.String()) + "\n")
	content.WriteString(styles.Field("Bucket", item.Bucket.String()) + "\n")
	content.WriteString(styles.Field("Position", strconv.Itoa(item.Position)) + "\n")
	if !item.CreatedAt.IsZero() {
		content.WriteString(styles.Field("Created", item.CreatedAt.Format("2006-01-02 15:04")) + "\n")
	}

	content.WriteString(styles.SectionStyle.Render("Notes"))
	content.WriteString("\n")
	content.WriteString(renderNotes(item.Payload.Notes, styles.CardWidth-6))

	return styles.RenderCard(content.String())
}

// Glamour renderers are expensive to build, so they are cached by width
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// renderNotes renders markdown notes, falling back to the raw text.
func renderNotes(notes string, width int) string {
	if strings.TrimSpace(notes) == "" {
		return styles.SubtitleStyle.Italic(true).Render("No notes")
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return notes
	}
	rendered, err := renderer.Render(notes)
	if err != nil {
		return notes
	}
	return strings.TrimSpace(rendered)
}
