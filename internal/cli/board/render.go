package board

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/cadence/internal/cli/styles"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/types"
)

// RenderColumns draws one bordered lipgloss column per bucket, side by side.
func RenderColumns(scope types.Scope, buckets models.BucketSet, snap ordering.Snapshot) string {
	columns := make([]string, 0, buckets.Len())
	for _, b := range buckets.Labels() {
		items := snap.ItemsInBucket(b)

		var body strings.Builder
		body.WriteString(styles.ColumnHeaderStyle.Render(fmt.Sprintf("%s (%d)", b, len(items))))
		body.WriteString("\n")
		if len(items) == 0 {
			body.WriteString(styles.SubtitleStyle.Render("empty"))
		}
		for i, it := range items {
			if i > 0 {
				body.WriteString("\n")
			}
			body.WriteString(styles.PositionStyle.Render(fmt.Sprintf("%d.", it.Position)))
			body.WriteString(" ")
			body.WriteString(styles.ItemStyle.Render(it.Payload.Title))
		}
		columns = append(columns, styles.ColumnStyle.Render(body.String()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(scope.String()),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
	)
}

// RenderPlain writes the board as unstyled text, one bucket per block.
func RenderPlain(scope types.Scope, buckets models.BucketSet, snap ordering.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", scope)
	for _, bucket := range buckets.Labels() {
		items := snap.ItemsInBucket(bucket)
		fmt.Fprintf(&b, "%s (%d)\n", bucket, len(items))
		if len(items) == 0 {
			b.WriteString("  (empty)\n")
			continue
		}
		for _, it := range items {
			fmt.Fprintf(&b, "  %d. %s [%s]\n", it.Position, it.Payload.Title, it.ID)
		}
	}
	return b.String()
}
