package board

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/tui"
)

// TUICmd returns the board tui subcommand
func TUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a board interactively",
		Long: `Open a board in the terminal. Grab a card and move it with the keyboard;
each move is saved as it happens and undone on screen if saving fails.`,
		RunE: runTUI,
	}

	cli.AddScopeFlag(cmd)
	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	coord, cliInstance, closeFn, err := openBoard(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeFn()

	model := tui.New(cmd.Context(), coord, cliInstance.App.Bus(), cliInstance.Config)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return cli.Fail(formatter, fmt.Errorf("error running board: %w", err))
	}
	return nil
}
