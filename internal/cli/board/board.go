// Package board implements the `cadence board` commands.
package board

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/services/reorder"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show, compact and edit whole boards",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CompactCmd())
	cmd.AddCommand(TUICmd())

	return cmd
}

// openBoard initializes the CLI and opens the board named by --scope.
func openBoard(cmd *cobra.Command, formatter *cli.OutputFormatter) (*reorder.Coordinator, *cli.CLI, func(), error) {
	scope, err := cli.ScopeFromFlags(cmd, formatter)
	if err != nil {
		return nil, nil, nil, err
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, nil, nil, cli.FailWithCode(formatter, "INITIALIZATION_ERROR", cli.ExitError, err, "")
	}
	closeFn := func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}

	coord, err := cliInstance.App.Board(cmd.Context(), scope)
	if err != nil {
		closeFn()
		return nil, nil, nil, cli.Fail(formatter, err)
	}
	return coord, cliInstance, closeFn, nil
}
