// Package item implements the `cadence item` commands.
package item

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
)

// ItemCmd returns the item parent command
func ItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage items on a board",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(MoveCmd())

	return cmd
}

// openCLI initializes the CLI for a command, reporting failures through formatter.
func openCLI(cmd *cobra.Command, formatter *cli.OutputFormatter) (*cli.CLI, func(), error) {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, nil, cli.FailWithCode(formatter, "INITIALIZATION_ERROR", cli.ExitError, err, "")
	}
	closeFn := func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}
	return cliInstance, closeFn, nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
}
