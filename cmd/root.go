package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli/board"
	"github.com/thenoetrevino/cadence/internal/cli/item"
	"github.com/thenoetrevino/cadence/internal/cli/serve"
	"github.com/thenoetrevino/cadence/internal/cli/use"
	"github.com/thenoetrevino/cadence/internal/remote"
)

// NewRootCmd builds the cadence command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cadence",
		Short:   "Cadence - ordered boards that stay in sync",
		Long:    `Cadence keeps ordered boards (focus items, playbooks) in sync between the terminal and the item store.`,
		Version: remote.Version,

		// Commands report their own errors through the output formatter
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(item.ItemCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(use.UseCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
