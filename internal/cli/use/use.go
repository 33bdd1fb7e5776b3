// Package use holds all cli commands related to setting contextual information
// e.g., cadence use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set context for the current shell session so later commands can
leave out flags such as --scope.

Examples:
  eval $(cadence use scope focus:ana)   # Use the focus board of ana
  eval $(cadence use scope focus)       # Same board, owned by you
  eval $(cadence use scope --clear)     # Clear the scope
  cadence use scope --show              # Show the current scope`,
	}

	cmd.AddCommand(ScopeCmd())

	return cmd
}
