package use

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
)

// ScopeCmd returns the use scope subcommand
func ScopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope [board:owner]",
		Short: "Set the board scope for current shell session",
		Long: `Set the current scope using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(cadence use scope focus:ana)   # Use focus:ana
  eval $(cadence use scope --clear)     # Clear scope context
  cadence use scope --show              # Show current scope

CADENCE_SCOPE is set in your current shell session only. The --scope flag
on other commands takes precedence over it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseScope,
	}

	cmd.Flags().Bool("clear", false, "Clear the current scope")
	cmd.Flags().Bool("show", false, "Show the current scope")

	return cmd
}

func runUseScope(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	formatter := &cli.OutputFormatter{Out: out, ErrOut: errOut}

	if showFlag {
		current := os.Getenv(cli.ScopeEnv)
		if current == "" {
			fmt.Fprintln(out, "No scope set")
			fmt.Fprintln(out, "Use 'eval $(cadence use scope <board:owner>)' to set one")
			return nil
		}
		fmt.Fprintf(out, "Current scope: %s\n", current)
		return nil
	}

	if clearFlag {
		fmt.Fprintln(out, "unset "+cli.ScopeEnv)
		fmt.Fprintln(errOut, "Cleared scope")
		return nil
	}

	if len(args) == 0 {
		return cli.FailWithCode(formatter, "NO_SCOPE", cli.ExitUsage,
			cli.ErrNoScope, "Usage: eval $(cadence use scope <board:owner>)")
	}

	scope, err := cli.ParseScope(args[0])
	if err != nil {
		return cli.FailWithCode(formatter, "NO_SCOPE", cli.ExitUsage, err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return cli.FailWithCode(formatter, "INITIALIZATION_ERROR", cli.ExitError, err, "")
	}
	defer func() { _ = cliInstance.Close() }()

	// Only configured boards can be used
	if _, err := cliInstance.Config.BucketSetForScope(scope); err != nil {
		return cli.Fail(formatter, err)
	}

	fmt.Fprintf(out, "export %s=%s\n", cli.ScopeEnv, scope)
	fmt.Fprintf(errOut, "Now using %s\n", scope)
	return nil
}
