package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/app"
	cadencecli "github.com/thenoetrevino/cadence/internal/cli"
)

// ExecuteCLICommand executes a CLI command with a test app instance and
// returns what it wrote to stdout. The app is injected through the command
// context so commands use the test database.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	stdout, _, err := ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
	return stdout, err
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context
// and test app, returning stdout and stderr separately.
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(cadencecli.WithApp(ctx, testApp))
	return stdout.String(), stderr.String(), err
}
