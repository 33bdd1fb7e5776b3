// Package serve implements `cadence serve`, the HTTP API over the local store.
package serve

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/cli"
	"github.com/thenoetrevino/cadence/internal/remote"
)

// ErrRemoteConfigured is returned when serve would only proxy another server.
var ErrRemoteConfigured = errors.New("remote.url is set; serve exposes the local database only")

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the item API over HTTP",
		Long: `Serve the local item store over HTTP so other machines can point
remote.url at it. Prometheus metrics are exposed on /metrics.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return cli.FailWithCode(formatter, "INITIALIZATION_ERROR", cli.ExitError, err, "")
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	if cliInstance.Config.Remote.URL != "" {
		return cli.FailWithCode(formatter, "REMOTE_CONFIGURED", cli.ExitUsage, ErrRemoteConfigured,
			"Unset remote.url or CADENCE_REMOTE_URL on the serving machine")
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cliInstance.Config.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := remote.NewServer(cliInstance.App.ItemService, slog.Default())
	formatter.Printf("Serving item API on http://%s\n", addr)
	if err := server.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
		return cli.Fail(formatter, err)
	}
	return nil
}
