package cli

import (
	"context"

	"github.com/thenoetrevino/cadence/internal/app"
)

type appContextKey struct{}

// WithApp returns a context carrying an already opened App. Commands executed
// with it use that App instead of opening their own; tests use this to point
// commands at an in-memory database.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appContextKey{}, a)
}

// GetCLIFromContext returns a CLI for the command context, reusing an App
// injected with WithApp or opening a new one.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(appContextKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: a.Config()}, nil
	}
	return NewCLI(ctx)
}
