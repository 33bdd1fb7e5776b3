package cli

import (
	"database/sql"
	"testing"

	"github.com/thenoetrevino/cadence/internal/app"
	"github.com/thenoetrevino/cadence/internal/config"
	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	appInstance := app.New(config.Default(), database.NewItemRepo(db))
	t.Cleanup(func() {
		_ = appInstance.Close()
	})

	return db, appInstance
}
