package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// isolate points every lookup at an empty temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CADENCE_CONFIG", "")
	t.Setenv("CADENCE_DB", "")
	t.Setenv("CADENCE_REMOTE_URL", "")
	t.Setenv("CADENCE_LOG_LEVEL", "")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	assert.Equal(t, "q", defaults.Quit)
	assert.Equal(t, "space", defaults.Grab)
	assert.Equal(t, "J", defaults.MoveDown)
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Sync.PersistTimeout)
	assert.Equal(t, 64, cfg.Sync.QueueSize)
	assert.True(t, cfg.Sync.CompensateEnabled())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "q", cfg.KeyMappings.Quit)
	assert.Equal(t, "default", cfg.Theme.Preset)
	assert.Len(t, cfg.Boards[types.BoardFocus], 5)
	assert.Equal(t, []string{"all"}, cfg.Boards[types.BoardPlaybook])
}

func TestLoadYAML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "cadence", "config.yaml"), `
database:
  path: /tmp/x.db
sync:
  persist_timeout: 2s
  compensate: false
boards:
  sprint: [todo, doing, done]
key_mappings:
  quit: "x"
theme:
  preset: monochrome
  accent: "#123456"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Second, cfg.Sync.PersistTimeout)
	assert.False(t, cfg.Sync.CompensateEnabled())
	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	assert.Equal(t, "k", cfg.KeyMappings.PrevItem, "unset keys fall back to defaults")
	assert.Equal(t, "#123456", cfg.Theme.Accent)
	assert.Equal(t, "#585858", cfg.Theme.CardBorder)

	set, err := cfg.BucketSet("sprint")
	require.NoError(t, err)
	assert.Equal(t, []types.Bucket{"todo", "doing", "done"}, set.Labels())

	_, err = cfg.BucketSet(types.BoardFocus)
	assert.NoError(t, err, "default boards are kept next to custom ones")
}

func TestLoadTOMLFromEnvPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
[server]
addr = ":9000"

[sync]
queue_size = 8

[boards]
focus = ["a", "b"]
`)
	t.Setenv("CADENCE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Sync.QueueSize)

	set, err := cfg.BucketSetForScope("focus:p1")
	require.NoError(t, err)
	assert.Equal(t, []types.Bucket{"a", "b"}, set.Labels())
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "cadence", "config.yaml"), "database:\n  path: from-file.db\n")
	t.Setenv("CADENCE_DB", "from-env.db")
	t.Setenv("CADENCE_REMOTE_URL", "http://localhost:7420")
	t.Setenv("CADENCE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:7420", cfg.Remote.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "cadence", "config.yaml"), "sync: [unterminated")

	_, err := Load()
	assert.Error(t, err)
}

func TestBucketSetUnknownBoard(t *testing.T) {
	_, err := Default().BucketSet("nope")
	assert.ErrorIs(t, err, ErrUnknownBoard)
}

func TestBucketSetEmptyBoard(t *testing.T) {
	cfg := Default()
	cfg.Boards["sprint"] = []string{}

	_, err := cfg.BucketSetForScope("sprint:p1")
	assert.ErrorIs(t, err, models.ErrNoBuckets)
	assert.NotErrorIs(t, err, ErrUnknownBoard)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Server.Addr = ":1234"

	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":1234", loaded.Server.Addr)
}
