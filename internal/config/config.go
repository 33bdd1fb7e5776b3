package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// ErrUnknownBoard is returned when a scope names a board that is not configured.
var ErrUnknownBoard = errors.New("unknown board")

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig      `yaml:"database" toml:"database"`
	Remote      RemoteConfig        `yaml:"remote" toml:"remote"`
	Server      ServerConfig        `yaml:"server" toml:"server"`
	Sync        SyncConfig          `yaml:"sync" toml:"sync"`
	Boards      map[string][]string `yaml:"boards" toml:"boards"`
	Log         LogConfig           `yaml:"log" toml:"log"`
	KeyMappings KeyMappings         `yaml:"key_mappings" toml:"key_mappings"`
	Theme       Theme               `yaml:"theme" toml:"theme"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"` // empty means ~/.cadence/cadence.db
}

// RemoteConfig points the CLI at a `cadence serve` instance instead of the local database.
type RemoteConfig struct {
	URL     string        `yaml:"url" toml:"url"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

type SyncConfig struct {
	PersistTimeout time.Duration `yaml:"persist_timeout" toml:"persist_timeout"`
	QueueSize      int           `yaml:"queue_size" toml:"queue_size"`
	// Compensate reverts rows already written when a move fails part way; nil means true
	Compensate *bool `yaml:"compensate" toml:"compensate"`
}

// CompensateEnabled reports the effective compensation setting.
func (s SyncConfig) CompensateEnabled() bool {
	return s.Compensate == nil || *s.Compensate
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	Path  string `yaml:"path" toml:"path"` // empty means ~/.cadence/logs/cadence.log
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from CADENCE_CONFIG or the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	path := os.Getenv("CADENCE_CONFIG")
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			// Return default config if we can't determine config path
			c := Default()
			c.applyEnv()
			return c, nil
		}
		path = p
	}

	return LoadFile(path)
}

// LoadFile reads path as TOML when it ends in .toml and as YAML otherwise.
// A missing file yields defaults. Environment overrides are applied last.
func LoadFile(path string) (*Config, error) {
	var c Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	case strings.EqualFold(filepath.Ext(path), ".toml"):
		if _, err := toml.Decode(string(data), &c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

// Save writes the config as YAML to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "cadence", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "cadence", "config.yaml"), nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CADENCE_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("CADENCE_REMOTE_URL"); v != "" {
		c.Remote.URL = v
	}
	if v := os.Getenv("CADENCE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = 10 * time.Second
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:7420"
	}
	if c.Sync.PersistTimeout <= 0 {
		c.Sync.PersistTimeout = 10 * time.Second
	}
	if c.Sync.QueueSize <= 0 {
		c.Sync.QueueSize = 64
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Boards == nil {
		c.Boards = make(map[string][]string)
	}
	if len(c.Boards[types.BoardFocus]) == 0 {
		c.Boards[types.BoardFocus] = labels(models.FocusBuckets())
	}
	if len(c.Boards[types.BoardPlaybook]) == 0 {
		c.Boards[types.BoardPlaybook] = labels(models.PlaybookBuckets())
	}

	c.KeyMappings.applyDefaults()
	c.Theme.ApplyDefaults()
}

func labels(set models.BucketSet) []string {
	out := make([]string, 0, set.Len())
	for _, b := range set.Labels() {
		out = append(out, b.String())
	}
	return out
}

// BucketSet returns the buckets configured for a board.
func (c *Config) BucketSet(board string) (models.BucketSet, error) {
	names, ok := c.Boards[board]
	if !ok {
		return models.BucketSet{}, fmt.Errorf("%w: %q", ErrUnknownBoard, board)
	}
	if len(names) == 0 {
		return models.BucketSet{}, fmt.Errorf("%w: %q", models.ErrNoBuckets, board)
	}
	bs := make([]types.Bucket, len(names))
	for i, n := range names {
		bs[i] = types.Bucket(n)
	}
	return models.NewBucketSet(bs...), nil
}

// BucketSetForScope resolves the board from a "<board>:<owner>" scope.
func (c *Config) BucketSetForScope(scope types.Scope) (models.BucketSet, error) {
	return c.BucketSet(scope.Board())
}
