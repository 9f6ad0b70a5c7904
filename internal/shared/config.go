package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/tdx/internal/models"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Log       LogConfig               `toml:"log"`
	Database  DatabaseConfig          `toml:"database"`
	Throttle  ThrottleConfig          `toml:"throttle"`
	Daemons   []models.DaemonSettings `toml:"daemons"`
	Websearch []WebsearchConfig       `toml:"websearch"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ThrottleConfig limits how many tasks per second are sent to a daemon.
type ThrottleConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Enabled reports whether a rate limit is configured.
func (t ThrottleConfig) Enabled() bool {
	return t.RequestsPerSecond > 0
}

// WebsearchConfig seeds the websearch settings table on first use.
type WebsearchConfig struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// LogLevel parses the configured level, falling back to info.
func (c *Config) LogLevel() log.Level {
	if c.Log.Level == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Daemon looks up a configured daemon by name (case-insensitive).
//
// An empty name selects the first configured daemon.
func (c *Config) Daemon(name string) (models.DaemonSettings, error) {
	if len(c.Daemons) == 0 {
		return models.DaemonSettings{}, fmt.Errorf("%w: no daemons configured", ErrUnknownDaemon)
	}
	if name == "" {
		return c.Daemons[0], nil
	}
	for _, d := range c.Daemons {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return models.DaemonSettings{}, fmt.Errorf("%w: %s", ErrUnknownDaemon, name)
}

// Validate checks that every configured daemon has a unique name and a known type.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Daemons))
	for i, d := range c.Daemons {
		if d.Name == "" {
			return fmt.Errorf("%w: daemon %d has no name", ErrInvalidConfig, i)
		}
		key := strings.ToLower(d.Name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate daemon name %q", ErrInvalidConfig, d.Name)
		}
		seen[key] = true

		if _, err := models.ParseDaemon(string(d.Type)); err != nil {
			return fmt.Errorf("%w: daemon %q: %v", ErrInvalidConfig, d.Name, err)
		}
		if d.Port < 0 || d.Port > 65535 {
			return fmt.Errorf("%w: daemon %q: port %d out of range", ErrInvalidConfig, d.Name, d.Port)
		}
	}

	if c.Throttle.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: throttle.requests_per_second must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for i := range config.Daemons {
		config.Daemons[i].Type = models.Daemon(strings.ToLower(string(config.Daemons[i].Type)))
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
