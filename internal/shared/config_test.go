package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tdx/internal/models"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./tdx.db" {
			t.Errorf("expected database path ./tdx.db, got %s", config.Database.Path)
		}

		if len(config.Daemons) != 1 {
			t.Fatalf("expected 1 daemon, got %d", len(config.Daemons))
		}

		if config.Daemons[0].Type != models.DaemonDummy {
			t.Errorf("expected dummy daemon, got %s", config.Daemons[0].Type)
		}

		if config.Throttle.Enabled() {
			t.Error("expected throttling to be disabled by default")
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[log]
level = "debug"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[throttle]
requests_per_second = 2.5
burst = 3

[[daemons]]
name = "Home"
type = "Transmission"
address = "192.168.1.10"
port = 9091
username = "admin"

[[daemons]]
name = "Local"
type = "dummy"

[[websearch]]
name = "Search"
url = "https://search.example.com/?q=%s"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.LogLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", config.LogLevel())
		}

		if !config.Throttle.Enabled() || config.Throttle.Burst != 3 {
			t.Errorf("unexpected throttle config: %+v", config.Throttle)
		}

		if config.Daemons[0].Type != models.DaemonTransmission {
			t.Errorf("expected type to be normalised, got %s", config.Daemons[0].Type)
		}

		if len(config.Websearch) != 1 || config.Websearch[0].URL != "https://search.example.com/?q=%s" {
			t.Errorf("unexpected websearch config: %+v", config.Websearch)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}

func TestConfigDaemon(t *testing.T) {
	config := &Config{Daemons: []models.DaemonSettings{
		{Name: "First", Type: models.DaemonDummy},
		{Name: "Second", Type: models.DaemonDeluge},
	}}

	tests := []struct {
		name    string
		lookup  string
		want    string
		wantErr bool
	}{
		{name: "empty selects first", lookup: "", want: "First"},
		{name: "case insensitive", lookup: "second", want: "Second"},
		{name: "unknown", lookup: "third", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Daemon(tt.lookup)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDaemon) {
					t.Errorf("expected ErrUnknownDaemon, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Name)
			}
		})
	}

	t.Run("no daemons", func(t *testing.T) {
		if _, err := (&Config{}).Daemon(""); !errors.Is(err, ErrUnknownDaemon) {
			t.Errorf("expected ErrUnknownDaemon, got %v", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid",
			config: Config{Daemons: []models.DaemonSettings{{Name: "a", Type: models.DaemonDummy, Port: 80}}},
		},
		{
			name:    "missing name",
			config:  Config{Daemons: []models.DaemonSettings{{Type: models.DaemonDummy}}},
			wantErr: true,
		},
		{
			name: "duplicate name",
			config: Config{Daemons: []models.DaemonSettings{
				{Name: "a", Type: models.DaemonDummy},
				{Name: "A", Type: models.DaemonDummy},
			}},
			wantErr: true,
		},
		{
			name:    "unknown type",
			config:  Config{Daemons: []models.DaemonSettings{{Name: "a", Type: "bittorrentz"}}},
			wantErr: true,
		},
		{
			name:    "bad port",
			config:  Config{Daemons: []models.DaemonSettings{{Name: "a", Type: models.DaemonDummy, Port: 70000}}},
			wantErr: true,
		},
		{
			name:    "negative throttle",
			config:  Config{Throttle: ThrottleConfig{RequestsPerSecond: -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
