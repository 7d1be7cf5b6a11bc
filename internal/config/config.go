// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Logs          LogsConfig          `toml:"logs"`
	Library       LibraryConfig       `toml:"library"`
	Notifications NotificationsConfig `toml:"notifications"`
	State         StateConfig         `toml:"state"`
	Hosts         []HostConfig        `toml:"hosts"`
}

type LogsConfig struct {
	Level     string `toml:"level"`
	WriteFile bool   `toml:"write_file"`
	Path      string `toml:"path"`
}

type LibraryConfig struct {
	CleanAfterUpdate  bool          `toml:"clean_after_update"`
	SkipActive        bool          `toml:"skip_active"`
	FullScanFallback  bool          `toml:"full_scan_fallback"`
	WaitForNFO        bool          `toml:"wait_for_nfo"`
	NFOTimeoutMinutes int           `toml:"nfo_timeout_minutes"`
	PathMapping       []PathMapping `toml:"path_mapping"`
}

// PathMapping rewrites a Sonarr path prefix into the prefix Kodi hosts see.
type PathMapping struct {
	Sonarr string `toml:"sonarr"`
	Kodi   string `toml:"kodi"`
}

type NotificationsConfig struct {
	OnGrab                      bool `toml:"on_grab"`
	OnDownloadNew               bool `toml:"on_download_new"`
	OnDownloadUpgrade           bool `toml:"on_download_upgrade"`
	OnRename                    bool `toml:"on_rename"`
	OnDelete                    bool `toml:"on_delete"`
	OnSeriesAdd                 bool `toml:"on_series_add"`
	OnSeriesDelete              bool `toml:"on_series_delete"`
	OnHealthIssue               bool `toml:"on_health_issue"`
	OnHealthRestored            bool `toml:"on_health_restored"`
	OnApplicationUpdate         bool `toml:"on_application_update"`
	OnManualInteractionRequired bool `toml:"on_manual_interaction_required"`
	OnTest                      bool `toml:"on_test"`
}

type StateConfig struct {
	Path string `toml:"path"`
}

// HostConfig describes one Kodi endpoint. Immutable after load.
type HostConfig struct {
	Name                 string `toml:"name"`
	Address              string `toml:"address"`
	Port                 int    `toml:"port"`
	Username             string `toml:"username"`
	Password             string `toml:"password"`
	Enabled              bool   `toml:"enabled"`
	DisableNotifications bool   `toml:"disable_notifications"`
	Priority             int    `toml:"priority"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Logs.Path == "" {
		cfg.Logs.Path = "kodisync.log"
	}
	if cfg.Library.NFOTimeoutMinutes == 0 {
		cfg.Library.NFOTimeoutMinutes = 5
	}
	if cfg.State.Path == "" {
		cfg.State.Path = "kodisync-state.db"
	}
	for i := range cfg.Hosts {
		if cfg.Hosts[i].Port == 0 {
			cfg.Hosts[i].Port = 8080
		}
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
