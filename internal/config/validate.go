package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Logs.Level] {
		errs = append(errs, fmt.Sprintf("logs.level: must be one of debug, info, warn, error; got %q", c.Logs.Level))
	}

	if c.Library.NFOTimeoutMinutes < 0 {
		errs = append(errs, fmt.Sprintf("library.nfo_timeout_minutes: must not be negative, got %d", c.Library.NFOTimeoutMinutes))
	}
	for i, m := range c.Library.PathMapping {
		if m.Sonarr == "" {
			errs = append(errs, fmt.Sprintf("library.path_mapping[%d].sonarr: required", i))
		}
		if m.Kodi == "" {
			errs = append(errs, fmt.Sprintf("library.path_mapping[%d].kodi: required", i))
		}
	}

	if len(c.Hosts) == 0 {
		errs = append(errs, "hosts: at least one host must be configured")
	}
	seen := map[string]bool{}
	for i, h := range c.Hosts {
		if h.Name == "" {
			errs = append(errs, fmt.Sprintf("hosts[%d].name: required", i))
		} else if seen[h.Name] {
			errs = append(errs, fmt.Sprintf("hosts[%d].name: duplicate host name %q", i, h.Name))
		} else {
			seen[h.Name] = true
		}
		if h.Address == "" {
			errs = append(errs, fmt.Sprintf("hosts[%d].address: required", i))
		}
		if h.Port < 1 || h.Port > 65535 {
			errs = append(errs, fmt.Sprintf("hosts[%d].port: must be between 1 and 65535, got %d", i, h.Port))
		}
		if h.Priority < 0 {
			errs = append(errs, fmt.Sprintf("hosts[%d].priority: must not be negative, got %d", i, h.Priority))
		}
	}

	return errs
}
