package config

import (
	"fmt"
	"strings"
)

var validAudioFormats = map[string]struct{}{
	"mp3":  {},
	"m4a":  {},
	"opus": {},
	"flac": {},
	"wav":  {},
}

// Validate checks the configuration for values that would break the pipeline
// at runtime. It returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return fmt.Errorf("config: state_dir must not be empty")
	}
	if strings.TrimSpace(c.Search.BaseURL) == "" {
		return fmt.Errorf("config: search base_url must not be empty")
	}
	if !strings.HasPrefix(c.Search.BaseURL, "http://") && !strings.HasPrefix(c.Search.BaseURL, "https://") {
		return fmt.Errorf("config: search base_url %q must start with http:// or https://", c.Search.BaseURL)
	}
	if c.Search.RequestTimeout <= 0 {
		return fmt.Errorf("config: search request_timeout must be positive, got %d", c.Search.RequestTimeout)
	}
	if c.Search.MaxResultsPerMode <= 0 {
		return fmt.Errorf("config: search max_results_per_mode must be positive, got %d", c.Search.MaxResultsPerMode)
	}
	if c.Download.Enabled {
		if _, ok := validAudioFormats[c.Download.AudioFormat]; !ok {
			return fmt.Errorf("config: download audio_format %q is not supported", c.Download.AudioFormat)
		}
	}
	if c.Cache.Enabled && c.Cache.TTLMinutes <= 0 {
		return fmt.Errorf("config: cache ttl_minutes must be positive, got %d", c.Cache.TTLMinutes)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: logging format %q is not supported", c.Logging.Format)
	}
	return nil
}
