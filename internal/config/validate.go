package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/dashgen/internal/errors"
)

// validColorModes are the accepted values for the color setting.
var validColorModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but dashgen only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade dashgen or lower the version field")
	}

	if strings.TrimSpace(cfg.Source) == "" {
		return errors.New(errors.ErrConfig,
			"'source' can't be empty",
			"Remove the key to use "+DefaultSourceFile+", or point it at your source file")
	}

	if strings.TrimSpace(cfg.Output) == "" {
		return errors.New(errors.ErrConfig,
			"'output' can't be empty",
			"Remove the key to use "+DefaultOutputFile+", or point it at the dashboard file to write")
	}

	if cfg.Datasource.Type == "" || cfg.Datasource.UID == "" {
		return errors.New(errors.ErrConfig,
			"Datasource needs both 'type' and 'uid'",
			"Something like:\n    datasource:\n      type: prometheus\n      uid: victoriametrics")
	}

	if strings.TrimSpace(cfg.PluginVersion) == "" {
		return errors.New(errors.ErrConfig,
			"'plugin_version' can't be empty",
			"Remove the key to use the default, or set the Grafana version you target")
	}

	if !validColorModes[cfg.Color] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a valid color mode", cfg.Color),
			"Use one of: auto, always, never")
	}

	return nil
}
