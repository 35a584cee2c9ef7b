// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/subwatch/internal/detect"
)

// DefaultDatabasePath is where the ledger lives unless configured
// otherwise.
const DefaultDatabasePath = "$HOME/.local/share/subwatch/subwatch.db"

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DatabasePath resolves the configured ledger path.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// Detection builds the detection tuning from configuration, falling
// back to defaults for any knob left unset. The similarity threshold
// and dispersion ratio are calibration points, so they live in config
// rather than code.
func Detection() detect.Config {
	cfg := detect.DefaultConfig()

	if v := viper.GetFloat64("detection.similarity_threshold"); v > 0 {
		cfg.SimilarityThreshold = v
	}
	if v := viper.GetFloat64("detection.dispersion_ratio"); v > 0 {
		cfg.DispersionRatio = v
	}
	if v := viper.GetFloat64("detection.min_interval_days"); v > 0 {
		cfg.MinIntervalDays = v
	}
	if v := viper.GetFloat64("detection.max_interval_days"); v > 0 {
		cfg.MaxIntervalDays = v
	}
	if v := viper.GetInt("detection.min_occurrences"); v > 0 {
		cfg.MinOccurrences = v
	}

	return cfg
}
