// Package config loads the screener defaults from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding the configuration, like
// SCREENER_ROWS_PER_PAGE.
const EnvPrefix = "SCREENER"

// Config holds the defaults of the screener commands. Command line flags override them.
type Config struct {
	Data           string `mapstructure:"data"`            // dataset file or URL
	Path           string `mapstructure:"path"`            // JSONPath to the records
	Key            string `mapstructure:"key"`             // field identifying records in the selection
	Sort           string `mapstructure:"sort"`            // default sort field
	Comparator     string `mapstructure:"comparator"`      // lexicographic or numeric
	RowsPerPage    int    `mapstructure:"rows_per_page"`   // page size of views
	BadgeThreshold int    `mapstructure:"badge_threshold"` // unique values under which cells are badges
	SelectionFile  string `mapstructure:"selection_file"`  // where the selection is persisted
	CacheDir       string `mapstructure:"cache_dir"`       // HTTP cache, the user cache dir if empty
}

var defaults = map[string]any{
	"data":            "",
	"path":            "",
	"key":             "ticker",
	"sort":            "",
	"comparator":      "lexicographic",
	"rows_per_page":   10,
	"badge_threshold": 15,
	"selection_file":  "selected-tickers.json",
	"cache_dir":       "",
}

// Load reads the configuration file at 'path' and the SCREENER_* environment variables.
// A missing file is not an error, the defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.RowsPerPage <= 0 {
		return nil, fmt.Errorf("invalid config: rows_per_page must be positive, got %d", cfg.RowsPerPage)
	}
	return &cfg, nil
}
