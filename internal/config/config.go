// Package config loads the cquery tool configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Dir is the per-project directory holding config, logs and the
// database, relative to the project root.
const Dir = ".cquery-data"

// Config is the complete tool configuration, read from
// <root>/.cquery-data/config.json.
type Config struct {
	// ExtraFlags are appended verbatim to every compilation entry.
	ExtraFlags []string `json:"extraFlags" mapstructure:"extraFlags"`

	// CompilationDatabaseDirectory overrides where
	// compile_commands.json is looked up; empty means the project root.
	CompilationDatabaseDirectory string `json:"compilationDatabaseDirectory" mapstructure:"compilationDatabaseDirectory"`

	// ResourceDirectory is the toolchain directory holding built-in
	// headers, forwarded as -resource-dir.
	ResourceDirectory string `json:"resourceDirectory" mapstructure:"resourceDirectory"`

	// IndexWhitelist/IndexBlacklist filter which files batch
	// processing visits.
	IndexWhitelist []string `json:"indexWhitelist" mapstructure:"indexWhitelist"`
	IndexBlacklist []string `json:"indexBlacklist" mapstructure:"indexBlacklist"`

	// LogSkippedPathsForIndex emits a diagnostic for every filtered
	// file.
	LogSkippedPathsForIndex bool `json:"logSkippedPathsForIndex" mapstructure:"logSkippedPathsForIndex"`

	// CacheInference persists inferred argument lists in the project
	// database; the cache is cleared on every load.
	CacheInference bool `json:"cacheInference" mapstructure:"cacheInference"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig selects log verbosity and format.
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "human",
		},
	}
}

// Load reads config.json from the project root. A missing file is not
// an error and yields the defaults.
func Load(root string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, Dir))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "human")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to <root>/.cquery-data/config.json.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
