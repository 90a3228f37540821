// Package config loads mftfind's persistent defaults (distance, folders,
// sort, stats, metrics address) the way the CLI flags bind and override on
// top of: config file, then environment, then built-in defaults. CLI
// flags always win and are applied by the caller after Load returns.
//
// The search command applies every field except Distance: it is loaded,
// but fuzzy matching is selected, with its distance, only by --distance on
// the command line.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the subset of run settings a user might want to persist
// instead of typing on every invocation.
type Config struct {
	Distance    byte   `mapstructure:"distance" yaml:"distance"`
	Folders     bool   `mapstructure:"folders" yaml:"folders"`
	Sort        bool   `mapstructure:"sort" yaml:"sort"`
	Stats       bool   `mapstructure:"stats" yaml:"stats"`
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat   string `mapstructure:"log_format" yaml:"log_format"`
}

// Default returns the built-in configuration used when no file and no
// environment overrides are present.
func Default() *Config {
	return &Config{
		Stats:     true,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads path (or $HOME/.mftfind.yaml when path is empty) if it
// exists, overlays MFTFIND_-prefixed environment variables, and falls
// back to Default() for anything left unset. A missing config file is
// not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("MFTFIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("distance", def.Distance)
	v.SetDefault("folders", def.Folders)
	v.SetDefault("sort", def.Sort)
	v.SetDefault("stats", def.Stats)
	v.SetDefault("metrics_addr", def.MetricsAddr)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	if path == "" {
		path = defaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mftfind.yaml"
	}
	return filepath.Join(home, ".mftfind.yaml")
}
