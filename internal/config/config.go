// Package config loads buchctl settings from the config file, the
// environment, and built-in defaults, in the usual viper precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "buchctl", "config.yml")
}

// Load reads the config from disk and environment. A missing config file
// is fine; defaults cover everything.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "https://localhost:3000")
	v.SetDefault("api.path", "/graphql")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.insecure", false)
	v.SetDefault("search.page_size", 5)
	v.SetDefault("search.page_window", 5)
	v.SetDefault("session.file", defaultSessionFile())

	v.SetEnvPrefix("BUCHCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("BUCHCTL_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Session.File = ExpandHome(cfg.Session.File)
	if cfg.Search.PageSize < 1 {
		cfg.Search.PageSize = 5
	}
	if cfg.Search.PageWindow < 1 {
		cfg.Search.PageWindow = 5
	}

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultSessionFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "buchctl", "session.yml")
}
