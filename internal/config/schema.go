package config

import "time"

// Config is the top-level buchctl configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
}

// APIConfig holds catalog service connection settings.
type APIConfig struct {
	// BaseURL is the service origin, e.g. https://localhost:3000.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Path is the GraphQL endpoint path.
	Path string `mapstructure:"path" yaml:"path"`
	// Timeout bounds a single exchange.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Insecure skips TLS verification (self-signed dev backends).
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`
}

// SearchConfig holds result presentation settings.
type SearchConfig struct {
	// PageSize is the number of records per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
	// PageWindow is how many page numbers to show around the current one.
	PageWindow int `mapstructure:"page_window" yaml:"page_window"`
}

// SessionConfig locates the persisted session record.
type SessionConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}
