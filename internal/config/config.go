package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Data    DataConfig    `mapstructure:"data"    validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DataConfig locates the flashcard-set documents and their catalog.
// When BaseURL is set, documents are fetched over HTTP instead of from Dir.
type DataConfig struct {
	Dir         string `mapstructure:"dir"          validate:"required_without=BaseURL"`
	BaseURL     string `mapstructure:"base_url"     validate:"omitempty,url"`
	CatalogFile string `mapstructure:"catalog_file" validate:"required,endswith=.json"`
}

// SessionConfig bounds the in-memory study sessions.
type SessionConfig struct {
	MaxSessions int `mapstructure:"max_sessions" validate:"gte=0"`
	// ShuffleSeed makes shuffles reproducible when non-zero.
	ShuffleSeed uint64 `mapstructure:"shuffle_seed"`
	// IdleTimeout is how long a session may go unused before it is
	// reclaimed. Zero keeps sessions until they are deleted.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" validate:"gte=0"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

// WatchConfig controls hot reloading of the catalog from Data.Dir.
type WatchConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	DebounceMS int  `mapstructure:"debounce_ms" validate:"gte=0,lte=60000"`
}
