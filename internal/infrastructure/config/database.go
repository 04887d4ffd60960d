package config

import "time"

// DatabaseConfig selects where saved games, journals and price history live.
// sqlite keeps everything in one local file; postgres lets several
// installations share saves.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// sqlite file, ":memory:" when empty
	Path string `mapstructure:"path"`

	// postgres: URL wins over the individual fields
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// LogQueries echoes every SQL statement through gorm's logger
	LogQueries bool `mapstructure:"log_queries"`

	// Pool applies to postgres only; sqlite always uses a single connection
	Pool PoolConfig `mapstructure:"pool"`
}

type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
