package config

import "fmt"

// MetricsConfig controls the Prometheus endpoint served while turns run
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path" validate:"omitempty,urlpath"`
}

// Endpoint returns the URL scrapers should use
func (m MetricsConfig) Endpoint() string {
	return fmt.Sprintf("http://%s:%d%s", m.Host, m.Port, m.Path)
}
