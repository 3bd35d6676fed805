package config

import (
	"time"

	"github.com/maxviazov/usagers-client/internal/logger"
)

type Config struct {
	App     AppConfig           `mapstructure:"app"`
	Logger  logger.LoggerConfig `mapstructure:"logger"`
	API     APIConfig           `mapstructure:"api"`
	UI      UIConfig            `mapstructure:"ui"`
	Metrics MetricsConfig       `mapstructure:"metrics"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"oneof=dev staging prod test"`
}

// APIConfig points the client at the /api/users resource.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// UIConfig holds the session knobs: page size bounds, debounce window and how long
// transient messages stay visible.
type UIConfig struct {
	DefaultLimit    int           `mapstructure:"default_limit" validate:"min=1,ltefield=MaxLimit"`
	MaxLimit        int           `mapstructure:"max_limit" validate:"min=1,max=100"`
	Debounce        time.Duration `mapstructure:"debounce" validate:"gte=0"`
	MessageDuration time.Duration `mapstructure:"message_duration" validate:"gt=0"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}
