package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. APP_API_BASE_URL.
const EnvPrefix = "APP"

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"base-url":  "api.base_url",
	"limit":     "ui.default_limit",
	"log-level": "logger.level",
}

// Load builds the configuration from, in increasing precedence: defaults, the YAML file at
// path (skipped when path is empty), APP_* environment variables (a local .env is loaded
// first when present) and the flags that were explicitly set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}

// RegisterFlags declares the flags Load knows how to bind.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "", "base URL of the users resource, e.g. http://localhost:8080/api/users")
	fs.Int("limit", 0, "number of usagers per page")
	fs.String("log-level", "", "log level: debug, info, warn or error")
}

// setDefaults registers every key so that AutomaticEnv can resolve it even without a file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "usagers-client")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")

	v.SetDefault("logger.level", "")
	v.SetDefault("logger.format", "")
	v.SetDefault("logger.output_target", "stderr")
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.time_field", "")
	v.SetDefault("logger.time_format", "")
	v.SetDefault("logger.service_name", "usagers-client")
	v.SetDefault("logger.service_version", "")
	v.SetDefault("logger.env", "")
	v.SetDefault("logger.with_caller", false)

	v.SetDefault("api.base_url", "http://localhost:8080/api/users")
	v.SetDefault("api.timeout", "10s")

	v.SetDefault("ui.default_limit", 10)
	v.SetDefault("ui.max_limit", 100)
	v.SetDefault("ui.debounce", "300ms")
	v.SetDefault("ui.message_duration", "5s")

	v.SetDefault("metrics.addr", "")
}
