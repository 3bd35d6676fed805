package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// DefaultFilePath is where file output goes when FilePath is not set.
const DefaultFilePath = "logs/usagers.log"

type LoggerConfig struct {
	Level          string                 `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format         string                 `mapstructure:"format" validate:"omitempty,oneof=json console"`
	OutputTarget   string                 `mapstructure:"output_target" validate:"omitempty,oneof=stdout stderr file"`
	FilePath       string                 `mapstructure:"file_path"`
	TimeField      string                 `mapstructure:"time_field"`
	TimeFormat     string                 `mapstructure:"time_format" validate:"omitempty,oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName    string                 `mapstructure:"service_name"`
	ServiceVersion string                 `mapstructure:"service_version"`
	Env            string                 `mapstructure:"env" validate:"omitempty,oneof=dev staging prod"`
	WithCaller     bool                   `mapstructure:"with_caller"`
	Fields         map[string]interface{} `mapstructure:"fields"`
}

// New builds the application logger. stdout belongs to the console UI, so the default
// target is stderr; dev+debug additionally mirrors everything into the log file.
func New(logg *LoggerConfig) (logger zerolog.Logger, err error) {
	logg.setDefaults()

	v := validator.New()
	if err = v.Struct(logg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = logg.TimeField
	zerolog.TimeFieldFormat = timeFieldFormat(logg.TimeFormat)

	writer, err := logg.writer()
	if err != nil {
		return logger, err
	}

	logger = zerolog.New(writer).
		With().
		Timestamp().
		Str("service", logg.ServiceName).
		Str("version", logg.ServiceVersion).
		Str("env", logg.Env).
		Logger()

	if logg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if len(logg.Fields) > 0 {
		logger = logger.With().Fields(logg.Fields).Logger()
	}

	level, err := zerolog.ParseLevel(logg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

// writer picks the sink for the configured target and format.
func (c *LoggerConfig) writer() (io.Writer, error) {
	var out io.Writer
	switch c.OutputTarget {
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := openLogFile(c.FilePath)
		if err != nil {
			return nil, err
		}
		// a file is never colorized, whatever the format says
		return f, nil
	default:
		out = os.Stderr
	}

	if c.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFieldFormat(c.TimeFormat)}
	}

	if c.Env == "dev" && c.Level == "debug" {
		// full history on disk; a failure here must not prevent startup
		if f, err := openLogFile(c.FilePath); err == nil {
			return zerolog.MultiLevelWriter(out, f), nil
		}
	}
	return out, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// timeFieldFormat translates the config names into zerolog's time formats.
func timeFieldFormat(name string) string {
	switch name {
	case "rfc3339":
		return "2006-01-02T15:04:05Z07:00"
	case "unix":
		return zerolog.TimeFormatUnix
	case "unix_ms":
		return zerolog.TimeFormatUnixMs
	default:
		return "2006-01-02T15:04:05.999999999Z07:00"
	}
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}

	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}

	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}

	if c.OutputTarget == "" {
		c.OutputTarget = "stderr"
	}
	if c.FilePath == "" {
		c.FilePath = DefaultFilePath
	}

	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}

	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}

	if c.ServiceName == "" {
		c.ServiceName = "usagers-client"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}

	if c.Fields == nil {
		c.Fields = make(map[string]interface{})
	}
}
