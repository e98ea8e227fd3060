package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	MethodGet  = "GET"
	MethodHead = "HEAD"
)

// DefaultProvidersFile is looked up in the working directory.
const DefaultProvidersFile = "providers.json"

const (
	// EnvPrefix scopes environment overrides, e.g. PROVIDER_FILTER_PROBE_TIMEOUT.
	EnvPrefix = "PROVIDER_FILTER"
	// FileName is the optional config file, without extension.
	FileName = "provider-filter"
)

type ProvidersConfig struct {
	File string `mapstructure:"file"`
}

type ProbeConfig struct {
	Method         string `mapstructure:"method"`
	ConnectTimeout string `mapstructure:"connect_timeout"`
	Timeout        string `mapstructure:"timeout"`
	UserAgent      string `mapstructure:"user_agent"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Environment string          `mapstructure:"environment"`
	Providers   ProvidersConfig `mapstructure:"providers"`
	Probe       ProbeConfig     `mapstructure:"probe"`
	Logging     LoggingConfig   `mapstructure:"logging"`
}

// Load reads .env, an optional provider-filter.yaml and PROVIDER_FILTER_*
// environment variables on top of the built-in defaults, then validates the
// result. Errors are returned unlogged.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetDefault("environment", EnvDev)
	v.SetDefault("providers.file", DefaultProvidersFile)
	v.SetDefault("probe.method", MethodGet)
	v.SetDefault("probe.connect_timeout", "2s")
	v.SetDefault("probe.timeout", "5s")
	v.SetDefault("probe.user_agent", "provider-filter/1.0")
	v.SetDefault("logging.level", LogLevelWarn)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		slog.Debug("config file not found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Probe.Method = strings.ToUpper(cfg.Probe.Method)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment,
			validation.Required,
			validation.In(EnvDev, EnvStaging, EnvProd),
		),
		validation.Field(&c.Providers),
		validation.Field(&c.Probe),
		validation.Field(&c.Logging),
	)
}

func (p ProvidersConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.File, validation.Required),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
	)
}

func (p ProbeConfig) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Method,
			validation.Required,
			validation.In(MethodGet, MethodHead),
		),
		validation.Field(&p.ConnectTimeout,
			validation.Required,
			validation.By(validateDuration),
		),
		validation.Field(&p.Timeout,
			validation.Required,
			validation.By(validateDuration),
		),
	)
	if err != nil {
		return err
	}

	if p.ConnectTimeoutDuration() > p.TimeoutDuration() {
		return validation.Errors{
			"ConnectTimeout": validation.NewError("validation_connect_timeout_too_long",
				"must not exceed the probe timeout"),
		}
	}

	return nil
}

// ConnectTimeoutDuration returns the parsed connect timeout, or zero when unset or invalid.
func (p ProbeConfig) ConnectTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(p.ConnectTimeout)
	return d
}

// TimeoutDuration returns the parsed whole-request timeout, or zero when unset or invalid.
func (p ProbeConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(p.Timeout)
	return d
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 500ms, 2s)")
	}

	if d <= 0 {
		return validation.NewError("validation_non_positive_duration", "must be greater than zero")
	}

	return nil
}
