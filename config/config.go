package config

import (
	"log/slog"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
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

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type CircuitBreakerConfig struct {
	FailureThreshold int    `mapstructure:"failure_threshold"`
	ResetTimeout     string `mapstructure:"reset_timeout"`
	HalfOpenAttempts int    `mapstructure:"half_open_attempts"`
}

type HealthWatchConfig struct {
	Interval string `mapstructure:"interval"`
}

type ProviderConfig struct {
	Name      string `mapstructure:"name"`
	Type      string `mapstructure:"type"`
	Model     string `mapstructure:"model"`
	Priority  int    `mapstructure:"priority"`
	Enabled   bool   `mapstructure:"enabled"`
	Timeout   string `mapstructure:"timeout"`
	APIKeyEnv string `mapstructure:"api_key_env"`
}

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	HealthWatch    HealthWatchConfig    `mapstructure:"health_watch"`
	Providers      []ProviderConfig     `mapstructure:"providers"`
}

func Load() (*Config, error) {
	viper.SetDefault("server.environment", EnvDev)
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("logging.level", LogLevelInfo)
	viper.SetDefault("circuit_breaker.failure_threshold", 5)
	viper.SetDefault("circuit_breaker.reset_timeout", "60s")
	viper.SetDefault("circuit_breaker.half_open_attempts", 1)
	viper.SetDefault("health_watch.interval", "15s")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Error("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.CircuitBreaker,
			validation.Required,
			validation.By(func(value interface{}) error {
				cb, ok := value.(CircuitBreakerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a CircuitBreakerConfig")
				}
				return validation.ValidateStruct(&cb,
					validation.Field(&cb.FailureThreshold,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&cb.ResetTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&cb.HalfOpenAttempts,
						validation.Required,
						validation.Min(1),
					),
				)
			}),
		),
		validation.Field(&c.HealthWatch,
			validation.Required,
			validation.By(func(value interface{}) error {
				hw, ok := value.(HealthWatchConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a HealthWatchConfig")
				}
				return validation.ValidateStruct(&hw,
					validation.Field(&hw.Interval,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Providers,
			validation.Required,
			validation.Length(1, 0),
			validation.Each(validation.By(validateProviderConfig)),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	return nil
}

func validateProviderConfig(value interface{}) error {
	pc, ok := value.(ProviderConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a ProviderConfig")
	}

	return validation.ValidateStruct(&pc,
		validation.Field(&pc.Name,
			validation.Required,
		),
		validation.Field(&pc.Type,
			validation.Required,
			validation.In("gemini", "openai", "anthropic", "mock"),
		),
		validation.Field(&pc.Priority,
			validation.Min(0),
		),
		validation.Field(&pc.Timeout,
			validation.Required,
			validation.By(validateDuration),
		),
	)
}
