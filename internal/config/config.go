// Package config loads the server configuration from defaults, an optional
// config file, environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every automatically bound environment variable.
const EnvPrefix = "SNAPSPLIT"

// Config is the root configuration struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Redirect RedirectConfig `mapstructure:"redirect"`
	Share    ShareConfig    `mapstructure:"share"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"min=1"`
}

// StorageConfig holds the object store connection settings.
type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint" validate:"required"`
	Region          string `mapstructure:"region" validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id" validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required"`
	Bucket          string `mapstructure:"bucket" validate:"required"`

	// UseSSL overrides endpoint-based TLS inference when set.
	UseSSL  *bool         `mapstructure:"use_ssl"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the object store.
type BreakerConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	MinRequests     uint32  `mapstructure:"min_requests" validate:"min=1"`
	FailureRate     float64 `mapstructure:"failure_rate" validate:"gt=0,lte=1"`
	IntervalSeconds int     `mapstructure:"interval_seconds" validate:"min=0"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"min=1"`
	MaxHalfOpen     uint32  `mapstructure:"max_half_open" validate:"min=1"`
}

// AuthConfig holds the shared gallery credential pair.
type AuthConfig struct {
	Username     string `mapstructure:"username" validate:"required"`
	Password     string `mapstructure:"password" validate:"required"`
	SecureCookie bool   `mapstructure:"secure_cookie"`

	// LoginRatePerMinute limits login attempts per client IP.
	LoginRatePerMinute int `mapstructure:"login_rate_per_minute" validate:"min=1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"required,oneof=console json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RedirectConfig controls the hostname redirect middleware.
type RedirectConfig struct {
	HostPrefix string `mapstructure:"host_prefix"`
	Target     string `mapstructure:"target" validate:"omitempty,url"`
}

// ShareConfig holds the app-download page settings.
type ShareConfig struct {
	AppStoreURL string `mapstructure:"app_store_url" validate:"required,url"`
}

// envAliases binds keys to the variable names used by the existing deployment.
var envAliases = map[string]string{
	"storage.region":            "AWS_REGION",
	"storage.access_key_id":     "AWS_ACCESS_KEY_ID",
	"storage.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"storage.bucket":            "AWS_S3_BUCKET",
	"auth.username":             "GALLERY_USERNAME",
	"auth.password":             "GALLERY_PASSWORD",
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":      "server.port",
	"log-level": "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("storage.endpoint", "s3.amazonaws.com")
	// Registered so AutomaticEnv can resolve them during Unmarshal.
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.breaker.enabled", true)
	v.SetDefault("storage.breaker.min_requests", 5)
	v.SetDefault("storage.breaker.failure_rate", 0.6)
	v.SetDefault("storage.breaker.interval_seconds", 60)
	v.SetDefault("storage.breaker.timeout_seconds", 30)
	v.SetDefault("storage.breaker.max_half_open", 1)

	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.secure_cookie", false)
	v.SetDefault("auth.login_rate_per_minute", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("redirect.host_prefix", "smart.link")
	v.SetDefault("redirect.target", "https://www.google.com")

	v.SetDefault("share.app_store_url", "https://apps.apple.com/eg/app/snap-split-bill-splitter/id6749791093")
}

// bindFlags binds explicitly set CLI flags to viper keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// Load reads configuration and returns a validated Config.
// Order of precedence (highest to lowest): flags > env > config file > defaults.
// An empty configFile looks for ./config.yaml and tolerates its absence.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		// Prefixed variable wins over the legacy name.
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}

	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
