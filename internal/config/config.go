// Package config loads mathsteps settings from defaults, an optional YAML
// file and MATHSTEPS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/njchilds90/mathsteps/internal/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// MATHSTEPS_SERVER_PORT.
const EnvPrefix = "MATHSTEPS"

// FileName is the config file base name searched for when no explicit path
// is given.
const FileName = "mathsteps"

// Config represents the effective configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Limits    LimitsConfig    `mapstructure:"limits" yaml:"limits"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit" yaml:"rateLimit"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host" yaml:"host"`
	Port         int           `mapstructure:"port" yaml:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout" yaml:"idleTimeout"`
	MaxBodyBytes int64         `mapstructure:"maxBodyBytes" yaml:"maxBodyBytes"`
	Gzip         bool          `mapstructure:"gzip" yaml:"gzip"`
}

// LimitsConfig bounds the work a single request may ask for.
type LimitsConfig struct {
	MaxInputLength int `mapstructure:"maxInputLength" yaml:"maxInputLength"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
	RPS     float64 `mapstructure:"rps" yaml:"rps"`
	Burst   int     `mapstructure:"burst" yaml:"burst"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "localhost",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			MaxBodyBytes: 1 << 20,
			Gzip:         true,
		},
		Limits: LimitsConfig{
			MaxInputLength: 500,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.readTimeout", d.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", d.Server.WriteTimeout)
	v.SetDefault("server.idleTimeout", d.Server.IdleTimeout)
	v.SetDefault("server.maxBodyBytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.gzip", d.Server.Gzip)
	v.SetDefault("limits.maxInputLength", d.Limits.MaxInputLength)
	v.SetDefault("rateLimit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rateLimit.rps", d.RateLimit.RPS)
	v.SetDefault("rateLimit.burst", d.RateLimit.Burst)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
}

// Load builds the effective configuration. An explicit path must exist;
// otherwise mathsteps.yaml is looked up in the working directory and in
// $HOME/.config/mathsteps, and a missing file means defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// YAML renders the configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration as YAML to path.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "must be between 0 and 65535"}
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return &ConfigError{Field: "server", Message: "timeouts must not be negative"}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return &ConfigError{Field: "server.maxBodyBytes", Message: "must be positive"}
	}
	if c.Limits.MaxInputLength <= 0 {
		return &ConfigError{Field: "limits.maxInputLength", Message: "must be positive"}
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return &ConfigError{Field: "rateLimit", Message: "rps and burst must be positive when enabled"}
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q", c.Logging.Format)}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
