package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete service configuration
type Config struct {
	Service ServiceConfig `json:"service" mapstructure:"service"`
	Redis   RedisConfig   `json:"redis" mapstructure:"redis"`
	API     APIConfig     `json:"api" mapstructure:"api"`
	Listen  ListenConfig  `json:"listen" mapstructure:"listen"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServiceConfig contains cosmetic service metadata
type ServiceConfig struct {
	Name string `json:"name" mapstructure:"name"`
}

// RedisConfig contains the backing store connection settings
type RedisConfig struct {
	URL string `json:"url" mapstructure:"url"`
}

// APIConfig contains HTTP API settings
type APIConfig struct {
	Prefix string `json:"prefix" mapstructure:"prefix"`
}

// ListenConfig contains the listen address settings
type ListenConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port string `json:"port" mapstructure:"port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name: "Phone Address Service",
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379/0",
		},
		API: APIConfig{
			Prefix: "/api/v1",
		},
		Listen: ListenConfig{
			Host: "localhost",
			Port: "8080",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads configuration from an optional config.json in dir and from
// PHONEADDR_* environment variables. Environment variables take precedence
// over the config file; defaults apply last.
func Load(dir string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("service.name", defaults.Service.Name)
	v.SetDefault("redis.url", defaults.Redis.URL)
	v.SetDefault("api.prefix", defaults.API.Prefix)
	v.SetDefault("listen.host", defaults.Listen.Host)
	v.SetDefault("listen.port", defaults.Listen.Port)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetEnvPrefix("PHONEADDR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults cover it
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Redis.URL == "" {
		return &ConfigError{Field: "redis.url", Message: "must not be empty"}
	}
	if !strings.HasPrefix(c.API.Prefix, "/") {
		return &ConfigError{Field: "api.prefix", Message: "must start with '/'"}
	}
	if c.Listen.Port == "" {
		return &ConfigError{Field: "listen.port", Message: "must not be empty"}
	}
	return nil
}

// Addr returns the host:port pair the HTTP server should bind to
func (c *Config) Addr() string {
	return c.Listen.Host + ":" + c.Listen.Port
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
