package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the flicknest client and its backend.
type Config struct {
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// StateDir is the directory where session state is persisted.
	StateDir string `yaml:"state_dir" mapstructure:"state_dir"`
	// API holds the configuration for the movie backend API.
	API *APIConfig `yaml:"api" mapstructure:"api"`
	// Cache holds the listing/details cache configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Watch holds the configuration for the background refresh daemon.
	Watch *WatchConfig `yaml:"watch" mapstructure:"watch"`
}

// APIConfig holds the configuration for the movie backend API.
type APIConfig struct {
	// URL is the base URL of the movie backend.
	URL string `yaml:"url" mapstructure:"url"`
	// Timeout is the request timeout in seconds.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig holds the listing/details cache configuration.
type CacheConfig struct {
	// Enabled indicates whether response caching is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Type is the cache backend, either "memory" or "redis".
	Type string `yaml:"type" mapstructure:"type"`
	// RedisURL is the address of the redis server when type is "redis".
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is the cache entry lifetime in seconds.
	TTL int `yaml:"ttl" mapstructure:"ttl"`
}

// WatchConfig holds the configuration for the background refresh daemon.
type WatchConfig struct {
	// StatusInterval is the subscription status refresh interval in minutes.
	StatusInterval int `yaml:"status_interval" mapstructure:"status_interval"`
	// CatalogInterval is the catalog refresh interval in minutes.
	CatalogInterval int `yaml:"catalog_interval" mapstructure:"catalog_interval"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("FLICKNEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.flicknest")
		v.AddConfigPath("/etc/flicknest")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with FLICKNEST_ prefix will override config file values")
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("state_dir", "$HOME/.flicknest")

	v.SetDefault("api.url", "http://localhost:3000")
	v.SetDefault("api.timeout", 15)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "localhost:6379")
	v.SetDefault("cache.ttl", 300)

	v.SetDefault("watch.status_interval", 30)
	v.SetDefault("watch.catalog_interval", 60)
}

// validateConfig validates the required configuration values.
func validateConfig(c *Config) error {
	if c.API == nil || c.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Cache != nil && c.Cache.Enabled {
		switch c.Cache.Type {
		case "memory", "redis":
		default:
			return fmt.Errorf("cache.type must be either %q or %q, got %q", "memory", "redis", c.Cache.Type)
		}
		if c.Cache.Type == "redis" && c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required when cache.type is redis")
		}
	}
	if c.Watch != nil {
		if c.Watch.StatusInterval <= 0 || c.Watch.CatalogInterval <= 0 {
			return fmt.Errorf("watch intervals must be positive")
		}
	}
	return nil
}
