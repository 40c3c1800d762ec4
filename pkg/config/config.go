package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system.
// This should be called once at application startup.
func Init() error {
	once.Do(func() {
		setDefaults()

		viper.SetEnvPrefix("TRACKTAG")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing config file is fine; defaults and env vars apply.
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct.
// Init() must be called before using this.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetInt("analysis.target_sample_rate") <= 0 {
		return fmt.Errorf("invalid analysis target sample rate: %d", viper.GetInt("analysis.target_sample_rate"))
	}

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured")
	}

	// Auto-correct invalid rate limit values
	if viper.GetInt("rate_limit.requests_per_second") <= 0 {
		viper.Set("rate_limit.requests_per_second", 5)
	}
	if viper.GetInt("rate_limit.burst") <= 0 {
		viper.Set("rate_limit.burst", 10)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Analysis.TargetSampleRate <= 0 {
		return fmt.Errorf("invalid analysis target sample rate: %d", c.Analysis.TargetSampleRate)
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 5
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 10
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/tracks.db")
	viper.SetDefault("database.verbose", false)

	// Analysis defaults
	viper.SetDefault("analysis.target_sample_rate", 44100)
	viper.SetDefault("analysis.max_upload_bytes", 50*1024*1024)
	viper.SetDefault("analysis.fetch_timeout", 2*time.Minute)
	viper.SetDefault("analysis.engine.aubio_path", "aubio")
	viper.SetDefault("analysis.engine.timeout", 1*time.Minute)
	viper.SetDefault("analysis.engine.preload", false)

	// Rate limit defaults
	viper.SetDefault("rate_limit.requests_per_second", 5)
	viper.SetDefault("rate_limit.burst", 10)
}
