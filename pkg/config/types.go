package config

import "time"

// Config is the complete application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Analysis    AnalysisConfig `mapstructure:"analysis"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// AnalysisConfig holds feature-extraction settings
type AnalysisConfig struct {
	TargetSampleRate int           `mapstructure:"target_sample_rate"`
	MaxUploadBytes   int64         `mapstructure:"max_upload_bytes"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	Engine           EngineConfig  `mapstructure:"engine"`
}

// EngineConfig holds primary extraction engine settings
type EngineConfig struct {
	AubioPath string        `mapstructure:"aubio_path"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Preload   bool          `mapstructure:"preload"`
}

// RateLimitConfig holds per-client rate limit settings
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	Burst             int `mapstructure:"burst"`
}
