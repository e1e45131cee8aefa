package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Logging     LoggingConfig    `mapstructure:"logging"`
	YouTube     YouTubeConfig    `mapstructure:"youtube"`
	AI          AIConfig         `mapstructure:"ai"`
	Extraction  ExtractionConfig `mapstructure:"extraction"`
	Segmenter   SegmenterConfig  `mapstructure:"segmenter"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// YouTubeConfig contains YouTube Data API settings
type YouTubeConfig struct {
	APIKey     string `mapstructure:"api_key"`
	MaxResults int64  `mapstructure:"max_results"`
}

// AIConfig contains language model settings
type AIConfig struct {
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ExtractionConfig contains prediction extraction settings
type ExtractionConfig struct {
	MinInterval time.Duration `mapstructure:"min_interval"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// SegmenterConfig contains transcript segmentation thresholds
type SegmenterConfig struct {
	MinWords  int `mapstructure:"min_words"`
	MaxWords  int `mapstructure:"max_words"`
	MaxChunks int `mapstructure:"max_chunks"`
}
