package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/prophetlog/prediction-api/pkg/errors"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system.
// This should be called once at application startup.
func Init() error {
	once.Do(func() {
		// Load .env before viper reads the environment
		_ = godotenv.Load()

		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("PREDICT")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
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

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured")
	}

	if err := validateAPIKeys(); err != nil {
		return err
	}

	// Auto-correct invalid extraction settings
	if viper.GetInt("extraction.max_attempts") <= 0 {
		viper.Set("extraction.max_attempts", 3)
	}
	if viper.GetDuration("extraction.min_interval") <= 0 {
		viper.Set("extraction.min_interval", time.Second)
	}

	return nil
}

// validateAPIKeys validates that API keys are not using placeholder values
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	youtubeKey := viper.GetString("youtube.api_key")
	for _, placeholder := range placeholders {
		if youtubeKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid YouTube API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: YouTube API key is using a placeholder value")
			break
		}
	}

	openaiKey := viper.GetString("ai.openai_api_key")
	for _, placeholder := range placeholders {
		if openaiKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid OpenAI API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: OpenAI API key is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ValidationError("server.port", fmt.Sprintf("port %d is out of range", c.Server.Port))
	}

	if c.Extraction.MaxAttempts <= 0 {
		c.Extraction.MaxAttempts = 3
	}
	if c.Extraction.MinInterval <= 0 {
		c.Extraction.MinInterval = time.Second
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/predictions.db")
	viper.SetDefault("database.verbose", false)

	// Logging defaults
	viper.SetDefault("logging.level", "info")

	// YouTube defaults
	viper.SetDefault("youtube.api_key", "")
	viper.SetDefault("youtube.max_results", 25)

	// AI defaults
	viper.SetDefault("ai.openai_api_key", "")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.timeout", 60*time.Second)

	// Extraction defaults
	viper.SetDefault("extraction.min_interval", time.Second)
	viper.SetDefault("extraction.max_attempts", 3)

	// Segmenter defaults
	viper.SetDefault("segmenter.min_words", 30)
	viper.SetDefault("segmenter.max_words", 120)
	viper.SetDefault("segmenter.max_chunks", 5)
}
