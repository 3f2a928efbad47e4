package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client.
type Config struct {
	App     AppConfig
	API     APIConfig
	Auth    AuthConfig
	Store   StoreConfig
	Logging LoggingConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
	Name        string
}

// APIConfig holds backend API configuration.
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	MaxRetries int
}

// AuthConfig holds the locally provided identity. The backend issues the
// token; the client only carries it.
type AuthConfig struct {
	Token    string
	UserID   string
	UserName string
}

// StoreConfig holds entity store configuration.
type StoreConfig struct {
	Provider        string
	TTL             time.Duration
	MaxKeys         int
	CleanupInterval time.Duration
	RedisURL        string
	RedisDB         int
	RedisPassword   string
	PoolSize        int
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// Load loads configuration from environment variables with validation.
func Load() (*Config, error) {
	// Load environment file based on GO_ENV
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load() // fallback to .env
		}
	}

	config := &Config{
		App:     loadAppConfig(env),
		API:     loadAPIConfig(),
		Auth:    loadAuthConfig(),
		Store:   loadStoreConfig(),
		Logging: loadLoggingConfig(env),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadAppConfig(env string) AppConfig {
	return AppConfig{
		Environment: env,
		Name:        getEnv("APP_NAME", "Edunity"),
	}
}

func loadAPIConfig() APIConfig {
	return APIConfig{
		BaseURL:    getEnv("API_BASE_URL", "http://localhost:8081"),
		Timeout:    getDurationEnv("API_TIMEOUT", 15*time.Second),
		UserAgent:  getEnv("API_USER_AGENT", "edunity-client/1.0"),
		MaxRetries: getIntEnv("API_MAX_RETRIES", 0),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		Token:    os.Getenv("EDUNITY_TOKEN"),
		UserID:   os.Getenv("EDUNITY_USER_ID"),
		UserName: os.Getenv("EDUNITY_USER_NAME"),
	}
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Provider:        getEnv("STORE_PROVIDER", "memory"),
		TTL:             getDurationEnv("STORE_TTL", 15*time.Minute),
		MaxKeys:         getIntEnv("STORE_MAX_KEYS", 10000),
		CleanupInterval: getDurationEnv("STORE_CLEANUP_INTERVAL", 5*time.Minute),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisDB:         getIntEnv("REDIS_DB", 0),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		PoolSize:        getIntEnv("REDIS_POOL_SIZE", 10),
	}
}

func loadLoggingConfig(env string) LoggingConfig {
	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", getDefaultLogLevel(env)),
		Format: getEnv("LOG_FORMAT", getDefaultLogFormat(env)),
		Output: getEnv("LOG_OUTPUT", "stdout"),
	}
}

// Validate validates the entire configuration.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store config: %w", err)
	}

	return nil
}

// Validate validates API configuration.
func (a *APIConfig) Validate() error {
	if a.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	u, err := url.Parse(a.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL")
	}

	if a.Timeout <= 0 {
		return fmt.Errorf("Timeout must be positive")
	}

	if a.MaxRetries < 0 {
		return fmt.Errorf("MaxRetries cannot be negative")
	}

	return nil
}

// Validate validates store configuration.
func (s *StoreConfig) Validate() error {
	switch s.Provider {
	case "", "memory":
	case "redis":
		if s.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis provider")
		}
	default:
		return fmt.Errorf("unknown store provider: %s", s.Provider)
	}

	if s.TTL <= 0 {
		return fmt.Errorf("TTL must be positive")
	}

	if s.MaxKeys <= 0 {
		return fmt.Errorf("MaxKeys must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getDefaultLogLevel(env string) string {
	switch env {
	case "production":
		return "info"
	default:
		return "debug"
	}
}

func getDefaultLogFormat(env string) string {
	switch env {
	case "production":
		return "json"
	default:
		return "console"
	}
}
