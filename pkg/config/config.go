package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Redis
	Redis RedisConfig

	// Indicator source
	Source SourceConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Presentation
	WatchlistPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	Prefix   string
}

// SourceConfig holds the indicator page source configuration
type SourceConfig struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
	CacheTTL       time.Duration
	Workers        int
	RequestsPerSec float64
	MaxRetries     int
}

// SchedulerConfig holds refresh schedule configuration
type SchedulerConfig struct {
	RefreshCron string // cron expression with seconds field
	MaxRetries  int
	RetryDelay  time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Prefix:   getEnv("REDIS_PREFIX", "macroscore"),
		},

		Source: SourceConfig{
			BaseURL:        getEnv("SOURCE_BASE_URL", "https://tradingeconomics.com"),
			UserAgent:      getEnv("SOURCE_USER_AGENT", DefaultUserAgent),
			AcceptLanguage: getEnv("SOURCE_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
			Timeout:        getEnvAsDuration("SOURCE_TIMEOUT", "30s"),
			CacheTTL:       getEnvAsDuration("SOURCE_CACHE_TTL", "1h"),
			Workers:        getEnvAsInt("SOURCE_WORKERS", 4),
			RequestsPerSec: getEnvAsFloat("SOURCE_RPS", 2),
			MaxRetries:     getEnvAsInt("SOURCE_MAX_RETRIES", 3),
		},

		Scheduler: SchedulerConfig{
			RefreshCron: getEnv("REFRESH_CRON", "0 0 * * * *"),
			MaxRetries:  getEnvAsInt("REFRESH_MAX_RETRIES", 2),
			RetryDelay:  getEnvAsDuration("REFRESH_RETRY_DELAY", "1m"),
		},

		WatchlistPath: getEnv("WATCHLIST_PATH", ""),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// DefaultUserAgent is sent to the indicator source unless overridden
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Source.BaseURL == "" {
		return fmt.Errorf("SOURCE_BASE_URL is required")
	}

	if c.Source.Workers < 1 {
		return fmt.Errorf("SOURCE_WORKERS must be at least 1, got %d", c.Source.Workers)
	}

	if c.Source.RequestsPerSec <= 0 {
		return fmt.Errorf("SOURCE_RPS must be positive, got %v", c.Source.RequestsPerSec)
	}

	if c.Source.CacheTTL < 0 {
		return fmt.Errorf("SOURCE_CACHE_TTL must not be negative")
	}

	if c.Scheduler.RefreshCron == "" {
		return fmt.Errorf("REFRESH_CRON is required")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
