package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultConfirmation is the phrase an admin must type to run a destructive reset.
const DefaultConfirmation = "I confirm the daily reset."

// Config holds all configuration for the application.
type Config struct {
	AppEnv   string
	HTTPPort int

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	RedisAddr     string
	RedisPassword string

	JWTAccessSecret string

	Location           *time.Location
	DailyResetAt       string
	StartNumberDefault int
	ResetConfirmation  string
	FactRetentionDays  int
	RolloverCooldown   time.Duration
	OverviewCacheTTL   time.Duration
}

// LoadFromEnv loads configuration from environment variables. Malformed
// numbers fall back to their defaults; an unknown time zone or reset time
// is an error because the scheduler cannot run without them.
func LoadFromEnv() (*Config, error) {
	tzName := getEnv("SERVICE_TIMEZONE", "America/Panama")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", tzName, err)
	}

	resetAt := getEnv("DAILY_RESET_AT", "23:59")
	if _, _, err := ParseClock(resetAt); err != nil {
		return nil, err
	}

	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPPort: getInt("HTTP_PORT", 8080),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPath:     getEnv("DB_PATH", "./data/turns.db"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTAccessSecret: os.Getenv("JWT_ACCESS_SECRET"),

		Location:           loc,
		DailyResetAt:       resetAt,
		StartNumberDefault: getInt("START_NUMBER_DEFAULT", 1),
		ResetConfirmation:  getEnv("RESET_CONFIRMATION", DefaultConfirmation),
		FactRetentionDays:  getInt("FACT_RETENTION_DAYS", 7),
		RolloverCooldown:   getDuration("ROLLOVER_COOLDOWN", 2*time.Minute),
		OverviewCacheTTL:   getDuration("OVERVIEW_CACHE_TTL", 5*time.Second),
	}, nil
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ParseClock parses an HH:MM wall-clock time.
func ParseClock(hhmm string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid HH:MM value %q: %w", hhmm, err)
	}
	return t.Hour(), t.Minute(), nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
