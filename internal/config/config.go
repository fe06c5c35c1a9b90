package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTExpiry time.Duration

	SMTPHost    string
	SMTPPort    int
	SenderEmail string
	SenderPass  string

	// Cron specs for the two periodic jobs. Any valid cron expression works;
	// defaults are daily 06:30 and the 1st of each month 08:00.
	DailyReminderSpec string
	MonthlyReportSpec string

	// TTLs for the cache-aside layer in front of reads.
	SummaryCacheTTL time.Duration
	SearchCacheTTL  time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "12345"),

		SMTPHost:    getEnv("SMTP_HOST", "localhost"),
		SenderEmail: getEnv("SENDER_EMAIL", "donot-reply@homeserve.app"),
		SenderPass:  os.Getenv("SENDER_PASSWORD"),

		DailyReminderSpec: getEnv("DAILY_REMINDER_CRON", "30 6 * * *"),
		MonthlyReportSpec: getEnv("MONTHLY_REPORT_CRON", "0 8 1 * *"),
	}

	var err error
	cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "1025"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	// Parsing durations
	cfg.JWTExpiry, err = parseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}
	cfg.SummaryCacheTTL, err = parseDuration(getEnv("SUMMARY_CACHE_TTL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_CACHE_TTL: %w", err)
	}
	cfg.SearchCacheTTL, err = parseDuration(getEnv("SEARCH_CACHE_TTL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_CACHE_TTL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}
