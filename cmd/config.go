package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
// Thresholds and the sweep schedule have working defaults; connection
// settings must be provided.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RMQURL      string
	RMQExchange string

	// SLASweepSpec is a six-field cron expression with a seconds column.
	SLASweepSpec         string
	SLARuleTimeout       time.Duration
	SLAPickupThreshold   time.Duration
	SLADeliveryThreshold time.Duration
	SLAStaleThreshold    time.Duration
}

// LoadConfig reads the environment, optionally seeded from a .env file.
// A missing .env is fine in production where the environment is injected.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      envOrDefault("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSslMode:   envOrDefault("DB_SSLMODE", "disable"),
		RMQURL:      os.Getenv("RMQ_URL"),
		RMQExchange: envOrDefault("RMQ_EXCHANGE", "parcelhub.events"),

		SLASweepSpec: envOrDefault("SLA_SWEEP_SPEC", "0 */10 * * * *"),
	}

	for name, value := range map[string]string{
		"DB_HOST":     cfg.DBHost,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"RMQ_URL":     cfg.RMQURL,
	} {
		if value == "" {
			return Config{}, fmt.Errorf("%s is not set", name)
		}
	}

	var err error
	if cfg.SLARuleTimeout, err = durationOrDefault("SLA_RULE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SLAPickupThreshold, err = durationOrDefault("SLA_PICKUP_THRESHOLD", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SLADeliveryThreshold, err = durationOrDefault("SLA_DELIVERY_THRESHOLD", 72*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SLAStaleThreshold, err = durationOrDefault("SLA_STALE_THRESHOLD", 48*time.Hour); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
