package cmd

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every knob the engine reads from the environment.
type Config struct {
	HTTPPort string
	LogLevel string

	// StorageDriver selects the persistence backend: "memory" or "postgres".
	StorageDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DriverActiveWithin time.Duration
	DriverOfflineAfter time.Duration

	NotifyWebhookURL string

	KafkaBrokers             []string
	KafkaOrderChangedTopic   string
	KafkaDriverLocationTopic string

	RedisAddr     string
	RedisPassword string
	RedisGeoKey   string

	AutoDispatch bool

	// CashOverCollect is "forbid" or "with_note".
	CashOverCollect string
}

// LoadConfig reads the environment into a Config, applying defaults for
// everything optional. Call godotenv.Load before this to pick up a .env file.
func LoadConfig() Config {
	return Config{
		HTTPPort:      envOr("HTTP_PORT", "8080"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		StorageDriver: envOr("STORAGE_DRIVER", "memory"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "dispatch"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		DriverActiveWithin: envDurationOr("DRIVER_ACTIVE_WITHIN", time.Minute),
		DriverOfflineAfter: envDurationOr("DRIVER_OFFLINE_AFTER", 5*time.Minute),

		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),

		KafkaBrokers:             envListOr("KAFKA_BROKERS", nil),
		KafkaOrderChangedTopic:   envOr("KAFKA_ORDER_CHANGED_TOPIC", "order-changed"),
		KafkaDriverLocationTopic: envOr("KAFKA_DRIVER_LOCATION_TOPIC", "driver-location"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisGeoKey:   envOr("REDIS_GEO_KEY", "drivers:geo"),

		AutoDispatch: envBoolOr("AUTO_DISPATCH", false),

		CashOverCollect: envOr("CASH_OVERCOLLECT", "forbid"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envBoolOr(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func envListOr(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
