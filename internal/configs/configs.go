package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"task-tracker.com/task-tracker/internal/constants"
)

type Config struct {
	AppURL                  string
	DatabaseDSN             string
	DatabaseLogLevel        string
	RateLimit               int
	RedisEnabled            bool
	RedisAddr               string
	RedisSnapshotKey        string
	ReminderIntervalSeconds int
	ShutdownTimeoutSeconds  int
}

// Load reads the configuration from the environment. Callers that want a
// .env file loaded should run godotenv first.
func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	var errs []string
	cfg := Config{
		AppURL:                  fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:             getEnv("DATABASE_DSN", constants.DefaultDatabaseDSN),
		DatabaseLogLevel:        strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		RateLimit:               getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120, &errs),
		RedisEnabled:            getEnvAsBool("REDIS_ENABLED", false, &errs),
		RedisAddr:               fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisSnapshotKey:        getEnv("REDIS_SNAPSHOT_KEY", constants.DefaultSnapshotKey),
		ReminderIntervalSeconds: getEnvAsInt("REMINDER_INTERVAL_SECONDS", 60, &errs),
		ShutdownTimeoutSeconds:  getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20, &errs),
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if _, ok := gormLogLevels[cfg.DatabaseLogLevel]; !ok {
		return fmt.Errorf("DB_LOG_LEVEL must be one of silent, error, warn, info")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ReminderIntervalSeconds <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.RedisEnabled && cfg.RedisSnapshotKey == "" {
		return fmt.Errorf("REDIS_SNAPSHOT_KEY must not be empty when REDIS_ENABLED is set")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]string) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("invalid integer value for %s", key))
			return defaultVal
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool, errs *[]string) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("invalid boolean value for %s", key))
			return defaultVal
		}
		return b
	}
	return defaultVal
}
