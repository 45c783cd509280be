package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// DataPath is the sqlite file backing the local key-value store.
	// Empty means the store lives in memory for the lifetime of the process.
	DataPath string

	// SupportPhone overrides the destination of the outbound chat hand-off links.
	SupportPhone string
}

func Load() Config {
	return Config{
		AppEnv:       getEnv("APP_ENV", "dev"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		HTTPPort:     getEnvInt("HTTP_PORT", 8080),
		DataPath:     getEnv("DATA_PATH", "storefront.db"),
		SupportPhone: getEnv("SUPPORT_PHONE", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
