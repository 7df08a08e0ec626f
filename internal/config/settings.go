package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	ServerPort             string
	CatalogPath            string
	RedisAddr              string
	CatalogRefreshInterval time.Duration
}

// Load reads settings from the environment, with .env support for local
// runs. An empty RedisAddr selects the in-memory decision recorder.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Settings{
		ServerPort:             getString("PORT", "8080"),
		CatalogPath:            getString("CATALOG_PATH", "./providers.json"),
		RedisAddr:              getString("REDIS_ADDR", ""),
		CatalogRefreshInterval: time.Duration(getInt("CATALOG_REFRESH_SECONDS", 0)) * time.Second,
	}
}

func getString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
