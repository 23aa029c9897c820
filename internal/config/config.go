package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvDefault := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	timeout, err := time.ParseDuration(getEnvDefault("API_TIMEOUT", "10s"))
	if err != nil {
		log.Warn("Invalid API_TIMEOUT, defaulting to 10s", "error", err)
		timeout = 10 * time.Second
	}

	cfg := Config{
		APIBaseURL:      getEnv("API_BASE_URL"),
		AdminKey:        getEnvDefault("ADMIN_KEY", ""),
		Port:            getEnv("PORT"),
		CacheDBName:     getEnvDefault("CACHE_DB_NAME", "matchday-cache.db"),
		MigrationsDir:   getEnvDefault("MIGRATIONS_DIR", "./migrations"),
		HTTPTimeout:     timeout,
		RevertOnFailure: getEnvDefault("REVERT_ON_FAILURE", "true") != "false",
		Turso: TursoConfig{
			PrimaryURL: getEnvDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvDefault("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnvDefault("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvDefault("SLACK_CHANNEL_ID", ""),
		},
	}
	return cfg
}
