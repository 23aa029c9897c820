package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL    string
	AdminKey      string
	Port          string
	CacheDBName   string
	MigrationsDir string
	HTTPTimeout   time.Duration
	// RevertOnFailure controls whether a rejected optimistic mutation
	// rolls the rendered view back to the last confirmed snapshot, or
	// leaves it visible until the next manual refresh.
	RevertOnFailure bool
	Turso           TursoConfig
	Slack           SlackConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
