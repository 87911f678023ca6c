// Package config reads the handful of settings the app takes from the
// environment. A .env file in the working directory is honored if present.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

const defaultModel = "gpt-4o-mini"

// Config holds runtime settings.
type Config struct {
	// APIKey enables the AI schedule generator. Empty disables the feature.
	APIKey string
	// Model is the chat model used for suggestions.
	Model string
	// DBPath overrides the default database location.
	DBPath string
	// LogPath enables the debug log file. Empty disables it.
	LogPath string
}

// Load reads configuration from the environment, after loading .env if one
// exists. Missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   os.Getenv("GANTT_MODEL"),
		DBPath:  os.Getenv("GANTT_DB_PATH"),
		LogPath: os.Getenv("GANTT_LOG"),
	}
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
}
