package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port int `env:"PORT" envDefault:"8080"`
	}

	Telegram struct {
		BotToken    string `env:"BOT_TOKEN,required"`
		PollTimeout int    `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"30"`
	}

	Gemini struct {
		APIKey string `env:"GEMINI_API_KEY,required"`
		Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	}

	Store struct {
		// Backend selects the profile store implementation: file, redis or memory.
		Backend string `env:"STORE_BACKEND" envDefault:"file"`
		Path    string `env:"STORE_PATH" envDefault:"database.json"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}
}

// Load reads the .env file if present and parses the environment.
// A missing required credential is returned as an error so main can
// exit with a diagnostic instead of panicking.
func Load() (*Config, error) {
	// Ignore a missing .env file; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}
