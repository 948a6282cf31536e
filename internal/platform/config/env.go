// Package config loads process settings from BIOGUESSR_* environment
// variables. Command-line flags are applied on top by each entrypoint.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Telemetry controls opt-in trace export.
type Telemetry struct {
	Endpoint string `env:"BIOGUESSR_OTEL_ENDPOINT"`
	Enabled  bool   `env:"BIOGUESSR_OTEL_ENABLED" envDefault:"true"`
}

// Client is the game client's configuration.
type Client struct {
	APIURL   string `env:"BIOGUESSR_API_URL" envDefault:"http://localhost:5000"`
	Initials string `env:"BIOGUESSR_INITIALS" envDefault:"AAA"`
	// Seed 0 means derive one from the clock at startup.
	Seed int64 `env:"BIOGUESSR_SEED" envDefault:"0"`

	Telemetry Telemetry
}

// Server is the question and leaderboard server's configuration.
type Server struct {
	Port        int    `env:"BIOGUESSR_SERVER_PORT" envDefault:"5000"`
	AnimalsPath string `env:"BIOGUESSR_ANIMALS_PATH" envDefault:"data/animals.json"`
	DBPath      string `env:"BIOGUESSR_DB_PATH" envDefault:"data/leaderboard.db"`

	Telemetry Telemetry
}

// ParseEnv fills target from the environment.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadClient() (Client, error) {
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Server{}, fmt.Errorf("invalid server port %d", cfg.Port)
	}
	return cfg, nil
}
