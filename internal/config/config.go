// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full process configuration.
type Config struct {
	Port string `env:"PORT" env-default:"8080"`
	LLM  LLM
}

// LLM configures the external text-interpretation / classification
// service. An empty APIKey disables external calls entirely; every
// consumer has a deterministic fallback, so the binary still works
// offline.
type LLM struct {
	Endpoint string        `env:"LLM_ENDPOINT" env-default:"https://api.openai.com/v1/chat/completions"`
	APIKey   string        `env:"LLM_API_KEY"`
	Model    string        `env:"LLM_MODEL" env-default:"gpt-4o-mini"`
	Timeout  time.Duration `env:"LLM_TIMEOUT" env-default:"30s"`
}

// Enabled reports whether the external service is configured.
func (l LLM) Enabled() bool {
	return l.APIKey != ""
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
