// Package config loads runtime configuration for the agent CLI: defaults,
// then an optional YAML file, then environment variables, each layer
// overriding the last. A .env file in the working directory is honoured via
// godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries every runtime setting of the CLI.
type Config struct {
	// Model is the model identifier sent to the provider.
	Model string `yaml:"model"`

	// BaseURL overrides the provider's default endpoint root.
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates provider requests. Only read from the
	// environment, never from the YAML file.
	APIKey string `yaml:"-"`

	// IterationBudget bounds model invocations per run.
	IterationBudget int `yaml:"iteration_budget"`

	// RequestTimeoutSeconds is the per-request deadline for provider calls.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// RetryEnabled turns on the retry middleware for transient provider
	// errors.
	RetryEnabled bool `yaml:"retry_enabled"`

	// VectorStorePath is the SQLite file backing the supplier document
	// index.
	VectorStorePath string `yaml:"vector_store_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:                 "llama-3.3-70b-versatile",
		IterationBudget:       25,
		RequestTimeoutSeconds: 60,
		VectorStorePath:       "scdra.db",
	}
}

// RequestTimeout returns the request deadline as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when path is empty), then environment variables. A missing
// .env file is not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.IterationBudget < 1 {
		return Config{}, fmt.Errorf("config: iteration_budget must be at least 1, got %d", cfg.IterationBudget)
	}
	if cfg.RequestTimeoutSeconds < 1 {
		return Config{}, fmt.Errorf("config: request_timeout_seconds must be at least 1, got %d", cfg.RequestTimeoutSeconds)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SCDRA_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SCDRA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SCDRA_VECTOR_STORE"); v != "" {
		cfg.VectorStorePath = v
	}
	if v := os.Getenv("SCDRA_RETRY"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.RetryEnabled = parsed
		}
	}
	if v := os.Getenv("SCDRA_BUDGET"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.IterationBudget = parsed
		}
	}
	if v := os.Getenv("SCDRA_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeoutSeconds = parsed
		}
	}
}
