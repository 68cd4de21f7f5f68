// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/HendryAvila/introflow/internal/intro"
)

// Config holds process-wide settings.
type Config struct {
	// DataDir holds introflow.db. Defaults to ~/.introflow.
	DataDir string `env:"INTROFLOW_DATA_DIR"`

	// ConnectorCutoff hides introductions whose effective start date is
	// before it from connector task lists. Empty disables the cutoff.
	ConnectorCutoff string `env:"INTROFLOW_CONNECTOR_CUTOFF"`

	// ResearchBatch caps how many investors one research job processes.
	ResearchBatch int `env:"INTROFLOW_RESEARCH_BATCH" envDefault:"25"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment, fills defaults and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolving home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".introflow")
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and formats.
func (c Config) Validate() error {
	if c.ConnectorCutoff != "" {
		if err := intro.ValidateDate("INTROFLOW_CONNECTOR_CUTOFF", c.ConnectorCutoff); err != nil {
			return err
		}
	}
	if c.ResearchBatch <= 0 {
		return fmt.Errorf("INTROFLOW_RESEARCH_BATCH must be positive, got %d", c.ResearchBatch)
	}
	return nil
}
