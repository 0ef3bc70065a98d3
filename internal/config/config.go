// Package config loads the application configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kioku-ai/kioku/internal/memory"
)

// Backend names for the blob store.
const (
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
)

// SummarizerConfig selects and configures the extraction provider.
type SummarizerConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// Config is the full application configuration.
type Config struct {
	Backend    string           `yaml:"backend"`
	DataDir    string           `yaml:"data_dir"`
	Memory     memory.Config    `yaml:"memory"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Backend:    BackendSQLite,
		DataDir:    defaultDataDir(),
		Memory:     memory.DefaultConfig(),
		Summarizer: SummarizerConfig{Provider: "stub"},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kioku"
	}
	return filepath.Join(home, ".kioku")
}

// Load reads a YAML config file and fills unset fields with defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}
	if cfg.Backend != BackendFS && cfg.Backend != BackendSQLite {
		return Config{}, fmt.Errorf("unsupported backend: %s (use fs or sqlite)", cfg.Backend)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	cfg.Memory.ApplyDefaults()
	if err := cfg.Memory.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
