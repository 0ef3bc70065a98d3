package cli

import (
	"os"
	"path/filepath"

	"github.com/kioku-ai/kioku/internal/blob"
	"github.com/kioku-ai/kioku/internal/config"
	"github.com/kioku-ai/kioku/internal/memory"
	"github.com/kioku-ai/kioku/internal/observe"
	"github.com/kioku-ai/kioku/internal/summarizer"
)

func newObserver() *observe.Observer {
	if ciMode {
		return observe.NewJSON(os.Stdout, verbose)
	}
	return observe.New(os.Stdout, verbose)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func newStore(cfg config.Config) (blob.Store, error) {
	if cfg.Backend == config.BackendFS {
		return blob.NewFSStore(filepath.Join(cfg.DataDir, "blobs"))
	}
	return blob.NewSQLiteStore(filepath.Join(cfg.DataDir, "memories.db"))
}

func newService(cfg config.Config, obs *observe.Observer) (*memory.Service, blob.Store, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc, err := memory.NewService(store, obs, cfg.Memory)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return svc, store, nil
}

func newSummarizer(cfg config.SummarizerConfig) (summarizer.Summarizer, error) {
	switch cfg.Provider {
	case "openai":
		return summarizer.NewOpenAISummarizer(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "gemini":
		return summarizer.NewGeminiSummarizer(cfg.APIKey, cfg.Model)
	case "anthropic":
		return summarizer.NewAnthropicSummarizer(cfg.APIKey, cfg.Model)
	case "ollama":
		return summarizer.NewOllamaSummarizer(cfg.Model)
	default:
		return summarizer.NewStubSummarizer(), nil
	}
}
