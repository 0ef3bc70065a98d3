package memory

// Default retention and prompt limits.
const (
	DefaultMaxFacts          = 60
	DefaultMaxEpisodes       = 12
	DefaultMaxPromptFacts    = 4
	DefaultMaxPromptEpisodes = 1
	DefaultMaxMemoryChars    = 1000
)

// Config bounds what the subsystem stores and what it injects into prompts.
type Config struct {
	MaxFacts          int `yaml:"max_facts"`
	MaxEpisodes       int `yaml:"max_episodes"`
	MaxPromptFacts    int `yaml:"max_prompt_facts"`
	MaxPromptEpisodes int `yaml:"max_prompt_episodes"`
	MaxMemoryChars    int `yaml:"max_memory_chars"`
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		MaxFacts:          DefaultMaxFacts,
		MaxEpisodes:       DefaultMaxEpisodes,
		MaxPromptFacts:    DefaultMaxPromptFacts,
		MaxPromptEpisodes: DefaultMaxPromptEpisodes,
		MaxMemoryChars:    DefaultMaxMemoryChars,
	}
}

// ApplyDefaults fills zero-valued fields with the standard limits.
func (c *Config) ApplyDefaults() {
	if c.MaxFacts == 0 {
		c.MaxFacts = DefaultMaxFacts
	}
	if c.MaxEpisodes == 0 {
		c.MaxEpisodes = DefaultMaxEpisodes
	}
	if c.MaxPromptFacts == 0 {
		c.MaxPromptFacts = DefaultMaxPromptFacts
	}
	if c.MaxPromptEpisodes == 0 {
		c.MaxPromptEpisodes = DefaultMaxPromptEpisodes
	}
	if c.MaxMemoryChars == 0 {
		c.MaxMemoryChars = DefaultMaxMemoryChars
	}
}

// Validate reports the first invalid limit.
func (c *Config) Validate() error {
	if c.MaxFacts < 1 {
		return newConfigError("max_facts must be at least 1")
	}
	if c.MaxEpisodes < 1 {
		return newConfigError("max_episodes must be at least 1")
	}
	if c.MaxPromptFacts < 1 {
		return newConfigError("max_prompt_facts must be at least 1")
	}
	if c.MaxPromptEpisodes < 1 {
		return newConfigError("max_prompt_episodes must be at least 1")
	}
	if c.MaxMemoryChars < 1 {
		return newConfigError("max_memory_chars must be at least 1")
	}
	if c.MaxPromptFacts > c.MaxFacts {
		return newConfigError("max_prompt_facts cannot exceed max_facts")
	}
	if c.MaxPromptEpisodes > c.MaxEpisodes {
		return newConfigError("max_prompt_episodes cannot exceed max_episodes")
	}
	return nil
}
