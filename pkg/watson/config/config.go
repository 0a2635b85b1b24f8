package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/watson/pkg/watson/internalerr"
)

// DefaultMemoryCapacity is how many exchanges each character remembers.
const DefaultMemoryCapacity = 5

// Config represents the watson configuration file. Empty paths select the
// built-in story, lexicon and parses.
type Config struct {
	Story          string `yaml:"story"`
	Lexicon        string `yaml:"lexicon"`
	Parses         string `yaml:"parses"`
	DB             string `yaml:"db"`
	MemoryCapacity int    `yaml:"memory_capacity"`
	Log            Log    `yaml:"log"`
}

// Log selects the logger encoding and level.
type Log struct {
	JSON  bool   `yaml:"json"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MemoryCapacity: DefaultMemoryCapacity,
		Log:            Log{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file. Missing fields keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, internalerr.Wrapf(err, "read config %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, internalerr.Wrapf(internalerr.ErrInvalidConfig, "%s: %v", path, err)
	}
	if cfg.MemoryCapacity < 0 {
		return nil, internalerr.Wrapf(internalerr.ErrInvalidConfig, "%s: memory_capacity %d is negative", path, cfg.MemoryCapacity)
	}
	if cfg.MemoryCapacity == 0 {
		cfg.MemoryCapacity = DefaultMemoryCapacity
	}

	return cfg, nil
}

// Loader returns a Loader for the content paths named in the config.
func (c *Config) Loader() *Loader {
	return &Loader{
		StoryPath:   c.Story,
		LexiconPath: c.Lexicon,
		ParsesPath:  c.Parses,
	}
}
