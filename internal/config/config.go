package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".spi.yml"

// Config holds interpreter and CLI settings.
type Config struct {
	MaxCallDepth int    `yaml:"max_call_depth"`
	Trace        bool   `yaml:"trace"`
	Color        bool   `yaml:"color"`
	Extension    string `yaml:"extension"`
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	return "config validation failed: " + strings.Join(e.Issues, "; ")
}

func Default() Config {
	return Config{
		MaxCallDepth: 1024,
		Color:        true,
		Extension:    ".pas",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	if err := Decode(file, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r into cfg and validates the result. Fields missing
// from the document keep their current values.
func Decode(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	var issues []string
	if c.MaxCallDepth <= 0 {
		issues = append(issues, fmt.Sprintf("max_call_depth must be positive, got %d", c.MaxCallDepth))
	}
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		issues = append(issues, fmt.Sprintf("extension %q must start with '.'", c.Extension))
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
