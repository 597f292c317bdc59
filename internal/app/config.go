package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sophialabs/ringconsole/internal/infrastructure/outbound/logging"
)

// Config holds all configurable parameters for the application.
type Config struct {
	Capacity    int    `yaml:"capacity"` // 0 = ask on startup
	LogLevel    string `yaml:"log_level"`
	Color       bool   `yaml:"color"`
	HistoryFile string `yaml:"history_file"`

	ShutdownTimeout time.Duration `yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Capacity: 0,
		LogLevel: "info",
		Color:    true,

		ShutdownTimeout: 2 * time.Second,
	}
}

// LoadConfigFile overlays the YAML document at path onto base. Unknown keys
// are rejected. An empty file leaves base unchanged.
func LoadConfigFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg := base
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", c.Capacity)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
