package jobsystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file form of a [System]'s settings. Hooks, loggers and
// meters are not file-configurable; pass those as options.
//
//	limit: 8
//	panic_as_error: true
type Config struct {
	// Limit bounds concurrently running computations. Zero means unlimited.
	Limit int `yaml:"limit"`

	// PanicAsError makes Poll and Wait return faults instead of panicking.
	PanicAsError bool `yaml:"panic_as_error"`
}

// DefaultConfig returns the settings a System has when created without
// options.
func DefaultConfig() Config {
	return Config{}
}

// ParseConfig decodes YAML into a Config on top of [DefaultConfig] and
// validates it. Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("jobsystem: parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("jobsystem: read config: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports whether c describes a usable System.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, c.Limit)
	}
	return nil
}

// Options converts c into the equivalent [Option] list. Extra options are
// appended, so they can add hooks or override file settings.
func (c Config) Options(extra ...Option) []Option {
	var opts []Option
	if c.Limit > 0 {
		opts = append(opts, WithLimit(c.Limit))
	}
	if c.PanicAsError {
		opts = append(opts, WithPanicAsError())
	}
	return append(opts, extra...)
}
