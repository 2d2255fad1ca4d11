package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/flagscan/internal/domain"
	"github.com/bft-labs/flagscan/internal/watch"
)

// Defaults reproduce the layout the emulator dumps into: build/memory0.bin
// through build/memory6.bin, with the report in the working directory.
const (
	DefaultDir      = "build"
	DefaultPattern  = "memory%d.bin"
	DefaultCount    = 7
	DefaultOutput   = "./changes.txt"
	DefaultLogLevel = "info"

	// StdoutOutput writes the report to standard output.
	StdoutOutput = "-"
)

// Config holds CLI configuration for flagscan.
type Config struct {
	Dir     string
	Pattern string
	// Count is the number of snapshots; 0 discovers them.
	Count  int
	Output string

	Watch    bool
	Debounce time.Duration

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Dir:      DefaultDir,
		Pattern:  DefaultPattern,
		Count:    DefaultCount,
		Output:   DefaultOutput,
		Debounce: watch.DefaultDebounce,
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("%w: dir is required", domain.ErrInvalidConfig)
	}
	if err := validatePattern(c.Pattern); err != nil {
		return err
	}
	if c.Count < 0 {
		return fmt.Errorf("%w: count must not be negative", domain.ErrInvalidConfig)
	}
	if c.Count == 1 {
		return fmt.Errorf("%w: count must be 0 (discover) or at least 2", domain.ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is required", domain.ErrInvalidConfig)
	}
	if c.Watch && c.Output == StdoutOutput {
		return fmt.Errorf("%w: watch mode needs a report file, not stdout", domain.ErrInvalidConfig)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive", domain.ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: log-level: %v", domain.ErrInvalidConfig, err)
	}
	return lvl, nil
}

// validatePattern requires exactly one %d verb and no other verbs.
func validatePattern(p string) error {
	if p == "" {
		return fmt.Errorf("%w: pattern is required", domain.ErrInvalidConfig)
	}
	rest := strings.ReplaceAll(p, "%%", "")
	if strings.Count(rest, "%d") != 1 || strings.Count(rest, "%") != 1 {
		return fmt.Errorf("%w: pattern %q must contain exactly one %%d", domain.ErrInvalidConfig, p)
	}
	if strings.ContainsRune(p, '/') {
		return fmt.Errorf("%w: pattern %q must be a file name; use dir for the directory", domain.ErrInvalidConfig, p)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
// Zero is a real value here, so absence is carried by the nil pointer.
func (s *configSetter) setInt(flag string, value *int, dst *int) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	if *value < 0 {
		return fmt.Errorf("%s must not be negative", flag)
	}
	*dst = *value
	return nil
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	return s.setInt(flag, &i, dst)
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
