package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (FLAGSCAN_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("dir", os.Getenv("FLAGSCAN_DIR"), &cfg.Dir)
	s.setString("pattern", os.Getenv("FLAGSCAN_PATTERN"), &cfg.Pattern)
	s.setString("output", os.Getenv("FLAGSCAN_OUTPUT"), &cfg.Output)
	s.setString("log-level", os.Getenv("FLAGSCAN_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("count", os.Getenv("FLAGSCAN_COUNT"), &cfg.Count); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("FLAGSCAN_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("FLAGSCAN_WATCH"), &cfg.Watch)

	return nil
}
