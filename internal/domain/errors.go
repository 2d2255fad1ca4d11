package domain

import "errors"

// Domain errors returned by flagscan. Check them with errors.Is.
var (
	// ErrTooFewSnapshots is returned when fewer than two snapshots are configured or found.
	ErrTooFewSnapshots = errors.New("flagscan: at least two snapshots are required")

	// ErrNoSnapshots is returned when auto-discovery finds no snapshot at index 0.
	ErrNoSnapshots = errors.New("flagscan: no snapshots found")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("flagscan: invalid configuration")
)
