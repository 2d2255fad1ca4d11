// Package domain contains the core entities of flagscan.
//
// This package is the innermost layer. It has no dependencies on the file
// system, logging or the CLI and holds only the rules of the diff pass.
//
// # Entities
//
//   - [Snapshot]: one memory dump, an indexed byte sequence
//   - [Sample]: one observation at an address, a byte or absent
//   - [Record]: the history of samples observed at one address
//   - [DiffSet]: the live records of a run, keyed by address
//
// A record is created only from the seed pair of snapshots, grows by one
// sample per later snapshot while its value keeps changing, and is dropped
// for good the first time two consecutive samples agree.
package domain
