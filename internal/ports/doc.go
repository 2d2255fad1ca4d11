// Package ports defines the interfaces that connect the extraction core to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [SnapshotSource]: Reads memory snapshots by index
//   - [ReportWriter]: Persists the rendered report
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) implement them with the file system and
// zerolog. Tests swap in in-memory implementations.
package ports
