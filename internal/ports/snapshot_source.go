package ports

import (
	"context"

	"github.com/bft-labs/flagscan/internal/domain"
)

// SnapshotSource provides memory snapshots by 0-based index.
type SnapshotSource interface {
	// Count returns the number of snapshots in the sequence.
	// Implementations that discover snapshots may touch the file system here.
	Count(ctx context.Context) (int, error)

	// Load reads snapshot i fully into memory.
	// A missing or unreadable snapshot is returned as an error.
	Load(ctx context.Context, i int) (domain.Snapshot, error)
}
