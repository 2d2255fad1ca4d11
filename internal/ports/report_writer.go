package ports

import "context"

// ReportWriter persists a rendered report.
type ReportWriter interface {
	// Write stores the report in a single write, replacing any previous one.
	// On failure the previous report must be left intact.
	Write(ctx context.Context, report []byte) error

	// Location describes where the report goes, for logging.
	Location() string
}
