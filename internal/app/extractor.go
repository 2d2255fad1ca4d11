package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bft-labs/flagscan/internal/domain"
	"github.com/bft-labs/flagscan/internal/ports"
)

// Result summarizes a completed run.
type Result struct {
	// Snapshots is the number of snapshots processed
	Snapshots int

	// Seeded is the number of records created from the first two snapshots
	Seeded int

	// Live is the number of records still changing after the last snapshot
	Live int

	// Reported is the number of boolean records written to the report
	Reported int

	// Location is where the report was written
	Location string

	// Duration is the wall time of the run
	Duration time.Duration
}

// Extractor runs the diff pass over a snapshot source and writes the report.
type Extractor struct {
	source ports.SnapshotSource
	report ports.ReportWriter
	logger ports.Logger
}

// NewExtractor creates a new extractor with the given dependencies.
func NewExtractor(source ports.SnapshotSource, report ports.ReportWriter, logger ports.Logger) *Extractor {
	return &Extractor{
		source: source,
		report: report,
		logger: logger,
	}
}

// Run processes snapshots 0..N-1 in order and writes the report once at the
// end. Any snapshot read failure aborts the run before the report is touched.
func (e *Extractor) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	n, err := e.source.Count(ctx)
	if err != nil {
		return Result{}, err
	}
	if n < 2 {
		return Result{}, fmt.Errorf("%w: have %d", domain.ErrTooFewSnapshots, n)
	}

	first, err := e.load(ctx, 0)
	if err != nil {
		return Result{}, err
	}
	second, err := e.load(ctx, 1)
	if err != nil {
		return Result{}, err
	}

	set := Seed(first, second)
	res := Result{Snapshots: n, Seeded: set.Len()}
	e.logger.Info("seeded diff set",
		ports.Int("records", set.Len()),
		ports.Int("shared_bytes", min(first.Len(), second.Len())),
	)

	for i := 2; i < n; i++ {
		snap, err := e.load(ctx, i)
		if err != nil {
			return Result{}, err
		}
		st := Advance(set, snap)
		e.logger.Debug("advanced diff set",
			ports.Int("index", i),
			ports.Int("pruned", st.Pruned),
			ports.Int("appended", st.Appended),
			ports.Int("live", set.Len()),
		)
	}
	res.Live = set.Len()

	records := FilterBoolean(set)
	res.Reported = len(records)

	if err := e.report.Write(ctx, RenderReport(records)); err != nil {
		return Result{}, fmt.Errorf("write report %s: %w", e.report.Location(), err)
	}
	res.Location = e.report.Location()
	res.Duration = time.Since(start)

	e.logger.Info("report written",
		ports.String("location", res.Location),
		ports.Int("snapshots", res.Snapshots),
		ports.Int("seeded", res.Seeded),
		ports.Int("live", res.Live),
		ports.Int("reported", res.Reported),
		ports.Duration("took", res.Duration),
	)
	return res, nil
}

func (e *Extractor) load(ctx context.Context, i int) (domain.Snapshot, error) {
	snap, err := e.source.Load(ctx, i)
	if err != nil {
		return domain.Snapshot{}, err
	}
	e.logger.Debug("snapshot loaded",
		ports.Int("index", i),
		ports.String("path", snap.Path),
		ports.String("size", humanize.Bytes(uint64(snap.Len()))),
	)
	return snap, nil
}
