package app

import (
	"bytes"

	"github.com/bft-labs/flagscan/internal/domain"
)

// AdvanceStats summarizes one Advance pass.
type AdvanceStats struct {
	Pruned   int
	Appended int
}

// Seed builds the initial set from the first two snapshots: one record per
// offset within their shared length where the bytes differ. Offsets past the
// shorter snapshot are never considered again.
func Seed(first, second domain.Snapshot) *domain.DiffSet {
	set := domain.NewDiffSet()
	n := min(first.Len(), second.Len())
	for addr := 0; addr < n; addr++ {
		a, b := first.Data[addr], second.Data[addr]
		if a != b {
			set.Add(addr, domain.Present(a), domain.Present(b))
		}
	}
	return set
}

// Advance folds one later snapshot into the set. A record whose new sample
// equals its last sample is deleted; every other record gets the sample
// appended. Reads past the end of snap yield absent samples.
func Advance(set *domain.DiffSet, snap domain.Snapshot) AdvanceStats {
	var st AdvanceStats
	st.Pruned = set.Retain(func(r *domain.Record) bool {
		s := snap.At(r.Address)
		if s.Equal(r.Last()) {
			return false
		}
		r.Append(s)
		st.Appended++
		return true
	})
	return st
}

// FilterBoolean returns the records whose whole history is 0s and 1s, in
// address order.
func FilterBoolean(set *domain.DiffSet) []domain.Record {
	var out []domain.Record
	for _, r := range set.Records() {
		if r.IsBoolean() {
			out = append(out, r)
		}
	}
	return out
}

// RenderReport renders one line per record.
func RenderReport(records []domain.Record) []byte {
	var buf bytes.Buffer
	for _, r := range records {
		buf.WriteString(r.Line())
	}
	return buf.Bytes()
}
