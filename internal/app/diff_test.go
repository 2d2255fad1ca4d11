package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/flagscan/internal/domain"
)

func snaps(data ...[]byte) []domain.Snapshot {
	out := make([]domain.Snapshot, len(data))
	for i, d := range data {
		out[i] = domain.Snapshot{Index: i, Data: d}
	}
	return out
}

// run drives the pass the same way Extractor.Run does, without I/O.
func run(s []domain.Snapshot) *domain.DiffSet {
	set := Seed(s[0], s[1])
	for _, snap := range s[2:] {
		Advance(set, snap)
	}
	return set
}

func history(vals ...byte) []domain.Sample {
	out := make([]domain.Sample, len(vals))
	for i, v := range vals {
		out[i] = domain.Present(v)
	}
	return out
}

func TestSeedIdenticalSnapshotsIsEmpty(t *testing.T) {
	s := snaps([]byte{1, 2, 3, 4}, []byte{1, 2, 3, 4})

	set := Seed(s[0], s[1])
	assert.True(t, set.Empty())
	assert.Empty(t, RenderReport(FilterBoolean(set)))
}

func TestSeedOnlyDifferingOffsets(t *testing.T) {
	s := snaps([]byte{0, 5, 9, 1}, []byte{1, 5, 8, 1})

	set := Seed(s[0], s[1])
	require.Equal(t, 2, set.Len())

	r, ok := set.Get(0)
	require.True(t, ok)
	assert.Equal(t, history(0, 1), r.History)

	r, ok = set.Get(2)
	require.True(t, ok)
	assert.Equal(t, history(9, 8), r.History)
}

func TestSeedIgnoresOffsetsBeyondShorterSnapshot(t *testing.T) {
	s := snaps(
		[]byte{0, 0},
		[]byte{0, 0, 1, 0},
		[]byte{0, 0, 0, 1},
		[]byte{0, 0, 1, 0},
	)

	set := run(s)
	assert.True(t, set.Empty())
	for addr := 2; addr < 4; addr++ {
		_, ok := set.Get(addr)
		assert.False(t, ok, "address %d must never be tracked", addr)
	}
}

func TestAdvancePrunesSettledAddress(t *testing.T) {
	s := snaps([]byte{5}, []byte{7}, []byte{7}, []byte{7})

	set := Seed(s[0], s[1])
	require.Equal(t, 1, set.Len())

	st := Advance(set, s[2])
	assert.Equal(t, AdvanceStats{Pruned: 1}, st)
	assert.True(t, set.Empty())

	// Once deleted, a record is never recreated.
	Advance(set, domain.Snapshot{Data: []byte{9}})
	assert.True(t, set.Empty())
}

func TestAdvanceAppendsChangingAddress(t *testing.T) {
	s := snaps([]byte{0, 3}, []byte{1, 4}, []byte{0, 4})

	set := Seed(s[0], s[1])
	st := Advance(set, s[2])
	assert.Equal(t, AdvanceStats{Pruned: 1, Appended: 1}, st)

	r, ok := set.Get(0)
	require.True(t, ok)
	assert.Equal(t, history(0, 1, 0), r.History)
}

func TestAlternatingFlagSurvives(t *testing.T) {
	s := snaps(
		[]byte{9, 0, 9},
		[]byte{9, 1, 9},
		[]byte{9, 0, 9},
		[]byte{9, 1, 9},
	)

	records := FilterBoolean(run(s))
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Address)
	assert.Equal(t, history(0, 1, 0, 1), records[0].History)
	assert.Equal(t, "1: 0, 1, 0, 1\n", string(RenderReport(records)))
}

func TestNonBooleanHistoryIsFiltered(t *testing.T) {
	s := snaps([]byte{0}, []byte{5})

	set := run(s)
	require.Equal(t, 1, set.Len())
	assert.Empty(t, FilterBoolean(set))
}

func TestRepeatAfterSeedPrunesBeforeOutput(t *testing.T) {
	s := snaps(
		[]byte{0, 0, 0},
		[]byte{0, 1, 0},
		[]byte{0, 1, 0},
		[]byte{0, 1, 0},
	)

	set := Seed(s[0], s[1])
	r, ok := set.Get(1)
	require.True(t, ok)
	assert.Equal(t, history(0, 1), r.History)

	Advance(set, s[2])
	assert.True(t, set.Empty())

	Advance(set, s[3])
	assert.Empty(t, RenderReport(FilterBoolean(set)))
}

func TestTwoSnapshotsReportSeedPairs(t *testing.T) {
	s := snaps([]byte{0, 1, 2, 0}, []byte{1, 0, 3, 0})

	got := string(RenderReport(FilterBoolean(run(s))))
	assert.Equal(t, "0: 0, 1\n1: 1, 0\n", got)
}

func TestOutOfRangeReadAppendsAbsent(t *testing.T) {
	s := snaps(
		[]byte{0, 0, 0, 0},
		[]byte{0, 0, 0, 1},
		[]byte{0, 0},
	)

	set := run(s)
	r, ok := set.Get(3)
	require.True(t, ok, "absent read must not prune the record")
	require.Len(t, r.History, 3)
	assert.True(t, r.History[2].IsAbsent())
	assert.Empty(t, FilterBoolean(set))
}

func TestConsecutiveAbsentReadsPrune(t *testing.T) {
	s := snaps(
		[]byte{0, 0, 0, 0},
		[]byte{0, 0, 0, 1},
		[]byte{0, 0},
		[]byte{0, 0},
	)

	set := run(s)
	_, ok := set.Get(3)
	assert.False(t, ok)
}

func TestAbsentThenPresentKeepsTracking(t *testing.T) {
	s := snaps(
		[]byte{0, 1},
		[]byte{1, 0},
		[]byte{0},
		[]byte{1, 0},
	)

	set := run(s)
	r, ok := set.Get(1)
	require.True(t, ok)
	require.Len(t, r.History, 4)
	assert.True(t, r.History[2].IsAbsent())
	assert.True(t, r.History[3].Equal(domain.Present(0)))

	records := FilterBoolean(set)
	require.Len(t, records, 1)
	assert.Equal(t, "0: 0, 1, 0, 1\n", string(RenderReport(records)))
}

func TestReportIsInAddressOrder(t *testing.T) {
	a := make([]byte, 0x120)
	b := make([]byte, 0x120)
	b[0x11f] = 1
	b[0x0a] = 1
	b[0x100] = 1

	got := string(RenderReport(FilterBoolean(run(snaps(a, b)))))
	assert.Equal(t, "a: 0, 1\n100: 0, 1\n11f: 0, 1\n", got)
}
