package domain

import (
	"strconv"
	"strings"
)

// Record is the history of samples observed at one address, starting from
// snapshot 0. Every record holds at least the two seed samples.
type Record struct {
	// Address is the byte offset within the snapshots
	Address int

	// History holds one sample per snapshot seen since the record was seeded
	History []Sample
}

// Last returns the most recent sample.
func (r Record) Last() Sample {
	return r.History[len(r.History)-1]
}

// Append adds a sample to the end of the history.
func (r *Record) Append(s Sample) {
	r.History = append(r.History, s)
}

// IsBoolean reports whether every sample in the history is a present 0 or 1.
func (r Record) IsBoolean() bool {
	for _, s := range r.History {
		if !s.IsBoolean() {
			return false
		}
	}
	return true
}

// Line renders the record as one report line: the address in lowercase hex
// without prefix, then the comma-separated decimal history.
//
//	1a3f: 0, 1, 0
func (r Record) Line() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(int64(r.Address), 16))
	b.WriteString(": ")
	for i, s := range r.History {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	b.WriteByte('\n')
	return b.String()
}
