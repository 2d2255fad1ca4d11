package domain

import "strconv"

// Sample is a single observed value at an address. A sample read past the
// end of a snapshot is absent.
type Sample struct {
	value   byte
	present bool
}

// Present returns a sample holding v.
func Present(v byte) Sample {
	return Sample{value: v, present: true}
}

// Absent returns the sample produced by an out-of-range read.
func Absent() Sample {
	return Sample{}
}

// IsAbsent reports whether the sample came from an out-of-range read.
func (s Sample) IsAbsent() bool {
	return !s.present
}

// Equal reports whether two samples match. A present sample never equals an
// absent one; two absent samples are equal, so a record read past the end of
// two snapshots in a row is pruned like any settled address.
func (s Sample) Equal(o Sample) bool {
	if s.present != o.present {
		return false
	}
	return !s.present || s.value == o.value
}

// IsBoolean reports whether the sample is present and holds 0 or 1.
func (s Sample) IsBoolean() bool {
	return s.present && (s.value == 0 || s.value == 1)
}

// String renders the decimal value. Absent samples render empty.
func (s Sample) String() string {
	if !s.present {
		return ""
	}
	return strconv.Itoa(int(s.value))
}
