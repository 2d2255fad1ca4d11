package domain

// Snapshot is one memory dump read from disk.
type Snapshot struct {
	// Index is the 0-based position of the dump in the sequence
	Index int

	// Path is the file the dump was read from
	Path string

	// Data holds the raw dump bytes
	Data []byte
}

// Len returns the number of bytes in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Data)
}

// At returns the sample at addr. Reads past the end yield an absent sample.
func (s Snapshot) At(addr int) Sample {
	if addr < 0 || addr >= len(s.Data) {
		return Absent()
	}
	return Present(s.Data[addr])
}
