package domain

import "sort"

// DiffSet holds the live records of a run in ascending address order.
// It is owned by a single run and is not safe for concurrent use.
type DiffSet struct {
	records []Record
}

// NewDiffSet creates an empty set.
func NewDiffSet() *DiffSet {
	return &DiffSet{records: make([]Record, 0)}
}

// Add stores a record for addr with the given history, replacing any
// existing record at the same address.
func (d *DiffSet) Add(addr int, history ...Sample) {
	h := make([]Sample, len(history))
	copy(h, history)

	i := d.search(addr)
	if i < len(d.records) && d.records[i].Address == addr {
		d.records[i].History = h
		return
	}
	// Seeding walks offsets upward, so this is an append in practice.
	d.records = append(d.records, Record{})
	copy(d.records[i+1:], d.records[i:])
	d.records[i] = Record{Address: addr, History: h}
}

// Get returns the record at addr.
func (d *DiffSet) Get(addr int) (Record, bool) {
	i := d.search(addr)
	if i < len(d.records) && d.records[i].Address == addr {
		return d.records[i], true
	}
	return Record{}, false
}

// Len returns the number of live records.
func (d *DiffSet) Len() int {
	return len(d.records)
}

// Empty returns true if no records are live.
func (d *DiffSet) Empty() bool {
	return len(d.records) == 0
}

// Retain calls keep for every record in address order and drops the records
// for which it returns false. keep may mutate the record it is given.
// It returns the number of records dropped.
func (d *DiffSet) Retain(keep func(r *Record) bool) int {
	n := 0
	for i := range d.records {
		if keep(&d.records[i]) {
			d.records[n] = d.records[i]
			n++
		}
	}
	dropped := len(d.records) - n
	for i := n; i < len(d.records); i++ {
		d.records[i] = Record{}
	}
	d.records = d.records[:n]
	return dropped
}

// Records returns the live records in address order.
func (d *DiffSet) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

func (d *DiffSet) search(addr int) int {
	return sort.Search(len(d.records), func(i int) bool {
		return d.records[i].Address >= addr
	})
}
