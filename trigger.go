// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// Trigs is a trigger bitset: one bit per declared sensitivity, plus the
// reserved TrigFirst bit.
//
type Trigs uint64

// TrigFirst is the forced first-evaluation trigger. It is reported exactly
// once, on the first settle of a freshly built design, so that one-time
// logic never has to rely on a sentinel previous value.
//
const TrigFirst Trigs = 1 << 63

// maxSenses is the number of regular trigger bits (bit 63 is TrigFirst).
//
const maxSenses = 63

// Any reports whether any trigger in the set fired.
//
func (t Trigs) Any() bool { return t != 0 }

// Edge is a sensitivity edge kind.
//
type Edge uint8

// Edge kinds. Posedge fires on a 0 to non-zero transition of the signal,
// Negedge on non-zero to 0, Anyedge on any value change.
//
const (
	Posedge Edge = iota
	Negedge
	Anyedge
)

func (e Edge) String() string {
	switch e {
	case Posedge:
		return "posedge"
	case Negedge:
		return "negedge"
	}
	return "edge"
}

// A sense is one declared sensitivity condition.
//
type sense struct {
	sig   Sig
	edge  Edge
	label string
}

// detector compares the current values of the sensitivity signals against
// their last snapshot and reports which conditions fired. It owns the only
// previous-value state in the kernel; snapshots happen only when the
// scheduler explicitly asks for one.
//
type detector struct {
	senses []sense
	prev   []uint64
}

// compute returns the trigger bitset for the store's current values. It is a
// pure function of current vs. previous values; it never snapshots.
//
func (d *detector) compute(st *Store) Trigs {
	var t Trigs
	for i := range d.senses {
		s := &d.senses[i]
		cur := st.vals[s.sig]
		prev := d.prev[i]
		switch s.edge {
		case Posedge:
			if prev == 0 && cur != 0 {
				t |= 1 << uint(i)
			}
		case Negedge:
			if prev != 0 && cur == 0 {
				t |= 1 << uint(i)
			}
		case Anyedge:
			if prev != cur {
				t |= 1 << uint(i)
			}
		}
	}
	return t
}

// snapshot copies the current values of all sensitivity signals into the
// previous-value slots.
//
func (d *detector) snapshot(st *Store) {
	for i := range d.senses {
		d.prev[i] = st.vals[d.senses[i].sig]
	}
}

// label returns a human readable description of the trigger bits in t,
// for diagnostics.
//
func (d *detector) label(t Trigs) string {
	var s string
	if t&TrigFirst != 0 {
		s = "first iteration"
	}
	for i := range d.senses {
		if t&(1<<uint(i)) == 0 {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += d.senses[i].label
	}
	if s == "" {
		return "none"
	}
	return s
}
