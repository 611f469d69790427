// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/holiman/uint256"
)

// A Sig identifies a value slot in a Store. Slot numbers are assigned at
// construction time; there is no name lookup on the evaluation path.
//
type Sig int

// NoSig is the zero value for unassigned signal references.
//
const NoSig Sig = -1

// Dir is a signal's direction, as seen from outside the design.
//
type Dir uint8

// Signal directions.
//
const (
	Internal Dir = iota
	Input
	Output
)

func (d Dir) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return "internal"
}

// MaxWidth is the widest supported signal, in bits.
//
const MaxWidth = 256

type slot struct {
	name  string
	width int
	dir   Dir
	mask  uint64 // valid bits for narrow slots
	wide  int    // index into the wide arena, or -1
}

// A Store holds the entire state of a design: one width-tagged value slot per
// signal. Signals up to 64 bits wide live in a flat uint64 arena; wider ones
// (up to MaxWidth) in a parallel arena of 256-bit words. Writes are masked to
// the slot width and immediately visible to subsequent reads; commit ordering
// is the scheduler's concern, not the store's.
//
type Store struct {
	slots  []slot
	vals   []uint64
	wides  []uint256.Int
	wmasks []uint256.Int
	byName map[string]Sig
}

func newStore() *Store {
	return &Store{byName: make(map[string]Sig)}
}

// alloc allocates a slot and returns its number.
//
func (st *Store) alloc(name string, width int, dir Dir) Sig {
	n := Sig(len(st.slots))
	s := slot{name: name, width: width, dir: dir, wide: -1}
	if width <= 64 {
		s.mask = ^uint64(0) >> uint(64-width)
	} else {
		s.wide = len(st.wides)
		st.wides = append(st.wides, uint256.Int{})
		var m uint256.Int
		m.Lsh(uint256.NewInt(1), uint(width)).Sub(&m, uint256.NewInt(1))
		st.wmasks = append(st.wmasks, m)
	}
	st.slots = append(st.slots, s)
	st.vals = append(st.vals, 0)
	st.byName[name] = n
	return n
}

// Len returns the number of slots in the store.
//
func (st *Store) Len() int { return len(st.slots) }

// Lookup returns the slot allocated to the given signal name.
//
func (st *Store) Lookup(name string) (Sig, bool) {
	n, ok := st.byName[name]
	return n, ok
}

// Name returns the name of signal n.
//
func (st *Store) Name(n Sig) string { return st.slots[n].name }

// Width returns the bit width of signal n.
//
func (st *Store) Width(n Sig) int { return st.slots[n].width }

// Dir returns the direction of signal n.
//
func (st *Store) Dir(n Sig) Dir { return st.slots[n].dir }

// Wide reports whether signal n is wider than 64 bits.
//
func (st *Store) Wide(n Sig) bool { return st.slots[n].wide >= 0 }

// Get returns the value of signal n. It panics if n is wider than 64 bits.
//
func (st *Store) Get(n Sig) uint64 {
	if st.slots[n].wide >= 0 {
		panic("netsim: Get on wide signal " + st.slots[n].name)
	}
	return st.vals[n]
}

// Set sets the value of signal n, masked to its width. It panics if n is
// wider than 64 bits.
//
func (st *Store) Set(n Sig, v uint64) {
	s := &st.slots[n]
	if s.wide >= 0 {
		panic("netsim: Set on wide signal " + s.name)
	}
	st.vals[n] = v & s.mask
}

// GetBool returns the value of signal n as a boolean (non-zero is true).
//
func (st *Store) GetBool(n Sig) bool {
	if st.slots[n].wide >= 0 {
		return !st.wides[st.slots[n].wide].IsZero()
	}
	return st.vals[n] != 0
}

// SetBool sets a 1-bit signal from a boolean.
//
func (st *Store) SetBool(n Sig, v bool) {
	if v {
		st.Set(n, 1)
	} else {
		st.Set(n, 0)
	}
}

// GetWide returns a copy of the value of a wide signal.
//
func (st *Store) GetWide(n Sig) uint256.Int {
	w := st.slots[n].wide
	if w < 0 {
		panic("netsim: GetWide on narrow signal " + st.slots[n].name)
	}
	return st.wides[w]
}

// SetWide sets the value of a wide signal, masked to its width.
//
func (st *Store) SetWide(n Sig, v *uint256.Int) {
	w := st.slots[n].wide
	if w < 0 {
		panic("netsim: SetWide on narrow signal " + st.slots[n].name)
	}
	st.wides[w].And(v, &st.wmasks[w])
}

// Toggle toggles a 1-bit signal.
//
func (st *Store) Toggle(n Sig) {
	st.Set(n, st.vals[n]^1)
}
