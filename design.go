// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/konpaku-ming/netsim/internal/sigspec"
	"github.com/pkg/errors"
)

// A Design accumulates the compiled description of a circuit: its signals,
// sensitivity conditions and per-region update functions. All identifiers
// are resolved and validated here; once Build succeeds, evaluation has no
// error paths left other than settle non-convergence.
//
// Builder methods record the first error encountered and return it from
// Build, so call sites can chain declarations without checking each one.
//
type Design struct {
	name    string
	loc     string
	st      *Store
	det     detector
	regions [numRegions][]entry
	clk     Sig
	finish  Sig
	built   bool
	err     error
}

// NewDesign returns an empty design with the given name.
//
func NewDesign(name string) *Design {
	return &Design{
		name:   name,
		st:     newStore(),
		clk:    NoSig,
		finish: NoSig,
	}
}

// Locate records the logical source location of the circuit description,
// reported in fatal diagnostics.
//
func (d *Design) Locate(loc string) *Design {
	d.loc = loc
	return d
}

func (d *Design) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Signal declares a single signal and returns its slot.
//
func (d *Design) Signal(name string, width int, dir Dir) Sig {
	if d.built {
		d.fail(errors.New("design already built"))
		return NoSig
	}
	if name == "" {
		d.fail(errors.New("empty signal name"))
		return NoSig
	}
	if width < 1 || width > MaxWidth {
		d.fail(errors.Errorf("signal %s: invalid width %d", name, width))
		return NoSig
	}
	if _, ok := d.st.Lookup(name); ok {
		d.fail(errors.Errorf("signal %s declared twice", name))
		return NoSig
	}
	return d.st.alloc(name, width, dir)
}

// Signals declares signals from a spec string such as "count[8], clk, rst"
// and returns their slots in declaration order.
//
func (d *Design) Signals(spec string, dir Dir) []Sig {
	decls, err := sigspec.Decls(spec)
	if err != nil {
		d.fail(errors.Wrap(err, "signal spec"))
		return nil
	}
	out := make([]Sig, len(decls))
	for i, dc := range decls {
		out[i] = d.Signal(dc.Name, dc.Width, dir)
	}
	return out
}

// SenseSig declares a sensitivity condition on an already declared signal
// and returns its trigger mask.
//
func (d *Design) SenseSig(e Edge, n Sig) Trigs {
	if d.built {
		d.fail(errors.New("design already built"))
		return 0
	}
	if n < 0 || int(n) >= d.st.Len() {
		d.fail(errors.New("sensitivity on undeclared signal"))
		return 0
	}
	if d.st.Wide(n) {
		d.fail(errors.Errorf("sensitivity on wide signal %s", d.st.Name(n)))
		return 0
	}
	// identical conditions share a trigger bit
	for i, s := range d.det.senses {
		if s.sig == n && s.edge == e {
			return Trigs(1) << uint(i)
		}
	}
	if len(d.det.senses) >= maxSenses {
		d.fail(errors.Errorf("too many sensitivity conditions (max %d)", maxSenses))
		return 0
	}
	bit := Trigs(1) << uint(len(d.det.senses))
	d.det.senses = append(d.det.senses, sense{
		sig:   n,
		edge:  e,
		label: e.String() + " " + d.st.Name(n),
	})
	return bit
}

// Sense declares a sensitivity condition from a spec string such as
// "posedge clk" and returns its trigger mask.
//
func (d *Design) Sense(spec string) Trigs {
	s, err := sigspec.Sensitivity(spec)
	if err != nil {
		d.fail(errors.Wrap(err, "sensitivity spec"))
		return 0
	}
	n, ok := d.st.Lookup(s.Name)
	if !ok {
		d.fail(errors.Errorf("sensitivity on unknown signal %s", s.Name))
		return 0
	}
	var e Edge
	switch s.Edge {
	case sigspec.Posedge:
		e = Posedge
	case sigspec.Negedge:
		e = Negedge
	default:
		e = Anyedge
	}
	return d.SenseSig(e, n)
}

// On appends an update function to a region's dispatch table. Dispatch order
// within a region is declaration order; ties are never broken by runtime
// heuristics. The mask selects which triggers activate the entry; Initial
// entries run unconditionally and ignore it.
//
func (d *Design) On(r Region, mask Trigs, fn UpdateFn) {
	if d.built {
		d.fail(errors.New("design already built"))
		return
	}
	if r >= numRegions {
		d.fail(errors.Errorf("invalid region %d", r))
		return
	}
	if fn == nil {
		d.fail(errors.Errorf("nil update function in %s region", r))
		return
	}
	if mask == 0 && r != Initial {
		d.fail(errors.Errorf("zero trigger mask in %s region", r))
		return
	}
	d.regions[r] = append(d.regions[r], entry{mask: mask, fn: fn})
}

// Clock designates the 1-bit clock input toggled by Tick and Tock.
//
func (d *Design) Clock(n Sig) {
	if n < 0 || int(n) >= d.st.Len() {
		d.fail(errors.New("clock on undeclared signal"))
		return
	}
	if d.st.Width(n) != 1 {
		d.fail(errors.Errorf("clock signal %s must be 1 bit wide", d.st.Name(n)))
		return
	}
	d.clk = n
}

// Finish designates the signal that stops Run when it becomes non-zero.
//
func (d *Design) Finish(n Sig) {
	if n < 0 || int(n) >= d.st.Len() {
		d.fail(errors.New("finish on undeclared signal"))
		return
	}
	d.finish = n
}

// Build validates the design and returns a runnable simulation. The design
// must not be modified afterwards.
//
func (d *Design) Build() (*Sim, error) {
	if d.built {
		return nil, errors.New("design already built")
	}
	if d.err != nil {
		return nil, errors.Wrap(d.err, "design "+d.name)
	}
	empty := true
	for r := Region(0); r < numRegions; r++ {
		if len(d.regions[r]) > 0 {
			empty = false
			break
		}
	}
	if empty {
		return nil, errors.New("design " + d.name + ": no update functions")
	}
	d.built = true
	d.det.prev = make([]uint64, len(d.det.senses))

	var settleMask Trigs
	for _, e := range d.regions[Settle] {
		settleMask |= e.mask
	}

	m := &Sim{
		name:       d.name,
		loc:        d.loc,
		st:         d.st,
		det:        d.det,
		regions:    d.regions,
		settleMask: settleMask &^ TrigFirst,
		clk:        d.clk,
		finish:     d.finish,
		first:      true,
	}
	return m, nil
}
