// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace records signal activity of a running simulation. A Probe
// samples a set of watched signals once per clock cycle and feeds the
// samples to one or more recorders: an in-memory ring for tests, a VCD
// writer for waveform viewers, or a SQLite store for offline queries.
//
package trace

import (
	"github.com/konpaku-ming/netsim"
	"github.com/konpaku-ming/netsim/sym"
	"github.com/pkg/errors"
)

// A Recorder consumes per-cycle samples of the watched signals. Begin is
// called once with the watched variables before the first sample; vals in
// Sample are indexed like that slice and only valid for the duration of the
// call.
//
type Recorder interface {
	Begin(design string, vars []sym.Var) error
	Sample(cycle uint64, vals []uint64) error
	Close() error
}

// A Probe binds a watch list to a simulation and pumps samples to its
// recorders.
//
type Probe struct {
	m    *netsim.Sim
	vars []sym.Var
	vals []uint64
	recs []Recorder
}

// New resolves the watch patterns against the directory and starts the
// recorders. Wide signals cannot be watched.
//
func New(m *netsim.Sim, tab *sym.Table, watch []string, recs ...Recorder) (*Probe, error) {
	var vars []sym.Var
	seen := make(map[netsim.Sig]bool)
	for _, pat := range watch {
		vs := tab.Glob(pat)
		if len(vs) == 0 {
			return nil, errors.Errorf("watch %q matches no signal", pat)
		}
		for _, v := range vs {
			if seen[v.Sig] {
				continue
			}
			if m.Store().Wide(v.Sig) {
				return nil, errors.Errorf("cannot watch wide signal %q", v.Path)
			}
			seen[v.Sig] = true
			vars = append(vars, v)
		}
	}
	p := &Probe{m: m, vars: vars, vals: make([]uint64, len(vars)), recs: recs}
	for _, r := range recs {
		if err := r.Begin(m.Name(), vars); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Vars returns the watched variables, in sample order.
//
func (p *Probe) Vars() []sym.Var { return p.vars }

// Sample records the current value of every watched signal against the
// simulation's cycle counter.
//
func (p *Probe) Sample() error {
	for i, v := range p.vars {
		p.vals[i] = p.m.Get(v.Sig)
	}
	for _, r := range p.recs {
		if err := r.Sample(p.m.Cycles(), p.vals); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all recorders, keeping the first error.
//
func (p *Probe) Close() error {
	var first error
	for _, r := range p.recs {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// A MemRecorder keeps samples in memory.
//
type MemRecorder struct {
	Design  string
	Vars    []sym.Var
	Cycles  []uint64
	Samples [][]uint64
}

func (m *MemRecorder) Begin(design string, vars []sym.Var) error {
	m.Design = design
	m.Vars = vars
	return nil
}

func (m *MemRecorder) Sample(cycle uint64, vals []uint64) error {
	m.Cycles = append(m.Cycles, cycle)
	m.Samples = append(m.Samples, append([]uint64(nil), vals...))
	return nil
}

func (m *MemRecorder) Close() error { return nil }
