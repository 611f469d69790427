// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing designs.
//
package simtest

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/konpaku-ming/netsim"
)

// A Vector is one cycle of stimulus: input values by name, applied before
// the rising clock edge.
//
type Vector map[string]uint64

// Random returns n stimulus vectors with uniformly random values for the
// named inputs, masked to their widths in st.
//
func Random(st *netsim.Store, names []string, n int, seed int64) []Vector {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Vector, n)
	for i := range out {
		v := make(Vector, len(names))
		for _, name := range names {
			sig, ok := st.Lookup(name)
			if !ok {
				panic("simtest: unknown input " + name)
			}
			v[name] = rng.Uint64()
			if w := st.Width(sig); w < 64 {
				v[name] &= 1<<uint(w) - 1
			}
		}
		out[i] = v
	}
	return out
}

func apply(t *testing.T, m *netsim.Sim, v Vector) {
	t.Helper()
	for name, val := range v {
		sig, ok := m.Store().Lookup(name)
		if !ok {
			t.Fatalf("unknown input %q", name)
		}
		m.Set(sig, val)
	}
}

func vecString(v Vector) string {
	names := make([]string, 0, len(v))
	for n := range v {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%#x", n, v[n])
	}
	return b.String()
}

// CompareDesigns drives two designs with the same stimulus vectors, one full
// clock cycle per vector, and compares the watched signals after every
// cycle. Both designs must declare the stimulus inputs and watched signals
// under the same names. Designs must be settled by the caller.
//
func CompareDesigns(t *testing.T, m1, m2 *netsim.Sim, watch []string, vectors []Vector) {
	t.Helper()

	type probe struct {
		name   string
		s1, s2 netsim.Sig
	}
	probes := make([]probe, len(watch))
	for i, name := range watch {
		s1, ok := m1.Store().Lookup(name)
		if !ok {
			t.Fatalf("design %s: no signal named %q", m1.Name(), name)
		}
		s2, ok := m2.Store().Lookup(name)
		if !ok {
			t.Fatalf("design %s: no signal named %q", m2.Name(), name)
		}
		if m1.Store().Width(s1) != m2.Store().Width(s2) {
			t.Fatalf("signal %q: width %d in %s, %d in %s",
				name, m1.Store().Width(s1), m1.Name(), m2.Store().Width(s2), m2.Name())
		}
		probes[i] = probe{name: name, s1: s1, s2: s2}
	}

	for cycle, v := range vectors {
		apply(t, m1, v)
		apply(t, m2, v)
		m1.TickTock()
		m2.TickTock()
		for _, p := range probes {
			v1, v2 := m1.Get(p.s1), m2.Get(p.s2)
			if v1 != v2 {
				t.Fatalf("\ncycle %d: %s\n%s: %s=%#x\n%s: %s=%#x",
					cycle, vecString(v), m1.Name(), p.name, v1, m2.Name(), p.name, v2)
			}
		}
	}
}
