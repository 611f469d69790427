// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sym builds a hierarchical name directory over a design's signal
// store. Dotted signal names ("top.cnt.count") become a scope tree; probes,
// trace writers and command line tools resolve names through it instead of
// poking at raw slot numbers.
//
package sym

import (
	"sort"
	"strings"

	"github.com/konpaku-ming/netsim"
	"github.com/pkg/errors"
)

// A Var describes one signal as seen from outside the simulation.
//
type Var struct {
	Path     string     // full dotted path
	Name     string     // leaf name within its scope
	Sig      netsim.Sig // slot number in the store
	Width    int        // bit width
	Dir      netsim.Dir // direction
	Writable bool       // drivers may write it between steps
}

// A Scope is one level of the design hierarchy.
//
type Scope struct {
	Name   string
	scopes map[string]*Scope
	vars   map[string]Var
}

// Scopes returns the child scopes, sorted by name.
//
func (s *Scope) Scopes() []*Scope {
	out := make([]*Scope, 0, len(s.scopes))
	for _, c := range s.scopes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Vars returns the variables declared directly in this scope, sorted by name.
//
func (s *Scope) Vars() []Var {
	out := make([]Var, 0, len(s.vars))
	for _, v := range s.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Scope) child(name string) *Scope {
	c := s.scopes[name]
	if c == nil {
		c = &Scope{Name: name, scopes: make(map[string]*Scope), vars: make(map[string]Var)}
		s.scopes[name] = c
	}
	return c
}

// A Table is the complete name directory of one simulation.
//
type Table struct {
	root *Scope
	vars map[string]Var
}

// New builds the directory for a store. Every declared signal gets an entry;
// dots in signal names introduce scopes. Inputs are writable, everything
// else is read-only from the driver's point of view.
//
func New(st *netsim.Store) *Table {
	t := &Table{
		root: &Scope{scopes: make(map[string]*Scope), vars: make(map[string]Var)},
		vars: make(map[string]Var, st.Len()),
	}
	for n := netsim.Sig(0); int(n) < st.Len(); n++ {
		path := st.Name(n)
		v := Var{
			Path:     path,
			Sig:      n,
			Width:    st.Width(n),
			Dir:      st.Dir(n),
			Writable: st.Dir(n) == netsim.Input,
		}
		sc := t.root
		parts := strings.Split(path, ".")
		for _, p := range parts[:len(parts)-1] {
			sc = sc.child(p)
		}
		v.Name = parts[len(parts)-1]
		sc.vars[v.Name] = v
		t.vars[path] = v
	}
	return t
}

// Root returns the top level scope.
//
func (t *Table) Root() *Scope { return t.root }

// Len returns the number of variables in the directory.
//
func (t *Table) Len() int { return len(t.vars) }

// Lookup resolves a full dotted path.
//
func (t *Table) Lookup(path string) (Var, error) {
	v, ok := t.vars[path]
	if !ok {
		return Var{}, errors.Errorf("no signal named %q", path)
	}
	return v, nil
}

// Walk visits every variable in deterministic order: depth first, scopes and
// variables each sorted by name, variables of a scope before its sub-scopes.
//
func (t *Table) Walk(fn func(v Var)) {
	walk(t.root, fn)
}

func walk(s *Scope, fn func(v Var)) {
	for _, v := range s.Vars() {
		fn(v)
	}
	for _, c := range s.Scopes() {
		walk(c, fn)
	}
}

// Glob returns the variables whose path matches the given prefix: either the
// exact variable, or everything below a scope. A lone "*" matches all.
//
func (t *Table) Glob(pat string) []Var {
	if pat == "*" || pat == "" {
		out := make([]Var, 0, len(t.vars))
		t.Walk(func(v Var) { out = append(out, v) })
		return out
	}
	if v, err := t.Lookup(pat); err == nil {
		return []Var{v}
	}
	prefix := strings.TrimSuffix(pat, ".*")
	var out []Var
	t.Walk(func(v Var) {
		if strings.HasPrefix(v.Path, prefix+".") {
			out = append(out, v)
		}
	})
	return out
}
