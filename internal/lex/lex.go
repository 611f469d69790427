// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex implements a small state-machine based lexer used by the
// signal and sensitivity spec parsers.
//
package lex

import (
	"bufio"
	"io"
	"strconv"
)

// EOF is the rune and item type returned at end of input.
//
const EOF = -1

// Type is a lexical item type.
//
type Type int

// Pos is a byte position in the input stream.
//
type Pos int

// Item is a lexical item.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

// String returns the string representation of an item's value.
//
func (i Item) String() string {
	switch v := i.Value.(type) {
	case string:
		return v
	case rune:
		return string(v)
	case int:
		return strconv.Itoa(v)
	}
	return "?"
}

// Interface is the interface implemented by the lexer.
//
type Interface interface {
	Lex() Item
}

// A StateFn is a lexer state function. It scans input and emits zero or more
// items, then returns the next state, or nil to return to the initial state.
//
type StateFn func(l *Lexer) StateFn

// Lexer wraps an input stream and drives state functions.
//
type Lexer struct {
	r     *bufio.Reader
	init  StateFn
	state StateFn
	queue []Item
	pos   Pos
	cur   rune
	// one rune backup
	backed bool
	prev   rune
}

// New returns a new lexer reading from r, starting in state init.
//
func New(r io.Reader, init StateFn) *Lexer {
	return &Lexer{r: bufio.NewReader(r), init: init, state: init, pos: -1}
}

// Next returns the next rune in the input, or EOF.
//
func (l *Lexer) Next() rune {
	if l.backed {
		l.backed = false
		l.prev, l.cur = l.cur, l.prev
		l.pos++
		return l.cur
	}
	r, _, err := l.r.ReadRune()
	if err != nil {
		r = EOF
	}
	l.prev, l.cur = l.cur, r
	l.pos++
	return r
}

// Backup undoes the last Next. Only one rune of backup is supported.
//
func (l *Lexer) Backup() {
	if l.backed {
		panic("lex: double Backup")
	}
	l.backed = true
	l.prev, l.cur = l.cur, l.prev
	l.pos--
}

// Current returns the rune most recently returned by Next.
//
func (l *Lexer) Current() rune {
	return l.cur
}

// AcceptWhile consumes runes while f returns true.
//
func (l *Lexer) AcceptWhile(f func(rune) bool) {
	for r := l.Next(); r != EOF && f(r); r = l.Next() {
	}
	l.Backup()
}

// Emit queues an item of the given type and value at the current position.
//
func (l *Lexer) Emit(t Type, value interface{}) {
	l.queue = append(l.queue, Item{Type: t, Pos: l.pos, Value: value})
}

// Lex returns the next item in the input stream.
//
func (l *Lexer) Lex() Item {
	for len(l.queue) == 0 {
		if l.state == nil {
			l.state = l.init
		}
		l.state = l.state(l)
	}
	i := l.queue[0]
	copy(l.queue, l.queue[1:])
	l.queue = l.queue[:len(l.queue)-1]
	return i
}
