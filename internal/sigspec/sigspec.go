// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sigspec parses signal declaration and sensitivity specs.
//
// A declaration spec is a comma separated list of signal names with an
// optional bit width in brackets:
//
//	count[8], clk, rst
//
// A sensitivity spec is an edge keyword followed by a signal name:
//
//	posedge clk
//	negedge rst_n
//	edge irq
//
package sigspec

import (
	"strings"
	"unicode"

	"github.com/konpaku-ming/netsim/internal/lex"
	"github.com/pkg/errors"
)

// Tokens
const (
	EOF lex.Type = lex.EOF
	Raw lex.Type = iota
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
)

// Edge kinds.
//
const (
	Posedge = iota
	Negedge
	Anyedge
)

// A Decl is a parsed signal declaration.
//
type Decl struct {
	Name  string
	Width int
}

// A Sense is a parsed sensitivity spec.
//
type Sense struct {
	Edge int
	Name string
}

// Lexer returns a new lexer for declaration and sensitivity specs.
//
func Lexer(input string) lex.Interface {
	return lex.New(strings.NewReader(input), lexInit)
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case unicode.IsLetter(r) || r == '_':
		return lexIdent
	case r == '[':
		l.Emit(BracketOpen, "[")
	case r == ']':
		l.Emit(BracketClose, "]")
	case r == ',':
		l.Emit(Comma, ",")
	case '0' <= r && r <= '9':
		return lexNumber
	default:
		l.Emit(Raw, r)
		return lexEOF
	}
	return nil
}

func lexNumber(l *lex.Lexer) lex.StateFn {
	i := int(l.Current() - '0')
	r := l.Next()
	for '0' <= r && r <= '9' {
		i = i*10 + int(r-'0')
		r = l.Next()
	}
	l.Backup()
	l.Emit(Int, i)
	return nil
}

func lexIdent(l *lex.Lexer) lex.StateFn {
	var buf strings.Builder
	buf.Grow(8)
	buf.WriteRune(l.Current())
	r := l.Next()
	for unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		buf.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	l.Emit(Ident, buf.String())
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(lex.EOF, "end of input")
	return lexEOF
}

// Decls parses a declaration spec and returns the declared signals in order.
//
func Decls(input string) ([]Decl, error) {
	var out []Decl

	l := Lexer(input)
	i := l.Lex()
	if i.Type == EOF {
		return nil, nil
	}
	for {
		if i.Type != Ident {
			return nil, parseError(input, i.Pos, "expected signal name")
		}
		d := Decl{Name: i.Value.(string), Width: 1}
		i = l.Lex()
		if i.Type == BracketOpen {
			i = l.Lex()
			if i.Type != Int {
				return nil, parseError(input, i.Pos, "missing bit width")
			}
			d.Width = i.Value.(int)
			if d.Width < 1 {
				return nil, parseError(input, i.Pos, "bit width must be at least 1")
			}
			i = l.Lex()
			if i.Type != BracketClose {
				return nil, parseError(input, i.Pos, "missing close bracket")
			}
			i = l.Lex()
		}
		out = append(out, d)
		switch i.Type {
		case EOF:
			return out, nil
		case Comma:
			i = l.Lex()
		default:
			return nil, parseError(input, i.Pos, "expected comma or end of input")
		}
	}
}

// Sensitivity parses a sensitivity spec.
//
func Sensitivity(input string) (Sense, error) {
	l := Lexer(input)
	i := l.Lex()
	if i.Type != Ident {
		return Sense{}, parseError(input, i.Pos, "expected edge keyword")
	}
	var edge int
	switch i.Value.(string) {
	case "posedge":
		edge = Posedge
	case "negedge":
		edge = Negedge
	case "edge":
		edge = Anyedge
	default:
		return Sense{}, parseError(input, i.Pos, "unknown edge keyword "+i.Value.(string))
	}
	i = l.Lex()
	if i.Type != Ident {
		return Sense{}, parseError(input, i.Pos, "expected signal name")
	}
	s := Sense{Edge: edge, Name: i.Value.(string)}
	i = l.Lex()
	if i.Type != EOF {
		return Sense{}, parseError(input, i.Pos, "unexpected "+i.String())
	}
	return s, nil
}

func parseError(in string, pos lex.Pos, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
