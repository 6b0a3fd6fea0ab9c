// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lexer implements the early lexical translation steps of the Java
// Language Specification (JLS 3.1-3.7) for one compilation unit:
//
//	bytes -> code points (Decoder)
//	      -> positions   (LineTracker, side channel on the raw stream)
//	      -> translated  (Translator, Unicode escapes)
//	      -> scanner     (Scanner, whitespace/comments/literals/identifier runs)
//
// All state is owned by a single Lexer, so independent units can be lexed
// concurrently without synchronization. Every error is fatal: Run stops at
// the first one.
package lexer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Lexer runs the full preprocessing pipeline over one input stream.
type Lexer struct {
	r     *bufio.Reader
	dec   Decoder
	lines *LineTracker
	trans Translator
	scan  *Scanner

	// scratch buffer for translator output
	out []Char
}

// Option configures a Lexer.
type Option func(*options)

type options struct {
	onToken func(Token)
}

// WithTokenHandler registers fn to receive every completed identifier run.
func WithTokenHandler(fn func(Token)) Option {
	return func(o *options) {
		o.onToken = fn
	}
}

// New creates a Lexer reading from r.
func New(r io.Reader, opts ...Option) *Lexer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Lexer{
		r:     bufio.NewReader(r),
		lines: NewLineTracker(),
		scan:  NewScanner(o.onToken),
		out:   make([]Char, 0, 2),
	}
}

// Run consumes the whole input. It returns nil when the input is lexically
// valid, a *Error for the first fatal condition, or a wrapped read error.
func (l *Lexer) Run() error {
	for {
		b, err := l.r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if lexErr := l.feedByte(b); lexErr != nil {
			return lexErr
		}
	}
	if lexErr := l.finish(); lexErr != nil {
		return lexErr
	}
	return nil
}

// Position returns the position of the next raw character.
func (l *Lexer) Position() Position {
	return l.lines.Current()
}

// Mode returns the scanner mode.
func (l *Lexer) Mode() Mode {
	return l.scan.Mode()
}

func (l *Lexer) feedByte(b byte) *Error {
	r, ready, err := l.dec.Feed(b)
	if err != nil {
		return newError(DecodeError, l.lines.Current(), err.Error())
	}
	if !ready {
		return nil
	}

	pos := l.lines.Advance(r)
	out, transErr := l.trans.Feed(r, pos, l.out[:0])
	// Characters released before the translator failed come first in the
	// stream, so the scanner sees them before the error is reported.
	if err := l.scanAll(out); err != nil {
		return err
	}
	return transErr
}

func (l *Lexer) finish() *Error {
	if err := l.dec.Finish(); err != nil {
		return newError(DecodeError, l.lines.Current(), err.Error())
	}

	out, transErr := l.trans.Finish(l.lines.Current(), l.out[:0])
	if err := l.scanAll(out); err != nil {
		return err
	}
	if transErr != nil {
		return transErr
	}
	return l.scan.Finish()
}

func (l *Lexer) scanAll(chars []Char) *Error {
	for _, c := range chars {
		if err := l.scan.Feed(c); err != nil {
			return err
		}
	}
	return nil
}

// Scan lexes src and returns the identifier runs it contains.
func Scan(src []byte) ([]Token, error) {
	var tokens []Token
	err := New(bytes.NewReader(src), WithTokenHandler(func(t Token) {
		tokens = append(tokens, t)
	})).Run()
	return tokens, err
}
