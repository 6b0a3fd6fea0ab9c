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

package lexer

import "fmt"

// Position is a 1-based line/column location in the raw input.
// Columns count decoded code points, not bytes.
type Position struct {
	Line   uint64
	Column uint64
}

// String renders the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineTracker maintains the position of the next raw code point following the
// line terminator rules of JLS 3.4: CR, LF and CR LF each end one line.
//
// It runs on the raw stream, before Unicode escape translation, so a
// diagnostic inside an escape or a comment still points at the physical
// character.
type LineTracker struct {
	pos    Position
	prevCR bool
}

// NewLineTracker returns a tracker positioned at 1:1.
func NewLineTracker() *LineTracker {
	t := &LineTracker{}
	t.Reset()
	return t
}

// Reset moves the tracker back to the start of the stream.
func (t *LineTracker) Reset() {
	t.pos = Position{Line: 1, Column: 1}
	t.prevCR = false
}

// Current returns the position the next raw code point will occupy.
func (t *LineTracker) Current() Position {
	return t.pos
}

// Advance consumes one raw code point and returns the position it occupied.
func (t *LineTracker) Advance(r rune) Position {
	at := t.pos
	switch {
	case r == '\r':
		t.pos.Line++
		t.pos.Column = 1
	case r == '\n':
		// The LF of a CR LF pair was already counted by the CR.
		if !t.prevCR {
			t.pos.Line++
			t.pos.Column = 1
		}
	default:
		t.pos.Column++
	}
	t.prevCR = r == '\r'
	return at
}
