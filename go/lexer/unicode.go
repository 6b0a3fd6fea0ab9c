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

/*
 * Java Lexer - Unicode Escape Translation
 *
 * Implements the first lexical translation step of JLS 3.3: \uXXXX escapes
 * in the raw stream are replaced by the UTF-16 code unit they denote, and
 * surrogate pairs written as two consecutive escapes are combined into one
 * supplementary code point.
 */

package lexer

import "unicode/utf16"

// Char is one character of the translated stream.
type Char struct {
	Value rune
	// Pos is the raw position of the first character that produced Value.
	// For an escape this is its backslash.
	Pos Position
	// FromEscape is set when Value was written as a Unicode escape.
	FromEscape bool
}

// isUTF16SurrogateFirst checks if a code unit is the first part of a UTF-16 surrogate pair
func isUTF16SurrogateFirst(c uint16) bool {
	return c >= 0xD800 && c <= 0xDBFF
}

// isUTF16SurrogateSecond checks if a code unit is the second part of a UTF-16 surrogate pair
func isUTF16SurrogateSecond(c uint16) bool {
	return c >= 0xDC00 && c <= 0xDFFF
}

// surrogatePairToCodepoint combines a validated high/low surrogate pair.
func surrogatePairToCodepoint(first, second uint16) rune {
	return utf16.DecodeRune(rune(first), rune(second))
}

// accKind tags the contents of the escape accumulator.
type accKind int

const (
	accEmpty       accKind = iota // no escape value held
	accPendingHigh                // a high surrogate waiting for its low half
	accReady                      // a complete code point to emit
)

// escapeAccumulator holds the result of completed escapes until a full code
// point is available. A low surrogate is never stored: it either completes
// a pending high surrogate or is rejected.
type escapeAccumulator struct {
	kind  accKind
	high  uint16
	value rune
	pos   Position // position of the escape that started the code point
}

// push adds the code unit of one completed escape.
func (a *escapeAccumulator) push(unit uint16, pos Position) *Error {
	switch a.kind {
	case accEmpty:
		switch {
		case isUTF16SurrogateSecond(unit):
			return newError(EscapeError, pos, MsgUnexpectedLowSurrogate)
		case isUTF16SurrogateFirst(unit):
			*a = escapeAccumulator{kind: accPendingHigh, high: unit, pos: pos}
		default:
			*a = escapeAccumulator{kind: accReady, value: rune(unit), pos: pos}
		}
	case accPendingHigh:
		if !isUTF16SurrogateSecond(unit) {
			return newError(EscapeError, pos, MsgInvalidSurrogatePair)
		}
		*a = escapeAccumulator{kind: accReady, value: surrogatePairToCodepoint(a.high, unit), pos: a.pos}
	}
	return nil
}

// take drains a ready code point.
func (a *escapeAccumulator) take() (Char, bool) {
	if a.kind != accReady {
		return Char{}, false
	}
	c := Char{Value: a.value, Pos: a.pos, FromEscape: true}
	*a = escapeAccumulator{}
	return c, true
}

const escapeDigits = 4

// Translator performs Unicode escape translation over the raw stream.
//
// Feed returns at most one translated character per raw character; a
// backslash held while deciding whether it starts an escape is released by
// the next call. Feed and Finish return *Error for malformed input.
type Translator struct {
	// backslashRun is the number of contiguous raw backslashes seen right
	// before the current character. A backslash is eligible to start an
	// escape only when this is even.
	backslashRun int
	// prevFromEscape is set while the last translated character came from a
	// completed escape.
	prevFromEscape bool

	pendingBackslash bool
	backslashPos     Position

	inEscape   bool
	sawDigit   bool
	digitsLeft int
	unit       uint16

	acc escapeAccumulator
}

// Feed consumes one raw code point at pos. When out is non-empty it holds
// the translated characters now available, in order.
func (t *Translator) Feed(r rune, pos Position, out []Char) ([]Char, *Error) {
	if t.inEscape {
		return out, t.feedEscape(r, pos, &out)
	}

	if t.pendingBackslash {
		t.pendingBackslash = false
		if r == 'u' {
			t.inEscape = true
			t.sawDigit = false
			t.digitsLeft = escapeDigits
			t.unit = 0
			t.backslashRun = 0
			return out, nil
		}
		// The held backslash was not an escape; it is an ordinary character
		// and counts toward the run preceding r.
		var err *Error
		if out, err = t.emit(Char{Value: '\\', Pos: t.backslashPos}, out); err != nil {
			return out, err
		}
	}

	if r == '\\' {
		eligible := t.backslashRun%2 == 0 || t.prevFromEscape
		t.backslashRun++
		if eligible {
			t.pendingBackslash = true
			t.backslashPos = pos
			return out, nil
		}
		return t.emit(Char{Value: r, Pos: pos}, out)
	}

	t.backslashRun = 0
	return t.emit(Char{Value: r, Pos: pos}, out)
}

func (t *Translator) feedEscape(r rune, pos Position, out *[]Char) *Error {
	// JLS 3.3 permits any number of u characters after the backslash.
	if r == 'u' && !t.sawDigit {
		return nil
	}

	v, ok := hexValue(r)
	if !ok {
		t.inEscape = false
		return newError(EscapeError, pos, MsgIllegalUnicodeEscape)
	}
	t.sawDigit = true
	t.unit = t.unit<<4 | v
	t.digitsLeft--
	if t.digitsLeft > 0 {
		return nil
	}

	t.inEscape = false
	if err := t.acc.push(t.unit, t.backslashPos); err != nil {
		return err
	}
	if c, ok := t.acc.take(); ok {
		*out = append(*out, c)
		t.prevFromEscape = true
	}
	return nil
}

// emit forwards a character that did not come from an escape.
func (t *Translator) emit(c Char, out []Char) ([]Char, *Error) {
	if t.acc.kind == accPendingHigh {
		return out, newError(EscapeError, c.Pos, MsgUnterminatedSurrogate)
	}
	t.prevFromEscape = false
	return append(out, c), nil
}

// Finish flushes a held backslash and reports escapes left open at end of
// input. end is the position just past the last raw character.
func (t *Translator) Finish(end Position, out []Char) ([]Char, *Error) {
	if t.inEscape {
		t.inEscape = false
		return out, newError(EscapeError, end, MsgIllegalUnicodeEscape)
	}
	if t.pendingBackslash {
		t.pendingBackslash = false
		var err *Error
		if out, err = t.emit(Char{Value: '\\', Pos: t.backslashPos}, out); err != nil {
			return out, err
		}
	}
	if t.acc.kind == accPendingHigh {
		return out, newError(EscapeError, end, MsgUnterminatedSurrogate)
	}
	return out, nil
}

// InEscape reports whether an escape is partially parsed.
func (t *Translator) InEscape() bool {
	return t.inEscape || t.acc.kind == accPendingHigh
}
