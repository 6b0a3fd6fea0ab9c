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
 * Java Lexer - Comment/Whitespace/Token Scanner
 *
 * State machine over the translated stream. It strips whitespace and
 * comments (JLS 3.6, 3.7), delimits literals so backslashes inside them can
 * be validated, and collects identifier runs so the unused keywords can be
 * rejected.
 */

package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Mode is the active state of the scanner.
type Mode int

const (
	ModeWhitespace         Mode = iota // Between tokens (initial)
	ModeTraditionalComment             // Inside /* ... */
	ModeEndOfLineComment               // Inside // ... up to a line terminator
	ModeIdentifierChars                // ASCII identifier run
	ModeIdentifier                     // Identifier run containing non-ASCII characters
	ModeStringLiteral                  // Inside "..."
	ModeCharLiteral                    // Inside '...'
	ModeTextBlock                      // Inside """ ... """
)

var modeNames = [...]string{
	ModeWhitespace:         "whitespace",
	ModeTraditionalComment: "traditional comment",
	ModeEndOfLineComment:   "end-of-line comment",
	ModeIdentifierChars:    "identifier chars",
	ModeIdentifier:         "identifier",
	ModeStringLiteral:      "string literal",
	ModeCharLiteral:        "character literal",
	ModeTextBlock:          "text block",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// TokenKind distinguishes the identifier runs reported by the scanner.
type TokenKind int

const (
	// TokenASCIIRun is a run of ASCII identifier characters.
	TokenASCIIRun TokenKind = iota
	// TokenIdentifier is a run that contains non-ASCII characters. Its
	// characters are accepted without Unicode category validation.
	TokenIdentifier
)

// MaxTokenText is the most bytes of an identifier run kept in Token.Text.
const MaxTokenText = 1024

// Token is one completed identifier run.
type Token struct {
	Kind TokenKind
	// Text holds at most MaxTokenText bytes of the run.
	Text      string
	Truncated bool
	Pos       Position
}

const asciiSUB = 0x1A

// Scanner classifies the translated stream. The zero value is not ready for
// use; create scanners with NewScanner.
type Scanner struct {
	mode    Mode
	onToken func(Token)

	// A '/' in whitespace mode waits for the next character to tell a
	// comment start from an operator.
	slashPending bool
	slashPos     Position

	// Identifier run buffer, sized for the longest keyword. Longer runs
	// grow the buffer up to MaxTokenText and are excluded from keyword
	// matching.
	run          []byte
	runStart     Position
	runTruncated bool

	commentStart Position
	prevStar     bool

	litStart  Position
	litCount  int
	litQuotes int
	litEscape bool
	litOctal  int
	escPos    Position
	tbOpening bool

	// JLS 3.5: a SUB that is the last input character is ignored, so it is
	// held until another character arrives.
	subPending bool
	sub        Char
}

// NewScanner creates a scanner in whitespace mode. onToken may be nil.
func NewScanner(onToken func(Token)) *Scanner {
	return &Scanner{
		mode:    ModeWhitespace,
		onToken: onToken,
		run:     make([]byte, 0, MaxKeywordLen),
	}
}

// Mode returns the current scanner mode.
func (s *Scanner) Mode() Mode {
	return s.mode
}

// Feed consumes one translated character.
func (s *Scanner) Feed(c Char) *Error {
	if s.subPending {
		s.subPending = false
		if err := s.dispatch(s.sub); err != nil {
			return err
		}
	}
	if c.Value == asciiSUB {
		s.subPending = true
		s.sub = c
		return nil
	}
	return s.dispatch(c)
}

func (s *Scanner) dispatch(c Char) *Error {
	switch s.mode {
	case ModeWhitespace:
		return s.scanWhitespace(c)
	case ModeTraditionalComment:
		s.scanTraditionalComment(c)
		return nil
	case ModeEndOfLineComment:
		s.scanEndOfLineComment(c)
		return nil
	case ModeIdentifierChars:
		return s.scanIdentifierChars(c)
	case ModeIdentifier:
		return s.scanIdentifier(c)
	case ModeStringLiteral:
		return s.scanStringLiteral(c)
	case ModeCharLiteral:
		return s.scanCharLiteral(c)
	case ModeTextBlock:
		return s.scanTextBlock(c)
	default:
		panic(fmt.Sprintf("lexer: invalid scanner mode %d", int(s.mode)))
	}
}

// scanWhitespace handles a character between tokens.
func (s *Scanner) scanWhitespace(c Char) *Error {
	r := c.Value

	if s.slashPending {
		s.slashPending = false
		switch r {
		case '/':
			s.mode = ModeEndOfLineComment
			return nil
		case '*':
			s.startTraditionalComment(s.slashPos)
			return nil
		}
		// The '/' is an operator; r starts whatever follows it.
	}

	switch {
	case isWhitespace(r):
	case r == '/':
		s.slashPending = true
		s.slashPos = c.Pos
	case isIdentStart(r):
		s.startRun(ModeIdentifierChars, c)
	case isIgnorable(r):
		// Ignorable characters never start a run.
	case !isASCII(r):
		s.startRun(ModeIdentifier, c)
	case r == '"':
		s.startStringLiteral(c)
	case r == '\'':
		s.startCharLiteral(c)
	case r == '\\':
		return newError(EscapeError, c.Pos, MsgIllegalEscapeChar)
	}
	// Anything else is an operator, separator or number character and
	// bounds the surrounding tokens.
	return nil
}

func (s *Scanner) startRun(mode Mode, c Char) {
	s.mode = mode
	s.runStart = c.Pos
	s.runTruncated = false
	s.run = utf8.AppendRune(s.run[:0], c.Value)
}

// appendRun adds r to the run, dropping characters past MaxTokenText.
func (s *Scanner) appendRun(r rune) {
	if len(s.run)+utf8.RuneLen(r) > MaxTokenText {
		s.runTruncated = true
		return
	}
	s.run = utf8.AppendRune(s.run, r)
}

// scanIdentifierChars extends an ASCII identifier run.
func (s *Scanner) scanIdentifierChars(c Char) *Error {
	r := c.Value
	switch {
	case isIdentPart(r):
		s.appendRun(r)
		return nil
	case isIgnorable(r):
		return nil
	case !isASCII(r):
		s.mode = ModeIdentifier
		s.appendRun(r)
		return nil
	}

	if err := s.finishRun(); err != nil {
		return err
	}
	return s.scanWhitespace(c)
}

// scanIdentifier extends a run that contains non-ASCII characters.
func (s *Scanner) scanIdentifier(c Char) *Error {
	r := c.Value
	switch {
	case isIgnorable(r):
		return nil
	case isIdentPart(r), !isASCII(r):
		s.appendRun(r)
		return nil
	}

	if err := s.finishRun(); err != nil {
		return err
	}
	return s.scanWhitespace(c)
}

// finishRun classifies the completed run and returns to whitespace mode.
func (s *Scanner) finishRun() *Error {
	kind := TokenIdentifier
	if s.mode == ModeIdentifierChars {
		kind = TokenASCIIRun
		if isRejectedIdentifier(s.run) {
			return newErrorf(LexicalError, s.runStart, "%s: '%s'", MsgReservedWord, s.run)
		}
	}

	if s.onToken != nil {
		s.onToken(Token{Kind: kind, Text: string(s.run), Truncated: s.runTruncated, Pos: s.runStart})
	}
	s.run = s.run[:0]
	s.mode = ModeWhitespace
	return nil
}

// Finish reports the terminal condition at end of input.
func (s *Scanner) Finish() *Error {
	// A trailing SUB is dropped.
	s.subPending = false

	switch s.mode {
	case ModeWhitespace, ModeEndOfLineComment:
		s.slashPending = false
		s.mode = ModeWhitespace
		return nil
	case ModeIdentifierChars, ModeIdentifier:
		return s.finishRun()
	case ModeTraditionalComment:
		return newError(LexicalError, s.commentStart, MsgUnterminatedComment)
	case ModeStringLiteral:
		if s.litQuotes == 2 {
			s.mode = ModeWhitespace
			return nil
		}
		return newError(LexicalError, s.litStart, MsgUnclosedString)
	case ModeCharLiteral:
		return newError(LexicalError, s.litStart, MsgUnclosedChar)
	case ModeTextBlock:
		return newError(LexicalError, s.litStart, MsgUnclosedTextBlock)
	}
	return nil
}
