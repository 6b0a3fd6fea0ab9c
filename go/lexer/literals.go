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
 * Java Lexer - Literal Delimiting
 *
 * String, character and text block literals (JLS 3.10.4-3.10.7) are only
 * delimited, not evaluated. A backslash inside a literal must begin one of
 * the escape sequences of JLS 3.10.7.
 */

package lexer

func (s *Scanner) startStringLiteral(c Char) {
	s.mode = ModeStringLiteral
	s.litStart = c.Pos
	s.litCount = 0
	s.litQuotes = 1
	s.litEscape = false
}

func (s *Scanner) startCharLiteral(c Char) {
	s.mode = ModeCharLiteral
	s.litStart = c.Pos
	s.litCount = 0
	s.litEscape = false
	s.litOctal = 0
}

// isEscapeSequenceChar reports whether r may follow a backslash inside a
// literal. Octal escapes are accepted by their first digit; the remaining
// digits are ordinary literal characters.
func isEscapeSequenceChar(r rune) bool {
	switch r {
	case 'b', 's', 't', 'n', 'f', 'r', '"', '\'', '\\':
		return true
	}
	return isOctalDigit(r)
}

func (s *Scanner) checkEscapeSequence(c Char, allowLineContinuation bool) *Error {
	s.litEscape = false
	if isEscapeSequenceChar(c.Value) || (allowLineContinuation && isLineTerminator(c.Value)) {
		return nil
	}
	return newError(EscapeError, s.escPos, MsgIllegalEscapeChar)
}

// scanStringLiteral handles a character inside "...".
func (s *Scanner) scanStringLiteral(c Char) *Error {
	r := c.Value

	if s.litQuotes == 2 {
		// "" followed by a third quote opens a text block; otherwise it was
		// an empty string.
		if r == '"' {
			s.mode = ModeTextBlock
			s.litQuotes = 0
			s.tbOpening = true
			return nil
		}
		s.mode = ModeWhitespace
		return s.scanWhitespace(c)
	}

	if s.litEscape {
		s.litCount++
		return s.checkEscapeSequence(c, false)
	}

	switch {
	case r == '"':
		if s.litCount == 0 {
			s.litQuotes = 2
			return nil
		}
		s.mode = ModeWhitespace
	case r == '\\':
		s.litEscape = true
		s.escPos = c.Pos
	case isLineTerminator(r):
		return newError(LexicalError, s.litStart, MsgUnclosedString)
	default:
		s.litCount++
	}
	return nil
}

// scanCharLiteral handles a character inside '...'. Exactly one character
// or escape sequence is allowed.
func (s *Scanner) scanCharLiteral(c Char) *Error {
	r := c.Value

	if s.litEscape {
		s.litCount++
		if isOctalDigit(r) {
			// \0 to \377: one or two more octal digits may follow.
			s.litOctal = 1
			if r <= '3' {
				s.litOctal = 2
			}
		}
		return s.checkEscapeSequence(c, false)
	}

	if s.litOctal > 0 {
		if isOctalDigit(r) {
			s.litOctal--
			return nil
		}
		s.litOctal = 0
	}

	switch {
	case r == '\'':
		if s.litCount == 0 {
			return newError(LexicalError, s.litStart, MsgEmptyChar)
		}
		s.mode = ModeWhitespace
	case isLineTerminator(r), s.litCount > 0:
		return newError(LexicalError, s.litStart, MsgUnclosedChar)
	case r == '\\':
		s.litEscape = true
		s.escPos = c.Pos
	default:
		s.litCount++
	}
	return nil
}

// scanTextBlock handles a character after an opening """.
func (s *Scanner) scanTextBlock(c Char) *Error {
	r := c.Value

	if s.tbOpening {
		// Only white space may separate """ from the line terminator.
		switch {
		case isLineTerminator(r):
			s.tbOpening = false
		case isWhitespace(r):
		default:
			return newError(LexicalError, c.Pos, MsgTextBlockOpen)
		}
		return nil
	}

	if s.litEscape {
		s.litQuotes = 0
		return s.checkEscapeSequence(c, true)
	}

	switch r {
	case '"':
		s.litQuotes++
		if s.litQuotes == 3 {
			s.mode = ModeWhitespace
			s.litQuotes = 0
		}
		return nil
	case '\\':
		s.litEscape = true
		s.escPos = c.Pos
	}
	s.litQuotes = 0
	return nil
}
