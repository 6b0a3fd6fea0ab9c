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
 * Java Lexer - Character Classification
 *
 * Lookup table for the ASCII subset of the JLS character classes. Code
 * points outside ASCII are not classified here; the scanner accepts them as
 * identifier characters without validation.
 */

package lexer

// CharClass is a set of classification flags for an ASCII character.
type CharClass uint8

const (
	ClassDigit       CharClass = 1 << iota // 0-9
	ClassHexDigit                          // 0-9, a-f, A-F
	ClassOctalDigit                        // 0-7
	ClassIdentStart                        // JLS 3.8 "Java letter": A-Z a-z $ _
	ClassIdentPart                         // JLS 3.8 "Java letter-or-digit"
	ClassIgnorable                         // Character.isIdentifierIgnorable, ASCII range
	ClassWhitespace                        // JLS 3.6: SP HT FF CR LF
	ClassLineTerminator                    // JLS 3.4: CR LF
)

var charClassTable [128]CharClass

func init() {
	for b := '0'; b <= '9'; b++ {
		charClassTable[b] |= ClassDigit | ClassHexDigit | ClassIdentPart
		if b <= '7' {
			charClassTable[b] |= ClassOctalDigit
		}
	}

	for b := 'a'; b <= 'z'; b++ {
		charClassTable[b] |= ClassIdentStart | ClassIdentPart
		if b <= 'f' {
			charClassTable[b] |= ClassHexDigit
		}
	}

	for b := 'A'; b <= 'Z'; b++ {
		charClassTable[b] |= ClassIdentStart | ClassIdentPart
		if b <= 'F' {
			charClassTable[b] |= ClassHexDigit
		}
	}

	charClassTable['$'] |= ClassIdentStart | ClassIdentPart
	charClassTable['_'] |= ClassIdentStart | ClassIdentPart

	for b := 0x00; b <= 0x08; b++ {
		charClassTable[b] |= ClassIgnorable
	}
	for b := 0x0E; b <= 0x1B; b++ {
		charClassTable[b] |= ClassIgnorable
	}
	charClassTable[0x7F] |= ClassIgnorable

	charClassTable[' '] |= ClassWhitespace
	charClassTable['\t'] |= ClassWhitespace
	charClassTable['\f'] |= ClassWhitespace
	charClassTable['\r'] |= ClassWhitespace | ClassLineTerminator
	charClassTable['\n'] |= ClassWhitespace | ClassLineTerminator
}

func hasClass(r rune, class CharClass) bool {
	return isASCII(r) && charClassTable[r]&class != 0
}

func isASCII(r rune) bool {
	return r >= 0 && r < 0x80
}

func isWhitespace(r rune) bool     { return hasClass(r, ClassWhitespace) }
func isLineTerminator(r rune) bool { return hasClass(r, ClassLineTerminator) }
func isIdentStart(r rune) bool     { return hasClass(r, ClassIdentStart) }
func isIdentPart(r rune) bool      { return hasClass(r, ClassIdentPart) }
func isOctalDigit(r rune) bool     { return hasClass(r, ClassOctalDigit) }

// isIgnorable reports whether r is dropped from identifiers (JLS 3.8): the
// ASCII controls in the table plus the C1 controls U+0080 to U+009F.
func isIgnorable(r rune) bool {
	return hasClass(r, ClassIgnorable) || (r >= 0x80 && r <= 0x9F)
}

// hexValue returns the value of an ASCII hex digit.
func hexValue(r rune) (uint16, bool) {
	if !hasClass(r, ClassHexDigit) {
		return 0, false
	}
	switch {
	case r <= '9':
		return uint16(r - '0'), true
	case r >= 'a':
		return uint16(r-'a') + 10, true
	default:
		return uint16(r-'A') + 10, true
	}
}
