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
 * Java Lexer - Error Handling
 *
 * Every condition detected by the lexer is fatal to the compilation unit.
 * Errors carry the category of the stage that raised them and the position
 * of the offending character in the raw input.
 */

package lexer

import (
	"errors"
	"fmt"
)

// ErrorKind represents the stage of the pipeline that detected an error.
type ErrorKind int

const (
	DecodeError  ErrorKind = iota // Malformed UTF-8 input (JLS 3.1)
	EscapeError                   // Malformed Unicode escape or backslash (JLS 3.3)
	LexicalError                  // Comment, literal and reserved-word errors (JLS 3.7-3.10)
)

// String returns a human readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case DecodeError:
		return "decode"
	case EscapeError:
		return "escape"
	case LexicalError:
		return "lexical"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Diagnostic messages. These match the wording javac uses where javac has an
// equivalent condition.
const (
	MsgInvalidUTF8Byte         = "invalid UTF-8 byte"
	MsgInvalidUTF8Continuation = "invalid UTF-8 continuation byte"
	MsgTruncatedUTF8           = "truncated UTF-8 sequence at end of input"
	MsgIllegalUnicodeEscape    = "illegal unicode escape"
	MsgUnexpectedLowSurrogate  = "unexpected low surrogate without preceding high surrogate"
	MsgUnterminatedSurrogate   = "unterminated surrogate pair"
	MsgInvalidSurrogatePair    = "invalid surrogate pair"
	MsgIllegalEscapeChar       = "illegal escape character"
	MsgUnterminatedComment     = "unterminated comment"
	MsgReservedWord            = "reserved word used as identifier"
	MsgUnclosedString          = "unclosed string literal"
	MsgUnclosedChar            = "unclosed character literal"
	MsgEmptyChar               = "empty character literal"
	MsgUnclosedTextBlock       = "unclosed text block"
	MsgTextBlockOpen           = "illegal text block open delimiter sequence, missing line terminator"
)

// Error is a fatal lexer error. Pos is the raw input position of the
// character (or token start) that caused it.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     Position
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newError(kind ErrorKind, pos Position, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Pos: pos}
}

func newErrorf(kind ErrorKind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// AsError unwraps err into a lexer *Error if it is one.
func AsError(err error) (*Error, bool) {
	var lexErr *Error
	if errors.As(err, &lexErr) {
		return lexErr, true
	}
	return nil, false
}
