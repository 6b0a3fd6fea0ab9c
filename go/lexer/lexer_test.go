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

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerRun(t *testing.T) {
	src := `package demo;

/**
 * A small class.
 */
public class Demo {
    private static final String GREETING = "hi\n";
    private char c = '@u0041';

    // goto is not allowed, but only outside comments
    public int sum(int a, int b) {
        return a + b; /* const */
    }
}
`
	src = strings.ReplaceAll(src, "@u", "\\u")

	var tokens []Token
	l := New(strings.NewReader(src), WithTokenHandler(func(tok Token) {
		tokens = append(tokens, tok)
	}))
	require.NoError(t, l.Run())
	assert.Equal(t, ModeWhitespace, l.Mode())
	assert.Equal(t, Position{Line: 15, Column: 1}, l.Position())

	texts := tokenTexts(tokens)
	assert.Contains(t, texts, "Demo")
	assert.Contains(t, texts, "GREETING")
	assert.NotContains(t, texts, "goto")
	assert.NotContains(t, texts, "const")
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		kind  ErrorKind
		msg   string
		pos   Position
	}{
		{"invalid lead byte", []byte("ab\x80"), DecodeError, MsgInvalidUTF8Byte, Position{1, 3}},
		{"invalid continuation", []byte("x\n\xC3("), DecodeError, MsgInvalidUTF8Continuation, Position{2, 1}},
		{"truncated sequence", []byte("a\xE2\x82"), DecodeError, MsgTruncatedUTF8, Position{1, 2}},
		{"unterminated surrogate", []byte(`@uD83Dx`), EscapeError, MsgUnterminatedSurrogate, Position{1, 7}},
		{"bad escape after identifier", []byte(`goto@uZZZZ`), EscapeError, MsgIllegalUnicodeEscape, Position{1, 7}},
		{"reserved word", []byte("class A { int goto; }"), LexicalError, MsgReservedWord + ": 'goto'", Position{1, 15}},
		{"unterminated comment", []byte("/* a\n * b\n"), LexicalError, MsgUnterminatedComment, Position{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(strings.ReplaceAll(string(tt.input), "@u", "\\u"))
			_, err := Scan(input)
			require.Error(t, err)

			lexErr, ok := AsError(err)
			require.True(t, ok, "expected *Error, got %T", err)
			assert.Equal(t, tt.kind, lexErr.Kind)
			assert.Equal(t, tt.msg, lexErr.Message)
			assert.Equal(t, tt.pos, lexErr.Pos)
		})
	}
}

func TestLexerStopsAtFirstError(t *testing.T) {
	var tokens []Token
	l := New(strings.NewReader("a goto b const c"), WithTokenHandler(func(tok Token) {
		tokens = append(tokens, tok)
	}))
	err := l.Run()
	require.Error(t, err)
	assert.Equal(t, "1:3: reserved word used as identifier: 'goto'", err.Error())
	assert.Equal(t, []string{"a"}, tokenTexts(tokens))
}

func TestLexerReadError(t *testing.T) {
	boom := errors.New("boom")
	err := New(iotest.ErrReader(boom)).Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, ok := AsError(err)
	assert.False(t, ok)
}

func TestLexerSmallReads(t *testing.T) {
	src := "int é = 1; // ok\r\nconst"
	runErr := New(iotest.OneByteReader(strings.NewReader(src))).Run()
	lexErr, ok := AsError(runErr)
	require.True(t, ok)
	assert.Equal(t, Position{2, 1}, lexErr.Pos)
}

func TestLexerLargeInput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&b, "int value%d = %d; /* comment %d */\n", i, i, i)
	}
	tokens, err := Scan([]byte(b.String()))
	require.NoError(t, err)
	assert.Len(t, tokens, 10000)
	assert.Equal(t, Position{5000, 5}, tokens[len(tokens)-1].Pos)
}

func TestAsErrorWrapped(t *testing.T) {
	inner := newError(LexicalError, Position{3, 4}, MsgUnterminatedComment)
	wrapped := fmt.Errorf("compile A.java: %w", inner)

	got, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.Equal(t, "3:4: unterminated comment", got.Error())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "decode", DecodeError.String())
	assert.Equal(t, "escape", EscapeError.String())
	assert.Equal(t, "lexical", LexicalError.String())
}
