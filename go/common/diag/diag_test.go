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

package diag

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ujavac/ujavac/go/lexer"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{
			name: "with position",
			d:    Diagnostic{Path: "src/A.java", Line: 3, Column: 14, Message: "unterminated comment"},
			want: "src/A.java:3:14: unterminated comment",
		},
		{
			name: "without position",
			d:    Diagnostic{Path: "B.java", Message: "UJ1001: cannot read input: denied"},
			want: "B.java: UJ1001: cannot read input: denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestFromError(t *testing.T) {
	_, err := lexer.Scan([]byte("int x;\n  goto;"))
	require.Error(t, err)

	d := FromError("A.java", fmt.Errorf("lex: %w", err))
	assert.Equal(t, Diagnostic{
		Path:    "A.java",
		Line:    2,
		Column:  3,
		Message: "reserved word used as identifier: 'goto'",
	}, d)

	d = FromError("A.java", errors.New("disk on fire"))
	assert.Equal(t, Diagnostic{Path: "A.java", Message: "disk on fire"}, d)
}

func TestWriterSinkConcurrentLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				sink.Report(Diagnostic{Path: fmt.Sprintf("U%d.java", w), Line: uint64(i + 1), Column: 1, Message: "unclosed string literal"})
			}
		}(w)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, writers*perWriter)
	for _, line := range lines {
		assert.Regexp(t, `^U\d\.java:\d+:1: unclosed string literal$`, line)
	}
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	rec.Report(Diagnostic{Path: "A.java", Message: "one"})
	rec.Report(Diagnostic{Path: "B.java", Message: "two"})

	assert.Equal(t, 2, rec.Len())
	diags := rec.Diagnostics()
	assert.Equal(t, "one", diags[0].Message)

	// The returned slice is a copy.
	diags[0].Message = "changed"
	assert.Equal(t, "one", rec.Diagnostics()[0].Message)
}
