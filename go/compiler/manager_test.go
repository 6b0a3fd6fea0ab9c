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

package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ujavac/ujavac/go/common/diag"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestManager builds a manager over an in-memory filesystem seeded with files.
func newTestManager(t *testing.T, files map[string]string, inputs []string, opts ...Option) (*Manager, afero.Fs, *diag.Recorder) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	rec := &diag.Recorder{}
	opts = append([]Option{WithFS(fs), WithSink(rec), WithLogger(discardLogger())}, opts...)
	return NewManager(inputs, opts...), fs, rec
}

func TestRunAllValid(t *testing.T) {
	m, fs, rec := newTestManager(t, map[string]string{
		"A.java": "class A { /* ok */ }\n",
		"B.txt":  "// just a comment",
	}, []string{"A.java", "B.txt"})

	assert.Equal(t, StatusSuccess, m.Run())
	assert.Zero(t, rec.Len())

	for _, out := range []string{"A.class", "B.txt.class"} {
		info, err := fs.Stat(out)
		require.NoError(t, err, "output %s should be created", out)
		assert.Zero(t, info.Size())
	}
}

func TestRunNoUnits(t *testing.T) {
	m, _, rec := newTestManager(t, nil, nil)
	assert.Equal(t, StatusSuccess, m.Run())
	assert.Zero(t, rec.Len())
}

func TestRunOneFailureFailsTheRun(t *testing.T) {
	files := map[string]string{
		"Good1.java": "class Good1 {}",
		"Bad.java":   "class Bad {\n  int goto = 1;\n}",
		"Good2.java": "class Good2 {}",
	}
	orders := [][]string{
		{"Good1.java", "Bad.java", "Good2.java"},
		{"Bad.java", "Good1.java", "Good2.java"},
		{"Good1.java", "Good2.java", "Bad.java"},
	}

	for _, jobs := range []int{1, 3} {
		for _, order := range orders {
			t.Run(fmt.Sprintf("jobs=%d/%v", jobs, order), func(t *testing.T) {
				m, fs, rec := newTestManager(t, files, order, WithJobs(jobs))
				assert.Equal(t, StatusFailure, m.Run())

				require.Equal(t, []diag.Diagnostic{{
					Path:    "Bad.java",
					Line:    2,
					Column:  7,
					Message: "reserved word used as identifier: 'goto'",
				}}, rec.Diagnostics())

				// Siblings still ran to completion.
				for _, out := range []string{"Good1.class", "Good2.class", "Bad.class"} {
					exists, err := afero.Exists(fs, out)
					require.NoError(t, err)
					assert.True(t, exists, "%s should exist", out)
				}
			})
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	m, fs, rec := newTestManager(t, map[string]string{"A.java": "class A {}"}, []string{"A.java", "Missing.java"})
	assert.Equal(t, StatusFailure, m.Run())

	diags := rec.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "Missing.java", diags[0].Path)
	assert.Zero(t, diags[0].Line)
	assert.Equal(t, "UJ1001: cannot read input: open Missing.java: file does not exist", diags[0].Message)

	exists, err := afero.Exists(fs, "Missing.class")
	require.NoError(t, err)
	assert.False(t, exists, "no output for a unit whose input cannot be opened")
}

func TestRunUncreatableOutput(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "A.java", []byte("class A {}"), 0o644))

	rec := &diag.Recorder{}
	m := NewManager([]string{"A.java"},
		WithFS(afero.NewReadOnlyFs(base)),
		WithSink(rec),
		WithLogger(discardLogger()),
	)
	assert.Equal(t, StatusFailure, m.Run())

	diags := rec.Diagnostics()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "UJ1002: cannot create output A.class")
}

func TestRunTruncatesExistingOutput(t *testing.T) {
	m, fs, _ := newTestManager(t, map[string]string{
		"A.java":  "class A {}",
		"A.class": "stale bytes",
	}, []string{"A.java"})
	require.Equal(t, StatusSuccess, m.Run())

	data, err := afero.ReadFile(fs, "A.class")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestRunReportsLexerErrors(t *testing.T) {
	m, _, rec := newTestManager(t, map[string]string{
		"Comment.java": "class C {}\n/* never closed",
		"Utf8.java":    "class U { String s = \"\xC3(\"; }",
		"Escape.java":  "class E { char c = '\\uDE00'; }",
	}, []string{"Comment.java", "Utf8.java", "Escape.java"}, WithJobs(1))
	assert.Equal(t, StatusFailure, m.Run())

	got := make(map[string]string)
	for _, d := range rec.Diagnostics() {
		got[d.Path] = d.String()
	}
	assert.Equal(t, map[string]string{
		"Comment.java": "Comment.java:2:1: unterminated comment",
		"Utf8.java":    "Utf8.java:1:23: invalid UTF-8 continuation byte",
		"Escape.java":  "Escape.java:1:21: unexpected low surrogate without preceding high surrogate",
	}, got)
}

func TestRunManyUnits(t *testing.T) {
	files := make(map[string]string)
	var inputs []string
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("U%02d.java", i)
		content := fmt.Sprintf("class U%02d {}", i)
		if i%4 == 0 {
			content += " /*"
		}
		files[name] = content
		inputs = append(inputs, name)
	}

	var (
		mu       sync.Mutex
		finished = make(map[string]bool)
	)
	m, _, rec := newTestManager(t, files, inputs, WithJobs(4), WithCompileHook(func(u Unit, ok bool) {
		mu.Lock()
		defer mu.Unlock()
		finished[u.Input] = ok
	}))

	assert.Equal(t, StatusFailure, m.Run())
	assert.Equal(t, 10, rec.Len())
	require.Len(t, finished, 40)
	for name, ok := range finished {
		var idx int
		_, err := fmt.Sscanf(name, "U%02d.java", &idx)
		require.NoError(t, err)
		assert.Equal(t, idx%4 != 0, ok, name)
	}
}

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager([]string{"A.java"}, WithJobs(0))
	assert.GreaterOrEqual(t, m.jobs, 1)
	assert.Equal(t, []Unit{{Input: "A.java", Output: "A.class"}}, m.Units())

	m = NewManager([]string{"A.jav"}, WithSuffixes(".jav", ".tok"))
	assert.Equal(t, []Unit{{Input: "A.jav", Output: "A.tok"}}, m.Units())
}
