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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ujavac/ujavac/go/common/diag"
)

type compileEvent struct {
	unit Unit
	ok   bool
}

func TestWatchRecompilesOnWrite(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "A.java")
	require.NoError(t, os.WriteFile(input, []byte("class A {}"), 0o644))

	events := make(chan compileEvent, 16)
	rec := &diag.Recorder{}
	m := NewManager([]string{input},
		WithFS(afero.NewOsFs()),
		WithSink(rec),
		WithLogger(discardLogger()),
		WithCompileHook(func(u Unit, ok bool) {
			select {
			case events <- compileEvent{u, ok}:
			default:
			}
		}),
	)
	require.Equal(t, StatusSuccess, m.Run())
	<-events

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	// The watch is registered asynchronously, so keep rewriting the file
	// until a recompilation with the expected outcome is observed.
	waitForCompile := func(content string, wantOK bool) {
		t.Helper()
		deadline := time.After(10 * time.Second)
		for {
			require.NoError(t, os.WriteFile(input, []byte(content), 0o644))
			select {
			case ev := <-events:
				if ev.ok == wantOK {
					assert.Equal(t, input, ev.unit.Input)
					return
				}
			case <-time.After(100 * time.Millisecond):
			case <-deadline:
				t.Fatalf("no recompilation with ok=%v", wantOK)
			}
		}
	}

	waitForCompile("class A { int goto; }", false)
	waitForCompile("class A { int ok; }", true)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	diags := rec.Diagnostics()
	require.NotEmpty(t, diags)
	assert.Equal(t, "reserved word used as identifier: 'goto'", diags[0].Message)
}

func TestWatchMissingDirectory(t *testing.T) {
	m := NewManager([]string{filepath.Join(t.TempDir(), "nope", "A.java")},
		WithSink(&diag.Recorder{}),
		WithLogger(discardLogger()),
	)
	err := m.Watch(context.Background())
	assert.ErrorContains(t, err, "failed to watch")
}
