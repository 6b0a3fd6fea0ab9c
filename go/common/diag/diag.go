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

// Package diag formats and delivers compiler diagnostics.
package diag

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/ujavac/ujavac/go/lexer"
)

// Diagnostic is one message about a compilation unit. A zero Line means the
// message has no source position (for example an unreadable file).
type Diagnostic struct {
	Path    string
	Line    uint64
	Column  uint64
	Message string
}

// String renders the diagnostic as "path:line:col: message", or
// "path: message" when it has no position.
func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Path, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Line, d.Column, d.Message)
}

// FromError builds the diagnostic for an error that failed the unit at path.
// Lexer errors keep their position; anything else is position-less.
func FromError(path string, err error) Diagnostic {
	if lexErr, ok := lexer.AsError(err); ok {
		return Diagnostic{
			Path:    path,
			Line:    lexErr.Pos.Line,
			Column:  lexErr.Pos.Column,
			Message: lexErr.Message,
		}
	}
	return Diagnostic{Path: path, Message: err.Error()}
}

// Sink receives diagnostics. Implementations must be safe for concurrent use;
// units report from their own goroutines.
type Sink interface {
	Report(d Diagnostic)
}

// WriterSink writes one line per diagnostic. Lines from concurrent reporters
// never interleave.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// NewStderrSink returns the default sink.
func NewStderrSink() *WriterSink {
	return NewWriterSink(os.Stderr)
}

// Report writes d followed by a newline. Write errors are dropped.
func (s *WriterSink) Report(d Diagnostic) {
	line := d.String() + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, line)
}

// Recorder keeps every reported diagnostic in memory.
type Recorder struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report records d.
func (r *Recorder) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, d)
}

// Diagnostics returns a copy of the recorded diagnostics in report order.
func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.diags)
}

// Len returns the number of recorded diagnostics.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.diags)
}

var (
	_ Sink = (*WriterSink)(nil)
	_ Sink = (*Recorder)(nil)
)
