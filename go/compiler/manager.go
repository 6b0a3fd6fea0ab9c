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

// Package compiler drives the lexer over a set of compilation units in
// parallel and reduces their outcomes to one process status.
package compiler

import (
	"errors"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ujavac/ujavac/go/common/constants"
	"github.com/ujavac/ujavac/go/common/diag"
	"github.com/ujavac/ujavac/go/common/ujerrors"
	"github.com/ujavac/ujavac/go/lexer"
)

// Process exit statuses returned by Run.
const (
	StatusSuccess = 0
	StatusFailure = 1
)

// Manager compiles a fixed set of units.
type Manager struct {
	fs     afero.Fs
	sink   diag.Sink
	logger *slog.Logger
	jobs   int

	sourceSuffix string
	outputSuffix string

	units []Unit

	// onCompile, when set, observes every finished unit.
	onCompile func(u Unit, ok bool)
}

// Option configures a Manager.
type Option func(*Manager)

// WithFS sets the filesystem units are read from and written to.
func WithFS(fs afero.Fs) Option {
	return func(m *Manager) { m.fs = fs }
}

// WithSink sets where diagnostics are reported.
func WithSink(sink diag.Sink) Option {
	return func(m *Manager) { m.sink = sink }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithJobs bounds the number of units compiled at once. Values below 1
// select runtime.GOMAXPROCS(0).
func WithJobs(jobs int) Option {
	return func(m *Manager) { m.jobs = jobs }
}

// WithSuffixes overrides the source and output suffixes used to derive
// output paths.
func WithSuffixes(source, output string) Option {
	return func(m *Manager) {
		m.sourceSuffix = source
		m.outputSuffix = output
	}
}

// WithCompileHook registers fn to observe every finished unit, including
// recompilations in watch mode. fn is called from worker goroutines.
func WithCompileHook(fn func(u Unit, ok bool)) Option {
	return func(m *Manager) { m.onCompile = fn }
}

// NewManager creates a manager for inputs. Defaults: the OS filesystem,
// diagnostics on stderr, slog.Default, GOMAXPROCS jobs, .java to .class.
func NewManager(inputs []string, opts ...Option) *Manager {
	m := &Manager{
		sourceSuffix: constants.DefaultSourceSuffix,
		outputSuffix: constants.DefaultOutputSuffix,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fs == nil {
		m.fs = afero.NewOsFs()
	}
	if m.sink == nil {
		m.sink = diag.NewStderrSink()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.jobs < 1 {
		m.jobs = runtime.GOMAXPROCS(0)
	}
	m.units = NewUnits(inputs, m.sourceSuffix, m.outputSuffix)
	return m
}

// Units returns the units in input order.
func (m *Manager) Units() []Unit {
	return m.units
}

// Run compiles every unit and returns StatusSuccess when all of them
// succeeded. A failing unit never stops its siblings.
func (m *Manager) Run() int {
	var ok atomic.Bool
	ok.Store(true)

	var g errgroup.Group
	g.SetLimit(m.jobs)
	for _, u := range m.units {
		g.Go(func() error {
			if !m.compile(u) {
				ok.CompareAndSwap(true, false)
			}
			return nil
		})
	}
	_ = g.Wait()

	m.logger.Debug("compilation finished", "units", len(m.units), "ok", ok.Load())
	if ok.Load() {
		return StatusSuccess
	}
	return StatusFailure
}

// compile runs the lexer over one unit and reports its first fatal error.
func (m *Manager) compile(u Unit) (ok bool) {
	start := time.Now()
	m.logger.Debug("compiling unit", "path", u.Input, "output", u.Output)
	defer func() {
		m.logger.Debug("compiled unit", "path", u.Input, "output", u.Output, "ok", ok, "duration", time.Since(start))
		if m.onCompile != nil {
			m.onCompile(u, ok)
		}
	}()

	in, err := m.fs.Open(u.Input)
	if err != nil {
		m.report(u, ujerrors.UJ1001(err))
		return false
	}
	defer in.Close()

	out, err := m.fs.Create(u.Output)
	if err != nil {
		m.report(u, ujerrors.UJ1002(u.Output, err))
		return false
	}
	defer out.Close()

	tokens := 0
	lx := lexer.New(in, lexer.WithTokenHandler(func(lexer.Token) {
		tokens++
	}))
	if err := lx.Run(); err != nil {
		if _, isLexErr := lexer.AsError(err); !isLexErr {
			if cause := errors.Unwrap(err); cause != nil {
				err = cause
			}
			err = ujerrors.UJ1001(err)
		}
		m.report(u, err)
		return false
	}

	m.logger.Debug("scanned unit", "path", u.Input, "identifiers", tokens)
	return true
}

func (m *Manager) report(u Unit, err error) {
	m.sink.Report(diag.FromError(u.Input, err))
}
