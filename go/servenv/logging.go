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

package servenv

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ujavac/ujavac/go/viperutil"

	"github.com/spf13/pflag"
)

// Logger owns the logging configuration of one command and the slog logger
// built from it.
type Logger struct {
	// Logging configuration flags
	logLevel  viperutil.Value[string]
	logFormat viperutil.Value[string]
	logOutput viperutil.Value[string]

	// Internal state
	loggerOnce sync.Once
	logger     *slog.Logger
	level      slog.LevelVar
	closer     io.Closer
	loggerMu   sync.Mutex
}

// NewLogger registers the logging values in reg. A command line tool keeps
// stdout for its own output, so logs default to warnings on stderr.
func NewLogger(reg *viperutil.Registry) *Logger {
	return &Logger{
		logLevel: viperutil.Configure(reg, "log-level", viperutil.Options[string]{
			Default:  "warn",
			FlagName: "log-level",
			EnvVars:  []string{"UJ_LOG_LEVEL"},
		}),
		logFormat: viperutil.Configure(reg, "log-format", viperutil.Options[string]{
			Default:  "text",
			FlagName: "log-format",
			EnvVars:  []string{"UJ_LOG_FORMAT"},
		}),
		logOutput: viperutil.Configure(reg, "log-output", viperutil.Options[string]{
			Default:  "stderr",
			FlagName: "log-output",
			EnvVars:  []string{"UJ_LOG_OUTPUT"},
		}),
	}
}

// RegisterFlags registers logging-related command line flags.
// This must be called before ParseFlags if using the logging system.
func (lg *Logger) RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", lg.logLevel.Default(), "Log level (debug, info, warn, error)")
	fs.String("log-format", lg.logFormat.Default(), "Log format (json, text)")
	fs.String("log-output", lg.logOutput.Default(), "Log output (stdout, stderr, or file path)")
	viperutil.BindFlags(fs, lg.logLevel, lg.logFormat, lg.logOutput)
}

// parseLevel maps a level name to a slog level, falling back to warn.
func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

// SetupLogging initializes the logger based on the configured flags.
// This should be called after flags are parsed but before any logging occurs.
func (lg *Logger) SetupLogging() {
	lg.loggerOnce.Do(func() {
		// Parse log level with fallback to default
		levelStr := lg.logLevel.Get()
		level, ok := parseLevel(levelStr)
		if !ok {
			levelStr = "warn" // Default fallback
		}
		lg.level.Set(level)

		// Determine output writer with fallback to stderr
		var output io.Writer
		outputStr := lg.logOutput.Get()
		if outputStr == "" {
			outputStr = "stderr" // Default fallback
		}
		switch strings.ToLower(outputStr) {
		case "stdout":
			output = os.Stdout
		case "stderr":
			output = os.Stderr
		default:
			// Treat as file path
			file, err := os.OpenFile(outputStr, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				// Fallback to stderr if file creation fails
				output = os.Stderr
			} else {
				output = file
				lg.closer = file
			}
		}

		// Create handler based on format with fallback to text
		var handler slog.Handler
		formatStr := lg.logFormat.Get()
		if formatStr == "" {
			formatStr = "text" // Default fallback
		}
		opts := &slog.HandlerOptions{Level: &lg.level}
		switch strings.ToLower(formatStr) {
		case "json":
			handler = slog.NewJSONHandler(output, opts)
		default:
			handler = slog.NewTextHandler(output, opts)
		}

		// Create logger
		newLogger := slog.New(handler)

		// Set as default slog logger
		slog.SetDefault(newLogger)

		// Store logger
		lg.loggerMu.Lock()
		lg.logger = newLogger
		lg.loggerMu.Unlock()

		// Log initial configuration
		newLogger.Debug("logging initialized",
			"level", levelStr,
			"format", formatStr,
			"output", outputStr,
		)
	})
}

// SetLevel changes the level of an initialized logger. Unknown names are
// ignored.
func (lg *Logger) SetLevel(name string) {
	level, ok := parseLevel(name)
	if !ok {
		lg.GetLogger().Warn("ignoring unknown log level", "level", name)
		return
	}
	lg.level.Set(level)
	lg.logLevel.Set(strings.ToLower(name))
}

// GetLogger returns the configured logger instance.
// SetupLogging must be called before this function.
func (lg *Logger) GetLogger() *slog.Logger {
	lg.loggerMu.Lock()
	defer lg.loggerMu.Unlock()
	if lg.logger == nil {
		// Return default slog logger if our logger hasn't been set up yet
		return slog.Default()
	}
	return lg.logger
}

// Close releases the log file, if logging to one.
func (lg *Logger) Close() error {
	lg.loggerMu.Lock()
	defer lg.loggerMu.Unlock()
	if lg.closer == nil {
		return nil
	}
	err := lg.closer.Close()
	lg.closer = nil
	return err
}

// GetLogLevel returns the current log level setting.
func (lg *Logger) GetLogLevel() string {
	return lg.logLevel.Get()
}
