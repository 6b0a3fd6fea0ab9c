// Copyright 2022 The Vitess Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Modifications Copyright 2025 Supabase, Inc.

// Package ujerrors holds the coded errors raised by the compiler driver and
// its command line. Lexical errors inside a compilation unit are reported by
// the lexer package instead.
package ujerrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// UJ1001 cannot read input
	UJ1001 = codedError("UJ1001", Resource, "cannot read input: %w", "The source file could not be opened or read. Check that the path exists and is readable by the current user.")
	// UJ1002 cannot create output
	UJ1002 = codedError("UJ1002", Resource, "cannot create output %s: %w", "The output file derived from the source path could not be created or truncated. Check that its directory exists and is writable.")

	// UJ2001 option requires an argument
	UJ2001 = codedError("UJ2001", Usage, "%s requires an argument", "A parameterized option was the last command line argument.")
	// UJ2002 invalid system
	UJ2002 = codedError("UJ2002", Usage, "invalid --system value %q: %s", "The --system option takes the path of an existing JDK directory, or none.")
)

// Category groups coded errors by what the user has to fix.
type Category int

const (
	// Resource errors come from the filesystem and fail one unit.
	Resource Category = iota
	// Usage errors come from the command line and stop the run.
	Usage
)

func (c Category) String() string {
	switch c {
	case Resource:
		return "resource"
	case Usage:
		return "usage"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

type CodedError struct {
	Err         error
	Description string
	ID          string
	Category    Category
}

func (o *CodedError) Error() string {
	return o.Err.Error()
}

func (o *CodedError) Cause() error {
	return o.Err
}

// Unwrap exposes the underlying cause (for example an *fs.PathError) to
// errors.Is and errors.As.
func (o *CodedError) Unwrap() error {
	return errors.Unwrap(o.Err)
}

var _ error = (*CodedError)(nil)

// codedError returns a constructor for the error with the given id. short is
// a format string; a %w verb in it wraps the matching argument.
func codedError(id string, category Category, short, long string) func(args ...any) *CodedError {
	return func(args ...any) *CodedError {
		var err error
		if len(args) != 0 {
			err = fmt.Errorf(id+": "+short, args...)
		} else {
			err = errors.New(id + ": " + short)
		}

		return &CodedError{
			Err:         err,
			Description: long,
			ID:          id,
			Category:    category,
		}
	}
}

// IsError reports whether err, or any error it wraps, carries the given code.
func IsError(err error, code string) bool {
	if err == nil {
		return false
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.ID == code
	}
	return strings.Contains(err.Error(), code)
}
