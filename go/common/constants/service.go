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

package constants

// Service names for logging and the command line.
// Use these constants instead of string literals to enable type-safe refactoring.
const (
	// ServiceUjavac is the name of the compiler driver binary.
	ServiceUjavac = "ujavac"

	// Version is the release reported by --version.
	Version = "1.0.0"
)

// File naming defaults for compilation units.
const (
	// DefaultSourceSuffix is the extension replaced when deriving an output path.
	DefaultSourceSuffix = ".java"

	// DefaultOutputSuffix is the extension of derived output paths.
	DefaultOutputSuffix = ".class"
)

// EnvPrefix is prepended (with an underscore) to configuration keys when
// they are read from the environment, e.g. UJ_JOBS.
const EnvPrefix = "UJ"

// SystemNone disables the --system JDK lookup.
const SystemNone = "none"
