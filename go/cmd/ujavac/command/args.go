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

package command

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/ujavac/ujavac/go/common/ujerrors"
)

// javacAliases maps the single-dash spellings accepted by javac to the long
// options understood by the command.
var javacAliases = map[string]string{
	"-help":    "--help",
	"-?":       "--help",
	"-version": "--version",
	"-verbose": "--verbose",
	"-Werror":  "--werror",
	"-system":  "--system",
}

// NormalizeArgs rewrites javac-style options in args to their long form and
// checks that every option taking a value is followed by one. Arguments after
// "--" are passed through untouched.
func NormalizeArgs(fs *pflag.FlagSet, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if alias, ok := javacAliases[arg]; ok {
			arg = alias
		}
		out = append(out, arg)

		if valueFlag(fs, arg) == nil {
			continue
		}
		if i == len(args)-1 {
			return nil, ujerrors.UJ2001(args[i])
		}
		// The value is taken verbatim, even when it starts with a dash.
		i++
		out = append(out, args[i])
	}
	return out, nil
}

// valueFlag returns the flag named by arg when it needs a separate value
// argument, or nil.
func valueFlag(fs *pflag.FlagSet, arg string) *pflag.Flag {
	var f *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		if strings.Contains(arg, "=") {
			return nil
		}
		f = fs.Lookup(arg[2:])
	case len(arg) == 2 && arg[0] == '-':
		f = fs.ShorthandLookup(arg[1:])
	}
	if f == nil || f.NoOptDefVal != "" {
		return nil
	}
	return f
}
