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
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ujavac/ujavac/go/common/ujerrors"
)

func testFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntP("jobs", "j", 0, "")
	fs.String("system", "none", "")
	fs.Bool("verbose", false, "")
	fs.String("print-config", "", "")
	fs.Lookup("print-config").NoOptDefVal = "yaml"
	return fs
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"files only", []string{"A.java", "B.java"}, []string{"A.java", "B.java"}},
		{"javac aliases", []string{"-verbose", "-Werror", "-version", "-help", "-?"}, []string{"--verbose", "--werror", "--version", "--help", "--help"}},
		{"javac system", []string{"-system", "/jdk", "A.java"}, []string{"--system", "/jdk", "A.java"}},
		{"value taken verbatim", []string{"--system", "-verbose", "A.java"}, []string{"--system", "-verbose", "A.java"}},
		{"inline value", []string{"--system=/jdk", "A.java"}, []string{"--system=/jdk", "A.java"}},
		{"shorthand", []string{"-j", "4", "A.java"}, []string{"-j", "4", "A.java"}},
		{"optional value", []string{"A.java", "--print-config"}, []string{"A.java", "--print-config"}},
		{"after terminator", []string{"--", "-verbose", "-system"}, []string{"--", "-verbose", "-system"}},
		{"unknown option untouched", []string{"-Xlint", "A.java"}, []string{"-Xlint", "A.java"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeArgs(testFlagSet(), tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeArgsMissingValue(t *testing.T) {
	tests := []struct {
		args    []string
		wantMsg string
	}{
		{[]string{"A.java", "-system"}, "UJ2001: -system requires an argument"},
		{[]string{"--system"}, "UJ2001: --system requires an argument"},
		{[]string{"A.java", "-j"}, "UJ2001: -j requires an argument"},
		{[]string{"--jobs"}, "UJ2001: --jobs requires an argument"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			_, err := NormalizeArgs(testFlagSet(), tt.args)
			require.Error(t, err)
			assert.True(t, ujerrors.IsError(err, "UJ2001"))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
