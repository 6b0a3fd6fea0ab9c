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

package debug

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ujavac/ujavac/go/viperutil"
)

func newTestRegistry(t *testing.T) (*viperutil.Registry, *pflag.FlagSet) {
	t.Helper()
	reg := viperutil.NewRegistry()
	jobs := viperutil.Configure(reg, "jobs", viperutil.Options[int]{Default: 1, FlagName: "jobs"})
	system := viperutil.Configure(reg, "system", viperutil.Options[string]{Default: "none", FlagName: "system"})

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("jobs", jobs.Default(), "")
	fs.String("system", system.Default(), "")
	viperutil.BindFlags(fs, jobs, system)
	require.NoError(t, fs.Parse([]string{"--jobs", "6"}))
	return reg, fs
}

func TestWriteYAML(t *testing.T) {
	reg, fs := newTestRegistry(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, reg, fs, "yaml"))

	var got Dump
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]string{"jobs": "6"}, got.CommandLineFlags)
	assert.Equal(t, "6", got.Config["jobs"])
	assert.Equal(t, "none", got.Config["system"])
}

func TestWriteJSON(t *testing.T) {
	reg, fs := newTestRegistry(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, reg, fs, "JSON"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Contains(t, got, "command_line_flags")
	assert.Contains(t, got, "config")
	assert.NotContains(t, got, "config_file")
}

func TestWriteUnsupportedFormat(t *testing.T) {
	reg, fs := newTestRegistry(t)
	err := Write(&bytes.Buffer{}, reg, fs, "toml")
	assert.ErrorContains(t, err, `unsupported config format "toml"`)
}

func TestCollectWithoutFlags(t *testing.T) {
	reg, _ := newTestRegistry(t)
	d := Collect(reg, nil)
	assert.Empty(t, d.CommandLineFlags)
	assert.Empty(t, d.ConfigFile)
}
