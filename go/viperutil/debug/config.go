// Copyright 2023 The Vitess Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Modifications Copyright 2025 Supabase, Inc.

// Package debug renders the resolved configuration of a registry.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ujavac/ujavac/go/viperutil"
)

// Dump is the document written by Write.
type Dump struct {
	ConfigFile       string            `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	CommandLineFlags map[string]string `json:"command_line_flags" yaml:"command_line_flags"`
	Config           map[string]any    `json:"config" yaml:"config"`
}

// Collect gathers the flags changed in fs and every resolved value in reg.
// fs may be nil.
func Collect(reg *viperutil.Registry, fs *pflag.FlagSet) Dump {
	v := reg.Combined()

	d := Dump{
		ConfigFile:       v.ConfigFileUsed(),
		CommandLineFlags: make(map[string]string),
		Config:           make(map[string]any),
	}
	if fs != nil {
		fs.VisitAll(func(flag *pflag.Flag) {
			if flag.Changed {
				d.CommandLineFlags[flag.Name] = flag.Value.String()
			}
		})
	}
	for _, k := range v.AllKeys() {
		value := v.Get(k)
		if value == nil {
			// should not happen
			continue
		}
		d.Config[k] = fmt.Sprintf("%v", value)
	}
	return d
}

// Write renders the configuration of reg to w as "yaml" (the default) or
// "json".
func Write(w io.Writer, reg *viperutil.Registry, fs *pflag.FlagSet, format string) error {
	d := Collect(reg, fs)

	switch strings.ToLower(format) {
	case "", "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(d); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(d); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q (want yaml or json)", format)
	}
}
