// Copyright 2025 Supabase, Inc.
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

package viperutil

import (
	"github.com/spf13/viper"
)

// Registry holds the viper instance backing a command's configuration.
// Each command builds its own registry, so tests and subcommands never share
// configuration state.
//
// Values are resolved in viper's usual order: explicitly Set values, flags,
// environment variables, the config file, then defaults.
type Registry struct {
	static *viper.Viper
}

// NewRegistry creates a new isolated configuration registry.
//
// Example usage:
//
//	reg := viperutil.NewRegistry()
//	jobs := viperutil.Configure(reg, "jobs", viperutil.Options[int]{
//	    Default:  4,
//	    FlagName: "jobs",
//	    EnvVars:  []string{"UJ_JOBS"},
//	})
func NewRegistry() *Registry {
	return &Registry{
		static: viper.New(),
	}
}

// Combined returns a snapshot viper instance holding every resolved value.
// This is useful for debug output and other utilities that need to access
// all configuration values.
func (reg *Registry) Combined() *viper.Viper {
	v := viper.New()
	_ = v.MergeConfigMap(reg.static.AllSettings())

	v.SetConfigFile(reg.static.ConfigFileUsed())
	return v
}

// ConfigFileUsed returns the path of the loaded config file, or "".
func (reg *Registry) ConfigFileUsed() string {
	return reg.static.ConfigFileUsed()
}
