// Copyright 2023 The Vitess Authors.
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
//
// Modifications Copyright 2025 Supabase, Inc.

package viperutil

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Registerable is the type-erased part of a Value, used by BindFlags.
type Registerable interface {
	// Key returns the viper key of the value.
	Key() string
	// Flag returns the pflag bound to this value in fs, or nil when the value
	// has no flag. An error is returned when a flag name is configured but fs
	// does not define it.
	Flag(fs *pflag.FlagSet) (*pflag.Flag, error)

	registry() *viper.Viper
}

// Value is a typed handle to one configuration key.
type Value[T any] interface {
	Registerable

	// Get returns the resolved value.
	Get() T
	// Set overrides the value for the rest of the process.
	Set(v T)
	// Default returns the configured default.
	Default() T
}

// Options configures a value created with Configure.
type Options[T any] struct {
	// Aliases are additional keys that resolve to this value.
	Aliases []string
	// FlagName is the name of the pflag bound by BindFlags. Empty means the
	// value is not settable from the command line.
	FlagName string
	// EnvVars are environment variables consulted, in order, before the
	// config file.
	EnvVars []string
	// Default is used when no other source sets the value.
	Default T

	// GetFunc overrides how the value is read from viper. The default reads
	// it with the viper getter matching T.
	GetFunc func(v *viper.Viper) func(key string) T
}

// Configure registers key in reg and returns its typed handle.
func Configure[T any](reg *Registry, key string, opts Options[T]) Value[T] {
	v := reg.static
	v.SetDefault(key, opts.Default)

	for _, alias := range opts.Aliases {
		v.RegisterAlias(alias, key)
	}

	if len(opts.EnvVars) > 0 {
		vars := append([]string{key}, opts.EnvVars...)
		if err := v.BindEnv(vars...); err != nil {
			slog.Warn("failed to bind env vars", "key", key, "err", err)
		}
	}

	getFunc := opts.GetFunc
	if getFunc == nil {
		getFunc = GetFuncForType[T]()
	}

	return &Static[T]{
		v:          v,
		key:        key,
		flagName:   opts.FlagName,
		DefaultVal: opts.Default,
		get:        getFunc(v),
	}
}

// Static is a value whose resolution never changes once config is loaded.
type Static[T any] struct {
	v        *viper.Viper
	key      string
	flagName string
	get      func(key string) T

	DefaultVal T
}

func (val *Static[T]) Key() string            { return val.key }
func (val *Static[T]) Get() T                 { return val.get(val.key) }
func (val *Static[T]) Set(v T)                { val.v.Set(val.key, v) }
func (val *Static[T]) Default() T             { return val.DefaultVal }
func (val *Static[T]) registry() *viper.Viper { return val.v }

func (val *Static[T]) Flag(fs *pflag.FlagSet) (*pflag.Flag, error) {
	if val.flagName == "" {
		return nil, nil
	}
	flag := fs.Lookup(val.flagName)
	if flag == nil {
		return nil, fmt.Errorf("flag %s not found in %s", val.flagName, fs.Name())
	}
	return flag, nil
}

// BindFlags binds each value to its flag in fs, so a flag set on the command
// line takes precedence over the environment and config file.
func BindFlags(fs *pflag.FlagSet, values ...Registerable) {
	for _, val := range values {
		flag, err := val.Flag(fs)
		switch {
		case err != nil:
			slog.Error("failed to load flag for value", "key", val.Key(), "err", err)
			continue
		case flag == nil:
			continue
		}

		if err := val.registry().BindPFlag(val.Key(), flag); err != nil {
			slog.Error("failed to bind flag", "key", val.Key(), "flag", flag.Name, "err", err)
		}
	}
}

// GetFuncForType returns the default getter for T.
func GetFuncForType[T any]() func(v *viper.Viper) func(key string) T {
	var (
		t any = *new(T)
		f any
	)

	switch t.(type) {
	case bool:
		f = func(v *viper.Viper) func(key string) bool { return v.GetBool }
	case int:
		f = func(v *viper.Viper) func(key string) int { return v.GetInt }
	case int64:
		f = func(v *viper.Viper) func(key string) int64 { return v.GetInt64 }
	case uint64:
		f = func(v *viper.Viper) func(key string) uint64 { return v.GetUint64 }
	case float64:
		f = func(v *viper.Viper) func(key string) float64 { return v.GetFloat64 }
	case string:
		f = func(v *viper.Viper) func(key string) string { return v.GetString }
	case []string:
		f = func(v *viper.Viper) func(key string) []string { return v.GetStringSlice }
	case time.Duration:
		f = func(v *viper.Viper) func(key string) time.Duration { return v.GetDuration }
	default:
		return func(v *viper.Viper) func(key string) T {
			return func(key string) (out T) {
				if err := v.UnmarshalKey(key, &out); err != nil {
					slog.Warn("failed to unmarshal config value", "key", key, "err", err)
				}
				return out
			}
		}
	}

	return f.(func(v *viper.Viper) func(key string) T)
}

// GetPath reads a list of directories. A single string value is split on the
// OS path list separator, so UJ_CONFIG_PATH=/etc/ujavac:/opt/ujavac works.
func GetPath(v *viper.Viper) func(key string) []string {
	return func(key string) (paths []string) {
		for _, val := range v.GetStringSlice(key) {
			if val == "" {
				continue
			}
			for _, path := range strings.Split(val, string(os.PathListSeparator)) {
				if path != "" {
					paths = append(paths, path)
				}
			}
		}
		return paths
	}
}
