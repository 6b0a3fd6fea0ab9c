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

package compiler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch recompiles a unit each time its input file is written or created,
// until ctx is done. Directories are watched rather than files so editors
// that save by renaming a new file into place are still seen.
//
// fsnotify observes the real filesystem, so Watch is only meaningful when
// the manager uses the OS filesystem.
func (m *Manager) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	byPath := make(map[string]Unit, len(m.units))
	dirs := make(map[string]struct{})
	for _, u := range m.units {
		path := filepath.Clean(u.Input)
		byPath[path] = u
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	m.logger.Info("watching for changes", "units", len(m.units), "dirs", len(dirs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, open := <-w.Events:
			if !open {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			u, found := byPath[filepath.Clean(ev.Name)]
			if !found {
				continue
			}
			ok := m.compile(u)
			m.logger.Info("recompiled unit", "path", u.Input, "ok", ok)
		case err, open := <-w.Errors:
			if !open {
				return nil
			}
			m.logger.Warn("watch error", "err", err)
		}
	}
}
