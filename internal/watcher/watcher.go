// Package watcher periodically stats a configured set of directories and
// reports whether any tracked file was added, removed, or modified since
// the previous poll. It drives the hot-reload engine of spec.md §4.5; unlike
// quasar's internal/nebula.Watcher (event-driven, via fsnotify), this
// watcher is poll-based by design: spec.md mandates change detection by
// modification time on a fixed cadence, not OS-level filesystem events.
package watcher

import (
	"io/fs"
	"path/filepath"
)

// snapshot records the (mtime, size) pair spec.md §9.1 allows combining:
// the mtime rule is mandatory, size is an additive refinement that catches
// same-second edits a coarse mtime clock would otherwise miss.
type snapshot struct {
	modTime int64 // UnixNano, for sub-second resolution where the OS provides it
	size    int64
}

// Watcher holds the directories to poll and the snapshot of file state as
// of the previous poll.
type Watcher struct {
	Dirs []string

	snapshots map[string]snapshot
}

// New creates a Watcher over dirs. Its snapshot starts empty, so the first
// Poll always reports changed=true if any file exists.
func New(dirs []string) *Watcher {
	return &Watcher{
		Dirs:      dirs,
		snapshots: make(map[string]snapshot),
	}
}

// Poll walks the configured directories and reports whether any file's
// path is new, any file's (mtime, size) differs from the stored snapshot,
// or any previously-recorded file is now missing. It then refreshes the
// stored snapshot to the current file set, per spec.md §4.5.
func (w *Watcher) Poll() (changed bool, err error) {
	current := make(map[string]snapshot)

	for _, dir := range w.Dirs {
		walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable entries are invisible to the watcher, not fatal
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			info, statErr := d.Info()
			if statErr != nil {
				return nil
			}
			current[path] = snapshot{
				modTime: info.ModTime().UnixNano(),
				size:    info.Size(),
			}
			return nil
		})
		if walkErr != nil {
			// A directory that disappeared between polls is a change, not
			// an error the caller needs to see.
			changed = true
		}
	}

	if len(current) != len(w.snapshots) {
		changed = true
	}
	for path, snap := range current {
		prev, ok := w.snapshots[path]
		if !ok || prev != snap {
			changed = true
			break
		}
	}

	w.snapshots = current
	return changed, nil
}
