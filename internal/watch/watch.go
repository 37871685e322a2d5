// Package watch reports changes to a single source file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op indicates a change operation in the filesystem.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op Op) String() string {
	var names []string
	for _, n := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
	} {
		if op&n.op != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// Event describes a change of the watched file. Op accumulates every
// operation seen during the debounce window.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Watcher watches one file. The parent directory is watched instead of the
// file itself so that editors replacing the file through a rename are seen.
type Watcher struct {
	w        *fsnotify.Watcher
	path     string
	debounce time.Duration
}

// New creates a watcher for path. Bursts of events closer together than
// debounce are reported once.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{w: w, path: abs, debounce: debounce}, nil
}

// Path returns the absolute path being watched
func (fw *Watcher) Path() string { return fw.path }

// Close releases the watcher
func (fw *Watcher) Close() error { return fw.w.Close() }

// Run calls onChange for every debounced change until ctx is done, which is
// not an error. Chmod-only changes are ignored.
func (fw *Watcher) Run(ctx context.Context, onChange func(Event)) error {
	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending Event
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			op := convert(ev.Op)
			if op&^OpChmod == 0 {
				continue
			}
			pending.Path = fw.path
			pending.Op |= op
			pending.Time = time.Now()
			timer.Reset(fw.debounce)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", fw.path, err)
		case <-timer.C:
			if pending.Op != 0 {
				onChange(pending)
			}
			pending = Event{}
		}
	}
}

func convert(o fsnotify.Op) Op {
	var op Op
	if o&fsnotify.Create != 0 {
		op |= OpCreate
	}
	if o&fsnotify.Write != 0 {
		op |= OpWrite
	}
	if o&fsnotify.Remove != 0 {
		op |= OpRemove
	}
	if o&fsnotify.Rename != 0 {
		op |= OpRename
	}
	if o&fsnotify.Chmod != 0 {
		op |= OpChmod
	}
	return op
}
