package prefabs

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

var ErrNoPrefabs = errors.New("prefabs: nothing to watch")

// Watcher reports edits to a fixed set of prefab files. Each name resolves
// to the same on-disk file Load would read, so relative names follow Dir
// and absolute names are watched where they live. Changes are buffered
// until the game loop polls for them between ticks.
type Watcher struct {
	fs *fsnotify.Watcher
	// disk path -> name as passed to NewWatcher
	names   map[string]string
	changes chan string

	mu      sync.Mutex
	lastErr error

	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(names ...string) (*Watcher, error) {
	if len(names) == 0 {
		return nil, ErrNoPrefabs
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: watcher: %w", err)
	}

	w := &Watcher{
		fs:      fsw,
		names:   make(map[string]string, len(names)),
		changes: make(chan string, 16),
		closeCh: make(chan struct{}),
	}
	dirs := make(map[string]struct{})
	for _, name := range names {
		path := DiskPath(name)
		w.names[path] = name
		dir := filepath.Dir(path)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

// Poll returns the next changed prefab, spelled the way it was passed to
// NewWatcher, without blocking.
func (w *Watcher) Poll() (string, bool) {
	if w == nil {
		return "", false
	}
	select {
	case name := <-w.changes:
		return name, true
	default:
		return "", false
	}
}

// Err returns and clears the last error reported by the OS watcher.
func (w *Watcher) Err() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.lastErr
	w.lastErr = nil
	return err
}

func (w *Watcher) lookup(path string) (string, bool) {
	name, ok := w.names[filepath.Clean(path)]
	return name, ok
}

func (w *Watcher) run() {
	type seen struct {
		at  time.Time
		mod time.Time
	}
	last := make(map[string]seen)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Editors that save by rename show up as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, ok := w.lookup(event.Name)
			if !ok {
				continue
			}
			mod, ok := ModTime(name)
			if !ok {
				continue
			}
			now := time.Now()
			prev := last[name]
			if mod.Equal(prev.mod) || now.Sub(prev.at) < reloadDebounce {
				continue
			}
			last[name] = seen{at: now, mod: mod}
			select {
			case w.changes <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.lastErr = err
			w.mu.Unlock()
		case <-w.closeCh:
			return
		}
	}
}
