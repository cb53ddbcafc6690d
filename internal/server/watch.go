package server

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/samcharles93/keyinfo/internal/logger"
)

// Watcher evicts cache entries whose source file changes on disk. It watches
// parent directories so that replace-by-rename installs are seen too.
type Watcher struct {
	fsw   *fsnotify.Watcher
	cache *Cache
	log   logger.Logger

	mu     sync.Mutex
	dirs   map[string]bool
	closed bool

	// onEvict is called after an event removed entries.
	onEvict func(path string, names []string)

	closeCh chan struct{}
	wg      sync.WaitGroup
}

func NewWatcher(cache *Cache, log logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	w := &Watcher{
		fsw:     fsw,
		cache:   cache,
		log:     log,
		dirs:    make(map[string]bool),
		closeCh: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Track starts watching the directory holding path.
func (w *Watcher) Track(path string) error {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fsnotify.ErrClosed
	}
	if w.dirs[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = true
	return nil
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	path, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}
	names := w.cache.EvictPath(path)
	if len(names) == 0 {
		return
	}
	w.log.Info("evicted changed terminfo entry", "path", path, "terminals", names, "op", ev.Op.String())
	if w.onEvict != nil {
		w.onEvict(path, names)
	}
}
