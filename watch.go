package sharedir

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"tools.zach/dev/sharedir/internal/logger"
)

// ///////////////////////////////////////////////
// Watcher
// ///////////////////////////////////////////////

// Watcher monitors a shared-data directory for content changes so dev-mode
// hosts can reload data files edited in the checkout. It uses fsnotify with
// a stat-polling fallback when native notification is unavailable.
type Watcher struct {
	// dir is the shared-data directory being monitored.
	dir string
	// events delivers a signal each time the directory content changes.
	// Buffered to 1 so back-to-back edits coalesce.
	events chan struct{}
	// done is closed by [Watcher.Close] to stop the goroutines.
	done chan struct{}
	// mu guards fsw, which is handed off between the watch goroutine
	// (on fallback) and [Watcher.Close].
	mu sync.Mutex
	// fsw is the underlying fsnotify watcher; nil when polling.
	fsw *fsnotify.Watcher
	// once makes [Watcher.Close] idempotent.
	once sync.Once
	// polling is true after the watcher has fallen back to polling.
	polling atomic.Bool
	// pollInterval is the duration between directory scans in polling mode.
	pollInterval time.Duration
	// log receives fallback and error notices.
	log *slog.Logger
}

// Watch creates a Watcher for the given shared-data directory — typically
// the string form of a dev-mode [DirAccessor] result. A nil logger disables
// logging.
func Watch(dir string, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.Nop()
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("watch %s: not a watchable directory", dir)
	}

	w := &Watcher{
		dir:          dir,
		events:       make(chan struct{}, 1),
		done:         make(chan struct{}),
		pollInterval: 2 * time.Second,
		log:          log,
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.Info("fsnotify unavailable, falling back to polling", "error", err)
		w.polling.Store(true)
		go w.poll()
		return w, nil
	}

	if err := fsw.Add(dir); err != nil {
		log.Info("cannot watch directory, falling back to polling", "dir", dir, "error", err)
		fsw.Close()
		w.polling.Store(true)
		go w.poll()
		return w, nil
	}

	w.fsw = fsw
	go w.watch(fsw)
	return w, nil
}

// Events returns a channel that receives a signal when the directory
// content changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Polling reports whether the watcher is using polling instead of fsnotify.
func (w *Watcher) Polling() bool {
	return w.polling.Load()
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.fsw != nil {
			if closeErr := w.fsw.Close(); closeErr != nil {
				err = fmt.Errorf("closing fsnotify watcher: %w", closeErr)
			}
			w.fsw = nil
		}
	})
	return err
}

// dropNative closes and forgets the native watcher under the lock. Safe to
// race with [Watcher.Close]; whichever runs second finds fsw nil.
func (w *Watcher) dropNative() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
}

// ///////////////////////////////////////////////
// Loops
// ///////////////////////////////////////////////

// watch loops over fsnotify events, forwarding create/write/remove/rename
// notifications. On fsnotify errors it closes the native watcher and falls
// back to [Watcher.poll]. The loop reads its own fsw reference so the
// handoff to Close never races.
func (w *Watcher) watch(fsw *fsnotify.Watcher) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.notify()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Info("fsnotify error, switching to polling", "error", err)
			w.dropNative()
			w.polling.Store(true)
			go w.poll()
			return
		}
	}
}

// poll periodically fingerprints the directory and notifies when the
// fingerprint changes.
func (w *Watcher) poll() {
	last := w.fingerprint()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			fp := w.fingerprint()
			if fp != last {
				last = fp
				w.notify()
			}
		}
	}
}

// fingerprint summarizes the directory as entry count plus the latest
// modification time. Good enough to detect adds, removes, and edits.
func (w *Watcher) fingerprint() string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return "unreadable"
	}
	var latest time.Time
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return fmt.Sprintf("%d@%d", len(entries), latest.UnixNano())
}

// notify sends a single signal to the events channel. A pending signal makes
// the call a no-op, coalescing rapid successive changes.
func (w *Watcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
		// Signal already pending, skip
	}
}
