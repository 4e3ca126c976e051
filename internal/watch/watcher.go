// Package watch keeps the directory-mode file list fresh: while directory
// mode is active the configured input directory is monitored and a rescan is
// requested whenever its contents change. The manual refresh button remains;
// this just saves the user from pressing it.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"statdesk/internal/log"

	"github.com/fsnotify/fsnotify"
)

// settleDelay coalesces event bursts (a copy of many files into the
// directory) into a single rescan.
const settleDelay = 500 * time.Millisecond

// Watcher monitors one directory tree root for changes.
type Watcher struct {
	// OnChange is invoked on an internal goroutine after changes settle.
	// The front-end marshals the rescan onto its event loop.
	OnChange func()

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	dir       string
	stopChan  chan struct{}
	running   bool
}

// New creates a watcher. OnChange must be set before Start.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{fsWatcher: fsWatcher}, nil
}

// SetDirectory points the watcher at dir, replacing any previous target.
// A missing or empty dir simply leaves nothing watched.
func (w *Watcher) SetDirectory(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.Debugf("removing watch on %s: %v", w.dir, err)
		}
		w.dir = ""
	}

	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	log.Infof("watching directory %s", dir)
	return nil
}

// Start begins delivering change notifications.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	stop := w.stopChan
	w.mu.Unlock()

	go w.loop(stop)
	return nil
}

// Stop halts notifications. The watcher can be started again.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stopChan)
	w.running = false
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.Stop()
	return w.fsWatcher.Close()
}

// Running reports whether the watcher is delivering notifications.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) loop(stop <-chan struct{}) {
	var settle *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debugf("fs event: %s", event)
			if settle == nil {
				settle = time.NewTimer(settleDelay)
				settleC = settle.C
			} else {
				if !settle.Stop() {
					select {
					case <-settle.C:
					default:
					}
				}
				settle.Reset(settleDelay)
			}
		case <-settleC:
			settle = nil
			settleC = nil
			if w.OnChange != nil {
				w.OnChange()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watcher error: %v", err)
		case <-stop:
			if settle != nil {
				settle.Stop()
			}
			return
		}
	}
}
