// Package watch turns filesystem drop directories into an intake source:
// files appearing under a watched directory are treated like a drag-and-drop
// gesture and fed to the uploader.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"pdfsmaller/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Arrival is one file appearing or changing in a watched directory.
type Arrival struct {
	Path      string
	Info      os.FileInfo
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors drop directories with fsnotify and publishes file
// arrivals. Directory events and vanished files are filtered out.
type Watcher struct {
	directories []string
	arrivals    chan Arrival
	stopChan    chan struct{}
	done        chan struct{}
	fsWatcher   *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a watcher with no directories.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		arrivals:  make(chan Arrival, 10),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// AddDirectory registers a drop directory. The path must exist and be a
// directory.
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()

	log.LogWithFields(log.F("directory", dir)).Info("Watching drop directory")
	return nil
}

// Arrivals returns the channel delivering file arrivals.
func (w *Watcher) Arrivals() <-chan Arrival {
	return w.arrivals
}

// Start begins delivering arrivals. Only create and write events become
// arrivals; anything that cannot be stat'ed by the time the event is seen
// is skipped.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	w.mutex.Unlock()

	go func() {
		// The event goroutine owns the arrival channel; closing it here
		// guarantees no send can race a close from Stop.
		defer close(w.done)
		defer close(w.arrivals)
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
					info, err := os.Stat(event.Name)
					if err != nil {
						if !os.IsNotExist(err) {
							log.LogWithFields(log.F("file", event.Name), log.F("error", err)).Error("Error stating file")
						}
						continue
					}
					if info.IsDir() {
						continue
					}

					arrival := Arrival{
						Path:      event.Name,
						Info:      info,
						Timestamp: time.Now(),
						Op:        event.Op,
					}

					select {
					case w.arrivals <- arrival:
					default:
						log.LogWithFields(log.F("file", event.Name)).Warn("Arrival channel is full, dropped event")
					}
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	log.Info("Watcher started")
	return nil
}

// Stop halts delivery, waits for the event goroutine to exit, then returns.
// The arrival channel is closed by the goroutine itself.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	done := w.done
	close(w.stopChan)
	w.mutex.Unlock()

	<-done
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	log.Info("Watcher stopped")
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the watched directory list.
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	out := make([]string, len(w.directories))
	copy(out, w.directories)
	return out
}
