package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pdfsmaller/internal/config"
	"pdfsmaller/internal/log"
	"pdfsmaller/internal/uploader"
	"pdfsmaller/pkg/types"
)

// settleDelay is how long a file must stay quiet after its last write
// before it is handed to the uploader. Copies into the drop directory
// produce a burst of write events; the delay lets the burst finish.
const settleDelay = 500 * time.Millisecond

// Status describes the daemon for status displays.
type Status struct {
	Running         bool
	DropDirectories []string
	LastDrop        time.Time
	FilesHandled    int
}

// Daemon bridges drop directories to an uploader: every settled file
// arrival becomes a drop gesture. The uploader's own pipeline decides
// acceptance.
type Daemon struct {
	cfg      *config.Config
	up       *uploader.Uploader
	watcher  *Watcher
	settle   time.Duration
	callback func(path string, accepted bool)

	mutex        sync.Mutex
	pending      map[string]*time.Timer
	handled      int
	lastActivity time.Time
	running      bool
	cancel       context.CancelFunc
	done         chan struct{}
}

// NewDaemon creates a daemon feeding up from the configured drop directory.
func NewDaemon(cfg *config.Config, up *uploader.Uploader) (*Daemon, error) {
	watcher, err := New()
	if err != nil {
		return nil, fmt.Errorf("failed to create drop watcher: %w", err)
	}

	return &Daemon{
		cfg:     cfg,
		up:      up,
		watcher: watcher,
		settle:  settleDelay,
		pending: map[string]*time.Timer{},
	}, nil
}

// SetSettleDelay overrides the quiet period before a file is forwarded.
func (d *Daemon) SetSettleDelay(delay time.Duration) {
	d.mutex.Lock()
	d.settle = delay
	d.mutex.Unlock()
}

// SetCallback registers a hook invoked after each forwarded file.
func (d *Daemon) SetCallback(fn func(path string, accepted bool)) {
	d.mutex.Lock()
	d.callback = fn
	d.mutex.Unlock()
}

// Start begins watching the configured drop directory and forwarding
// settled files.
func (d *Daemon) Start() error {
	d.mutex.Lock()
	if d.running {
		d.mutex.Unlock()
		return fmt.Errorf("daemon already running")
	}

	dir := d.cfg.Watch.DropDir
	if dir == "" {
		d.mutex.Unlock()
		return fmt.Errorf("no drop directory configured")
	}

	if err := d.watcher.AddDirectory(dir); err != nil {
		d.mutex.Unlock()
		return err
	}
	if err := d.watcher.Start(); err != nil {
		d.mutex.Unlock()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true
	d.mutex.Unlock()

	go d.loop(ctx)

	log.LogWithFields(log.F("directory", dir)).Info("Drop daemon started")
	return nil
}

// Stop halts watching. Files still settling are abandoned.
func (d *Daemon) Stop() {
	d.mutex.Lock()
	if !d.running {
		d.mutex.Unlock()
		return
	}
	d.running = false
	cancel := d.cancel
	done := d.done
	for path, timer := range d.pending {
		timer.Stop()
		delete(d.pending, path)
	}
	d.mutex.Unlock()

	cancel()
	d.watcher.Stop()
	<-done

	log.Info("Drop daemon stopped")
}

// Status returns a snapshot for status displays.
func (d *Daemon) Status() Status {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return Status{
		Running:         d.running,
		DropDirectories: d.watcher.Directories(),
		LastDrop:        d.lastActivity,
		FilesHandled:    d.handled,
	}
}

func (d *Daemon) loop(ctx context.Context) {
	defer close(d.done)

	for {
		select {
		case arrival, ok := <-d.watcher.Arrivals():
			if !ok {
				return
			}
			d.schedule(ctx, arrival.Path)
		case <-ctx.Done():
			return
		}
	}
}

// schedule arms (or re-arms) the settle timer for path. Each new write
// pushes the hand-off back.
func (d *Daemon) schedule(ctx context.Context, path string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if !d.running {
		return
	}
	if timer, ok := d.pending[path]; ok {
		timer.Stop()
	}
	d.pending[path] = time.AfterFunc(d.settle, func() {
		d.forward(ctx, path)
	})
}

func (d *Daemon) forward(ctx context.Context, path string) {
	d.mutex.Lock()
	delete(d.pending, path)
	running := d.running
	cb := d.callback
	d.mutex.Unlock()

	if !running || ctx.Err() != nil {
		return
	}

	ref, err := types.FileRefFromPath(path)
	if err != nil {
		log.LogWithFields(log.F("file", path), log.F("error", err)).Warn("Dropped file vanished before hand-off")
		return
	}

	accepted := d.up.Drop(ctx, []*types.FileRef{ref})

	d.mutex.Lock()
	d.handled++
	d.lastActivity = time.Now()
	d.mutex.Unlock()

	log.LogWithFields(log.F("file", path), log.F("accepted", accepted)).Info("Forwarded dropped file")
	if cb != nil {
		cb(path, accepted)
	}
}
