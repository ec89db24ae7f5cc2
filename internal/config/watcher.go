package config

import (
	"os"
	"time"
)

// Watcher polls the config file for changes and triggers a callback when a
// newer version is written. This lets edits apply without restarting the app.
type Watcher struct {
	path          string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onChange      func()
}

// NewWatcher creates a watcher for the given config file. The file may not
// exist yet; its later creation counts as a change.
func NewWatcher(path string, checkInterval time.Duration) *Watcher {
	w := &Watcher{
		path:          path,
		checkInterval: checkInterval,
		stopCh:        make(chan struct{}),
	}
	if info, err := os.Stat(path); err == nil {
		w.baseline = info.ModTime()
	}
	return w
}

// OnChange sets the callback to invoke when the file changes. The callback
// is called from a background goroutine - use appropriate synchronization
// if updating UI.
func (w *Watcher) OnChange(callback func()) {
	w.onChange = callback
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	// Create a fresh stop channel in case we're restarting
	w.stopCh = make(chan struct{})
	go w.watchLoop()
}

// Stop stops the watcher goroutine.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

// watchLoop periodically checks if the file has been modified.
func (w *Watcher) watchLoop() {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.checkForUpdate() {
				w.ResetBaseline()
				if w.onChange != nil {
					w.onChange()
				}
			}
		}
	}
}

// checkForUpdate returns true if the file has been modified since the baseline.
func (w *Watcher) checkForUpdate() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	return info.ModTime().After(w.baseline)
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// ResetBaseline updates the baseline timestamp to the file's current mod time.
func (w *Watcher) ResetBaseline() {
	if info, err := os.Stat(w.path); err == nil {
		w.baseline = info.ModTime()
	}
}
