package am

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
)

// FileWatcher watches a set of files (config, table) and calls back after
// they change. Parent directories are watched so that editors replacing a
// file by rename are still noticed.
type FileWatcher struct {
	files          map[string]bool
	watcher        *fsnotify.Watcher
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	fireMu         sync.Mutex // one batch of callbacks at a time
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	pending        map[string]bool
}

// ChangeCallback is called once per debounced batch with the changed files
type ChangeCallback func(changed []string) error

// NewFileWatcher creates a watcher for the given files
func NewFileWatcher(debounce time.Duration, paths ...string) (*FileWatcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	fw := &FileWatcher{
		files:          make(map[string]bool, len(paths)),
		watcher:        watcher,
		debouncePeriod: debounce,
		pending:        make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return fw, nil
}

// OnChange registers a callback
func (fw *FileWatcher) OnChange(callback ChangeCallback) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.callbacks = append(fw.callbacks, callback)
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go fw.watchLoop()
}

func (fw *FileWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handle(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("File watcher error", logger.FieldError, err)
		}
	}
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if isBackupFile(event.Name) {
		return
	}
	name, err := filepath.Abs(event.Name)
	if err != nil || !fw.files[name] {
		return
	}

	logger.Infow("File watcher detected change",
		logger.FieldFile, name,
		"op", event.Op.String())
	fw.scheduleReload(name)
}

// scheduleReload debounces rapid file changes and triggers the callbacks
func (fw *FileWatcher) scheduleReload(name string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.pending[name] = true
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.debouncePeriod, fw.fire)
}

// fire hands the pending batch to the callbacks. Batches never overlap:
// changes arriving while callbacks run are delivered in the next batch.
func (fw *FileWatcher) fire() {
	fw.fireMu.Lock()
	defer fw.fireMu.Unlock()

	fw.mu.Lock()
	changed := make([]string, 0, len(fw.pending))
	for name := range fw.pending {
		changed = append(changed, name)
	}
	fw.pending = make(map[string]bool)
	if len(changed) == 0 {
		// An earlier batch already took these changes
		fw.mu.Unlock()
		return
	}
	sort.Strings(changed)
	callbacks := make([]ChangeCallback, len(fw.callbacks))
	copy(callbacks, fw.callbacks)
	fw.mu.Unlock()

	for _, callback := range callbacks {
		if err := callback(changed); err != nil {
			// Keep calling the others
			logger.Warnw("File change callback error", logger.FieldError, err)
		}
	}
}

// Stop stops watching
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// isBackupFile reports whether path is a rotating backup written by Save
func isBackupFile(path string) bool {
	ext := filepath.Ext(path)
	return strings.HasPrefix(ext, ".back") && len(ext) == len(".back")+1
}
