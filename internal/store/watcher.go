package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches the preference file for changes made by other
// processes and reloads the store.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	store    *PreferenceStore
	filePath string
	changes  chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	running  bool
	closed   bool
}

// NewFileWatcher creates a new file watcher for the store's backing file.
func NewFileWatcher(store *PreferenceStore) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:  watcher,
		store:    store,
		filePath: store.Path(),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Changes delivers a value after each reload. Bursts are coalesced.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Start begins watching the file for changes.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return nil
	}
	if fw.closed {
		return fsnotify.ErrClosed
	}

	// Watch the directory containing the file; atomic renames replace the inode
	dir := filepath.Dir(fw.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		fw.closeLocked()
		return err
	}
	if err := fw.watcher.Add(dir); err != nil {
		fw.closeLocked()
		return err
	}

	fw.running = true
	go fw.watch()
	return nil
}

// watch is the main watch loop.
func (fw *FileWatcher) watch() {
	filename := filepath.Base(fw.filePath)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("preference file changed, reloading", "file", fw.filePath)
				if err := fw.store.Reload(); err != nil {
					slog.Warn("failed to reload preferences", "error", err)
					continue
				}
				select {
				case fw.changes <- struct{}{}:
				default:
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "error", err)

		case <-fw.done:
			return
		}
	}
}

// Stop stops the file watcher and releases it. It is safe to call after a
// failed Start.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		fw.running = false
		close(fw.done)
	}
	return fw.closeLocked()
}

// closeLocked releases the underlying watcher once. Callers hold fw.mu.
func (fw *FileWatcher) closeLocked() error {
	if fw.closed {
		return nil
	}
	fw.closed = true
	return fw.watcher.Close()
}
