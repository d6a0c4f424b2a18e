package resource

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the properties file when it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch reloads the last file passed to Init whenever it is written or replaced, then
// calls onReload with the reload result. The directory is watched so editors that
// replace the file by rename are still seen.
func Watch(onReload func(err error)) (*Watcher, error) {
	mu.RLock()
	path := loadedPath
	mu.RUnlock()
	if path == "" {
		return nil, errors.New("properties not loaded")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fail to create properties watcher: %w", err)
	}

	w := &Watcher{watcher: watcher, done: make(chan struct{})}
	target := filepath.Clean(path)

	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					err := Init(path)
					if onReload != nil {
						onReload(err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onReload != nil {
					onReload(fmt.Errorf("properties watcher: %w", err))
				}
			}
		}
	}()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		<-w.done
		return nil, fmt.Errorf("fail to watch properties %s: %w", path, err)
	}
	return w, nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
