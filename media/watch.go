package media

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mpvremote/mpvremote/log"
)

// Op is the kind of change observed in the media root.
type Op string

const (
	Added    Op = "added"
	Removed  Op = "removed"
	Modified Op = "modified"
)

// Change describes one file change in the media root.
type Change struct {
	Name string `json:"name"`
	Op   Op     `json:"op"`
}

// Watch reports changes to files directly under dir until ctx is done.
// It watches the real filesystem.
func Watch(ctx context.Context, dir string, fn func(Change)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch media root: %w", err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if change, ok := toChange(event); ok {
					fn(change)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("media watcher error: %v", err)
			}
		}
	}()

	log.Infof("watching media root %s", dir)
	return nil
}

func toChange(event fsnotify.Event) (Change, bool) {
	name := filepath.Base(event.Name)

	switch {
	case event.Op&fsnotify.Create != 0:
		return Change{Name: name, Op: Added}, true
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return Change{Name: name, Op: Removed}, true
	case event.Op&fsnotify.Write != 0:
		return Change{Name: name, Op: Modified}, true
	default:
		return Change{}, false
	}
}
