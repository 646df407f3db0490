package fs

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/pilha/pkg/core"
)

// Watch emits an event each time the file backing stack is created, written
// or removed. The channel is closed once ctx is done.
func (r *Repository) Watch(ctx context.Context, stack string) (<-chan core.Event, error) {
	if err := validateName(stack); err != nil {
		return nil, err
	}

	dir := filepath.Dir(filepath.Join(r.Path, filepath.FromSlash(stack)))
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("cannot watch stack %s: %w", stack, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 16)
	r.addWatcher(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.addWatcher(-1)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if r.config.Logger != nil {
					r.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
				}
				e, ok := r.stackEvent(stack, event)
				if !ok {
					continue
				}
				select {
				case events <- e:
				case <-ctx.Done():
					return nil
				}

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				r.handleWatchError(wErr)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		r.handleWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

// stackEvent maps a filesystem event to a stack event, dropping events for
// other files (including temp files from atomic writes).
func (r *Repository) stackEvent(stack string, event fsnotify.Event) (core.Event, bool) {
	base := filepath.Base(event.Name)
	ext := filepath.Ext(base)
	if _, ok := r.serializers[ext]; !ok {
		return core.Event{}, false
	}
	if strings.TrimSuffix(base, ext) != path.Base(stack) {
		return core.Event{}, false
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{Type: eType, Stack: stack, Timestamp: time.Now()}, true
}

func (r *Repository) handleWatchError(err error) {
	if r.config.Logger != nil {
		r.config.Logger.Error("watcher error", "error", err)
	}
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}

func (r *Repository) addWatcher(delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watchers += delta
}
