package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/quietpress/quill/pkg/core"
)

// Watch observes the content tree and emits a debounced core.Event per
// change matching the pattern until ctx is cancelled.
func (s *Source) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)

	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return w.Stop(context.Background())
	})

	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	source    *Source
	pattern   string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(source *Source, pattern string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("content-watcher"),
		source:     source,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.source.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.source.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.source.config.Logger != nil {
				w.source.config.Logger.Error("watcher panic",
					"error", panicErr,
					"stack", string(debug.Stack()),
				)
			}
		}
	}()
	defer w.source.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.loop(ctx)

	// Drain the debouncer before the channel's consumer goes away.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.source.config.Logger != nil {
				w.source.config.Logger.Error("fsnotify error", "error", wErr)
			}
			if w.source.config.ErrorHandler != nil {
				w.source.config.ErrorHandler(wErr)
			}
		}
	}
}

func (w *watchWorker) handleEvent(ctx context.Context, event fsnotify.Event) {
	if w.source.config.Logger != nil {
		w.source.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
	}

	// New directories must be added to the watch set before anything
	// inside them can be seen.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
			return
		}
	}

	if w.source.shouldIgnore(event, w.pattern) {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	relPath, err := filepath.Rel(w.source.Dir, event.Name)
	if err != nil {
		return
	}

	w.sendEvent(ctx, core.Event{
		Type:      eType,
		ID:        idFor(relPath),
		Timestamp: time.Now().Unix(),
	})
}

// sendEvent enqueues an event via the debouncer, protecting against channel
// closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// The events channel may be closed while a timer is in flight.
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// recursiveAdd registers the content root and all its subdirectories,
// skipping dot-directories.
func (s *Source) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != s.Dir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnore filters temp files and paths outside the watch pattern.
func (s *Source) shouldIgnore(event fsnotify.Event, pattern string) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, TempFilePrefix) || strings.HasPrefix(base, ".") {
		return true
	}

	relPath, err := filepath.Rel(s.Dir, event.Name)
	if err != nil {
		return true
	}
	relPath = filepath.ToSlash(relPath)

	if !s.matches(relPath) {
		return true
	}

	if pattern != "" {
		if ok, _ := doublestar.Match(pattern, relPath); !ok {
			return true
		}
	}
	return false
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}
