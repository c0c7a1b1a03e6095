// Package watch provides file system watching for course source
// documents, backing the re-render-on-change mode of the CLI.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// EventOp represents the type of file system operation.
type EventOp int

const (
	// OpCreate indicates a new file was created.
	OpCreate EventOp = iota
	// OpModify indicates an existing file was modified.
	OpModify
	// OpDelete indicates a file was deleted.
	OpDelete
)

// String returns a human-readable representation of the operation.
func (op EventOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// SourceType classifies a watched document.
type SourceType int

const (
	// TypeSchedule indicates a schedule document (*.yml, *.yaml, *.md).
	TypeSchedule SourceType = iota
	// TypeQuiz indicates a quiz document (*.json).
	TypeQuiz
)

// String returns a human-readable representation of the source type.
func (st SourceType) String() string {
	switch st {
	case TypeSchedule:
		return "schedule"
	case TypeQuiz:
		return "quiz"
	default:
		return "unknown"
	}
}

// Event represents a file system event for a course source document.
type Event struct {
	// Path is the path of the file that changed.
	Path string
	// Type classifies the document.
	Type SourceType
	// Op is the operation that occurred (create, modify, delete).
	Op EventOp
}

// Watcher watches a directory of course source documents for changes.
// It uses fsnotify for cross-platform file system event monitoring.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// New creates a new Watcher. It must be started with Start() before it
// will emit events.
func New() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher: watcher,
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching dir for changes to course source documents.
func (w *Watcher) Start(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}

	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	w.running = true
	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop stops watching for file system events and cleans up resources.
// It blocks until the event processing goroutine has exited.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	w.wg.Wait()

	close(w.events)
	close(w.errors)

	return nil
}

// Events returns the channel that emits Event notifications.
// This channel is closed when the watcher is stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel that emits error notifications.
// This channel is closed when the watcher is stopped.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// IsRunning returns true if the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if e, ok := convertEvent(event); ok {
				select {
				case w.events <- e:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

// convertEvent converts an fsnotify event to an Event. Returns false for
// events on files that are not course source documents, and for chmod
// and other uninteresting operations.
func convertEvent(event fsnotify.Event) (Event, bool) {
	sourceType, ok := classify(event.Name)
	if !ok {
		return Event{}, false
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpModify
	case event.Has(fsnotify.Remove):
		op = OpDelete
	case event.Has(fsnotify.Rename):
		// Treat rename as delete (the new name will trigger a create)
		op = OpDelete
	default:
		return Event{}, false
	}

	return Event{Path: event.Name, Type: sourceType, Op: op}, true
}

func classify(path string) (SourceType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml", ".md":
		return TypeSchedule, true
	case ".json":
		return TypeQuiz, true
	}
	return 0, false
}
