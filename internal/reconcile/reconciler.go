// Package reconcile merges fresh remote snapshots into the local cache.
//
// Each namespace has a registered updater that fetches the authoritative
// path->id mapping from the remote course. One namespace's failure never
// aborts the others: the error is logged and that namespace keeps its prior
// cached content. Reconciling requires an active cache scope; calling it
// without one is a usage error, not a silent no-op.
package reconcile

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/prokaj/canvasctl/internal/canvas"
	"github.com/prokaj/canvasctl/internal/snapshot"
	"github.com/prokaj/canvasctl/internal/store"
)

// UpdaterFunc fetches the current remote mapping for one namespace.
type UpdaterFunc func(ctx context.Context, api canvas.CourseAPI) (map[string]any, error)

// Reconciler holds the per-namespace updaters.
type Reconciler struct {
	updaters map[string]UpdaterFunc
	logger   *log.Logger
}

// New creates a Reconciler with the default updaters (the snapshot builders)
// registered for every namespace.
//
// If logger is nil, a default logger writing to stderr is used.
func New(logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.New(os.Stderr, "[reconcile] ", log.LstdFlags)
	}
	return &Reconciler{
		updaters: map[string]UpdaterFunc{
			store.NamespaceFiles:       snapshot.Files,
			store.NamespaceAssignments: snapshot.Assignments,
			store.NamespaceQuizzes:     snapshot.Quizzes,
		},
		logger: logger,
	}
}

// Register installs (or replaces) the updater for a namespace.
func (r *Reconciler) Register(namespace string, fn UpdaterFunc) {
	r.updaters[namespace] = fn
}

// Reconcile refreshes the named namespaces of the scope's cache from the
// remote course, replacing each namespace's content wholesale. With no
// namespaces given, all of them are refreshed.
//
// A missing updater or a failing one is logged and skipped, leaving that
// namespace's cached content untouched. Only a missing scope is fatal.
func (r *Reconciler) Reconcile(ctx context.Context, scope *store.Scope, api canvas.CourseAPI, namespaces ...string) error {
	cache, err := scope.Cache()
	if err != nil {
		return err
	}
	if len(namespaces) == 0 {
		namespaces = store.Namespaces
	}

	for _, name := range namespaces {
		member, err := cache.Member(name)
		if err != nil {
			return err
		}

		updater, ok := r.updaters[name]
		if !ok {
			r.logger.Printf("WARNING: no updater for %s, skipping", name)
			continue
		}

		data, err := updater(ctx, api)
		if err != nil {
			r.logger.Printf("WARNING: failed to update %s: %v", name, err)
			continue
		}
		if data == nil {
			r.logger.Printf("WARNING: updater of %s returned nothing, no update is done", name)
			continue
		}

		if err := member.Load(data); err != nil {
			return fmt.Errorf("failed to load %s snapshot: %w", name, err)
		}
		r.logger.Printf("Reconciled %s: %d entries", name, member.Len())
	}
	return nil
}
