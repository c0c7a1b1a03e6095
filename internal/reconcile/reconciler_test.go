package reconcile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/prokaj/canvasctl/internal/canvas"
	"github.com/prokaj/canvasctl/internal/canvastest"
	"github.com/prokaj/canvasctl/internal/store"
)

// enterScope activates a scope over a temp dir and closes it on cleanup.
func enterScope(t *testing.T) *store.Scope {
	t.Helper()

	scope, err := store.Enter(t.TempDir())
	if err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	t.Cleanup(func() {
		if err := scope.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return scope
}

func fixtureCourse() *canvastest.FakeCourse {
	return &canvastest.FakeCourse{
		Folders: []canvas.Folder{
			{ID: 274838, Name: "problems", FullName: "course files/problems", FilesCount: 1},
		},
		FolderFiles: map[int][]canvas.File{
			274838: {{ID: 1041047, DisplayName: "mathjax.png"}},
		},
		Assignments: []canvas.Assignment{{ID: 13, Name: "1. week", AssignmentGroupID: 15}},
		Groups:      map[int]canvas.AssignmentGroup{15: {ID: 15, Name: "Homework"}},
		Quizzes:     []canvas.Quiz{{ID: 12, Title: "Exam"}},
	}
}

func TestReconcileAllNamespaces(t *testing.T) {
	scope := enterScope(t)
	api := fixtureCourse()

	r := New(log.New(&bytes.Buffer{}, "", 0))
	if err := r.Reconcile(context.Background(), scope, api); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	cache, err := scope.Cache()
	if err != nil {
		t.Fatalf("Cache failed: %v", err)
	}
	tests := []struct {
		namespace string
		path      string
		want      int
	}{
		{store.NamespaceFiles, "/problems/mathjax.png", 1041047},
		{store.NamespaceAssignments, "Homework/1. week", 13},
		{store.NamespaceQuizzes, "Exam", 12},
	}
	for _, tt := range tests {
		got, err := cache.Resolve(tt.namespace, tt.path)
		if err != nil {
			t.Errorf("Resolve(%s, %s) failed: %v", tt.namespace, tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%s, %s) = %d, want %d", tt.namespace, tt.path, got, tt.want)
		}
	}
}

func TestReconcileSingleNamespaceLeavesOthers(t *testing.T) {
	scope := enterScope(t)
	api := fixtureCourse()

	cache, err := scope.Cache()
	if err != nil {
		t.Fatalf("Cache failed: %v", err)
	}
	if err := cache.Update(map[string]map[string]any{
		store.NamespaceQuizzes: {"Old quiz": 99},
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	r := New(log.New(&bytes.Buffer{}, "", 0))
	if err := r.Reconcile(context.Background(), scope, api, store.NamespaceFiles); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if _, err := cache.Resolve(store.NamespaceFiles, "/problems/mathjax.png"); err != nil {
		t.Errorf("files namespace not updated: %v", err)
	}
	// quizzes was not requested, so the stale entry survives.
	if id, err := cache.Resolve(store.NamespaceQuizzes, "Old quiz"); err != nil || id != 99 {
		t.Errorf("quizzes namespace should be untouched: %d, %v", id, err)
	}
}

func TestReconcileFailingUpdaterSkipsNamespaceOnly(t *testing.T) {
	scope := enterScope(t)
	api := fixtureCourse()

	var logBuf bytes.Buffer
	r := New(log.New(&logBuf, "", 0))
	r.Register(store.NamespaceQuizzes, func(ctx context.Context, api canvas.CourseAPI) (map[string]any, error) {
		return nil, fmt.Errorf("remote said no")
	})

	if err := r.Reconcile(context.Background(), scope, api); err != nil {
		t.Fatalf("Reconcile must not fail for a failing updater: %v", err)
	}

	cache, err := scope.Cache()
	if err != nil {
		t.Fatalf("Cache failed: %v", err)
	}
	if _, err := cache.Resolve(store.NamespaceFiles, "/problems/mathjax.png"); err != nil {
		t.Errorf("files namespace not updated: %v", err)
	}
	if _, err := cache.Resolve(store.NamespaceAssignments, "Homework/1. week"); err != nil {
		t.Errorf("assignments namespace not updated: %v", err)
	}
	if _, err := cache.Resolve(store.NamespaceQuizzes, "Exam"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("quizzes namespace should be skipped, got %v", err)
	}

	logged := logBuf.String()
	if !strings.Contains(logged, "quizzes") || !strings.Contains(logged, "remote said no") {
		t.Errorf("log should name the skipped namespace and error, got %q", logged)
	}
}

func TestReconcileNilUpdaterResult(t *testing.T) {
	scope := enterScope(t)

	var logBuf bytes.Buffer
	r := New(log.New(&logBuf, "", 0))
	r.Register(store.NamespaceFiles, func(ctx context.Context, api canvas.CourseAPI) (map[string]any, error) {
		return nil, nil
	})

	err := r.Reconcile(context.Background(), scope, fixtureCourse(), store.NamespaceFiles)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if !strings.Contains(logBuf.String(), "no update is done") {
		t.Errorf("nil updater result should be logged, got %q", logBuf.String())
	}
}

func TestReconcileWithoutScope(t *testing.T) {
	r := New(log.New(&bytes.Buffer{}, "", 0))

	err := r.Reconcile(context.Background(), nil, fixtureCourse())
	if !errors.Is(err, store.ErrNotActive) {
		t.Errorf("expected ErrNotActive, got %v", err)
	}
}
