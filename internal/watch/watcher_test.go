package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if w.IsRunning() {
		t.Error("Newly created watcher should not be running")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := w.Start(t.TempDir()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("Watcher should be running after Start()")
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if w.IsRunning() {
		t.Error("Watcher should not be running after Stop()")
	}
}

func TestWatcher_StartAlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(dir); err != nil {
		t.Fatalf("First Start() failed: %v", err)
	}
	if err := w.Start(dir); err == nil {
		t.Error("Second Start() should fail when watcher is already running")
	}
}

func TestWatcher_ScheduleFileCreated(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(dir); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	path := filepath.Join(dir, "course.yml")
	if err := os.WriteFile(path, []byte("first_section: 2022-09-15\n"), 0644); err != nil {
		t.Fatalf("Failed to write course file: %v", err)
	}

	select {
	case event := <-w.Events():
		if event.Type != TypeSchedule {
			t.Errorf("Expected TypeSchedule, got %v", event.Type)
		}
		if event.Op != OpCreate {
			t.Errorf("Expected OpCreate, got %v", event.Op)
		}
		if filepath.Base(event.Path) != "course.yml" {
			t.Errorf("Expected course.yml, got %s", filepath.Base(event.Path))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for create event")
	}
}

func TestWatcher_QuizFileModified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exam.json")
	if err := os.WriteFile(path, []byte(`[]`), 0644); err != nil {
		t.Fatalf("Failed to write quiz file: %v", err)
	}

	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(dir); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Give watcher time to stabilize
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`[{"type":"quiz"}]`), 0644); err != nil {
		t.Fatalf("Failed to update quiz file: %v", err)
	}

	select {
	case event := <-w.Events():
		if event.Type != TypeQuiz {
			t.Errorf("Expected TypeQuiz, got %v", event.Type)
		}
		if event.Op != OpModify {
			t.Errorf("Expected OpModify, got %v", event.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for modify event")
	}
}

func TestWatcher_FileDeleted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "course.yaml")
	if err := os.WriteFile(path, []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write course file: %v", err)
	}

	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(dir); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to delete course file: %v", err)
	}

	select {
	case event := <-w.Events():
		if event.Op != OpDelete {
			t.Errorf("Expected OpDelete, got %v", event.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for delete event")
	}
}

func TestWatcher_UnrelatedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(dir); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("not a source document"), 0644); err != nil {
		t.Fatalf("Failed to write txt file: %v", err)
	}

	select {
	case event := <-w.Events():
		t.Errorf("Should not receive event for unrelated file, got: %+v", event)
	case <-time.After(500 * time.Millisecond):
		// Expected - no event
	}
}

func TestWatcher_StopClosesChannels(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := w.Start(t.TempDir()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	events := w.Events()
	errs := w.Errors()

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}

	select {
	case _, ok := <-events:
		if ok {
			t.Error("Events channel should be closed after Stop()")
		}
	case <-time.After(1 * time.Second):
		t.Error("Timeout verifying events channel closure")
	}

	select {
	case _, ok := <-errs:
		if ok {
			t.Error("Errors channel should be closed after Stop()")
		}
	case <-time.After(1 * time.Second):
		t.Error("Timeout verifying errors channel closure")
	}
}

func TestWatcher_StartNonexistentDirectory(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start("/nonexistent/courses"); err == nil {
		t.Error("Start() should fail with a nonexistent directory")
	}
}

func TestEventOp_String(t *testing.T) {
	tests := []struct {
		op       EventOp
		expected string
	}{
		{OpCreate, "create"},
		{OpModify, "modify"},
		{OpDelete, "delete"},
		{EventOp(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.expected {
			t.Errorf("EventOp(%d).String() = %q, want %q", tt.op, got, tt.expected)
		}
	}
}

func TestSourceType_String(t *testing.T) {
	tests := []struct {
		st       SourceType
		expected string
	}{
		{TypeSchedule, "schedule"},
		{TypeQuiz, "quiz"},
		{SourceType(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.expected {
			t.Errorf("SourceType(%d).String() = %q, want %q", tt.st, got, tt.expected)
		}
	}
}
