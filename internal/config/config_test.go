package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testSettings = `base_url: https://canvas.example.edu
access_token: file-token
courses:
  valszam2:
    course_id: 28654
    dir: courses/valszam2
    local_default_dir: pdf
    canvas_default_dir: problems
    source: valszam2.yml
  analizis:
    course_id: 30111
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canvas.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeSettings(t, testSettings))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://canvas.example.edu" {
		t.Errorf("base url = %q", cfg.BaseURL)
	}
	if cfg.AccessToken != "file-token" {
		t.Errorf("access token = %q", cfg.AccessToken)
	}

	course, err := cfg.Course("valszam2")
	if err != nil {
		t.Fatalf("Course failed: %v", err)
	}
	if course.CourseID != 28654 || course.CanvasDefaultDir != "problems" || course.Source != "valszam2.yml" {
		t.Errorf("course = %+v", course)
	}
}

func TestLoadEnvTokenWins(t *testing.T) {
	t.Setenv("CANVAS_ACCESS_TOKEN", "env-token")
	cfg, err := Load(writeSettings(t, testSettings))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AccessToken != "env-token" {
		t.Errorf("access token = %q, want env override", cfg.AccessToken)
	}
}

func TestLoadMissingBaseURL(t *testing.T) {
	if _, err := Load(writeSettings(t, "courses: {}\n")); err == nil {
		t.Error("expected error for settings without base_url")
	}
}

func TestCourseLookup(t *testing.T) {
	cfg, err := Load(writeSettings(t, testSettings))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := cfg.Course("unknown"); err == nil {
		t.Error("expected error for an unconfigured course")
	}
	// Two courses configured, so the name cannot be omitted.
	if _, err := cfg.Course(""); err == nil {
		t.Error("expected error when the course name is ambiguous")
	}
}

func TestCourseDefaultWithSingleCourse(t *testing.T) {
	settings := `base_url: https://canvas.example.edu
courses:
  only:
    course_id: 1
`
	cfg, err := Load(writeSettings(t, settings))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	course, err := cfg.Course("")
	if err != nil {
		t.Fatalf("Course failed: %v", err)
	}
	if course.CourseID != 1 {
		t.Errorf("course = %+v", course)
	}
}
