package snapshot

import (
	"context"
	"reflect"
	"testing"

	"github.com/prokaj/canvasctl/internal/canvas"
	"github.com/prokaj/canvasctl/internal/canvastest"
)

func TestFiles(t *testing.T) {
	api := &canvastest.FakeCourse{
		Folders: []canvas.Folder{
			{ID: 274838, Name: "problems", FullName: "course files/problems", FilesCount: 1},
			{ID: 274839, Name: "empty", FullName: "course files/empty", FilesCount: 0},
		},
		FolderFiles: map[int][]canvas.File{
			274838: {{ID: 1041047, FolderID: 274838, DisplayName: "mathjax.png"}},
		},
	}

	data, err := Files(context.Background(), api)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	want := map[string]any{"/problems/mathjax.png": 1041047}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("Files = %v, want %v", data, want)
	}

	// The empty folder must not have cost a listing call.
	if api.FolderFileCalls[274839] != 0 {
		t.Errorf("listed files of an empty folder %d times", api.FolderFileCalls[274839])
	}
}

func TestFilesRootFolder(t *testing.T) {
	api := &canvastest.FakeCourse{
		Folders: []canvas.Folder{
			{ID: 1, Name: "course files", FullName: "course files", FilesCount: 1},
		},
		FolderFiles: map[int][]canvas.File{
			1: {{ID: 7, FolderID: 1, DisplayName: "syllabus.pdf"}},
		},
	}

	data, err := Files(context.Background(), api)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	want := map[string]any{"/syllabus.pdf": 7}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("Files = %v, want %v", data, want)
	}
}

func TestAssignments(t *testing.T) {
	api := &canvastest.FakeCourse{
		Assignments: []canvas.Assignment{
			{ID: 13, Name: "1. week", AssignmentGroupID: 15},
			{ID: 14, Name: "2. week", AssignmentGroupID: 15},
			{ID: 30, Name: "midterm", AssignmentGroupID: 16},
		},
		Groups: map[int]canvas.AssignmentGroup{
			15: {ID: 15, Name: "Homework"},
			16: {ID: 16, Name: "Exams"},
		},
	}

	data, err := Assignments(context.Background(), api)
	if err != nil {
		t.Fatalf("Assignments failed: %v", err)
	}
	want := map[string]any{
		"Homework/1. week": 13,
		"Homework/2. week": 14,
		"Exams/midterm":    30,
	}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("Assignments = %v, want %v", data, want)
	}

	// Two assignments share group 15; its name must be fetched only once.
	if api.GroupCalls[15] != 1 {
		t.Errorf("group 15 looked up %d times, want 1", api.GroupCalls[15])
	}
	if api.GroupCalls[16] != 1 {
		t.Errorf("group 16 looked up %d times, want 1", api.GroupCalls[16])
	}
}

func TestQuizzes(t *testing.T) {
	api := &canvastest.FakeCourse{
		Quizzes: []canvas.Quiz{{ID: 12, Title: "Exam"}},
	}

	data, err := Quizzes(context.Background(), api)
	if err != nil {
		t.Fatalf("Quizzes failed: %v", err)
	}
	want := map[string]any{"Exam": 12}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("Quizzes = %v, want %v", data, want)
	}
}
