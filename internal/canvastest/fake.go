// Package canvastest provides an in-memory CourseAPI implementation for
// tests of the layers built on the remote-course capability.
package canvastest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prokaj/canvasctl/internal/canvas"
)

// FakeCourse implements canvas.CourseAPI from fixed fixture data and
// records calls and created objects for assertions.
type FakeCourse struct {
	Folders     []canvas.Folder
	FolderFiles map[int][]canvas.File
	Assignments []canvas.Assignment
	Groups      map[int]canvas.AssignmentGroup
	Quizzes     []canvas.Quiz
	Students    []canvas.Enrollment

	// Err, when set, is returned by every listing method.
	Err error

	// Call counters keyed by id.
	FolderFileCalls map[int]int
	GroupCalls      map[int]int

	// Records of mutating calls.
	CreatedAssignments []canvas.NewAssignment
	EditedAssignments  map[int]canvas.NewAssignment
	DeletedAssignments []int
	CreatedQuizzes     []canvas.NewQuiz
	EditedQuizzes      map[int]canvas.NewQuiz
	CreatedGroups      []canvas.NewQuestionGroup
	CreatedQuestions   []canvas.NewQuestion
	CreatedFolders     []canvas.Folder
	Uploaded           map[string][]byte

	FrontPageTitle string
	FrontPageBody  string

	nextID int
}

var _ canvas.CourseAPI = (*FakeCourse)(nil)

func (f *FakeCourse) id() int {
	f.nextID++
	return 1000 + f.nextID
}

func (f *FakeCourse) BaseURL() string { return "https://canvas.example.edu" }
func (f *FakeCourse) CourseID() int   { return 28654 }

func (f *FakeCourse) ListFolders(ctx context.Context) ([]canvas.Folder, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Folders, nil
}

func (f *FakeCourse) ListFolderFiles(ctx context.Context, folderID int) ([]canvas.File, error) {
	if f.FolderFileCalls == nil {
		f.FolderFileCalls = make(map[int]int)
	}
	f.FolderFileCalls[folderID]++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.FolderFiles[folderID], nil
}

func (f *FakeCourse) ResolveFolderPath(ctx context.Context, path string) ([]canvas.Folder, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	want := strings.Trim(path, "/")
	var chain []canvas.Folder
	for _, folder := range f.Folders {
		stripped := strings.TrimPrefix(folder.FullName, "course files")
		if strings.Trim(stripped, "/") == want || folder.FullName == want {
			chain = append(chain, folder)
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("GET folders/by_path/%s failed with status 404: not found", path)
	}
	return chain, nil
}

func (f *FakeCourse) CreateFolder(ctx context.Context, name, parentPath string) (*canvas.Folder, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	folder := canvas.Folder{
		ID:       f.id(),
		Name:     name,
		FullName: strings.TrimRight("course files/"+strings.Trim(parentPath, "/"), "/") + "/" + name,
	}
	f.Folders = append(f.Folders, folder)
	f.CreatedFolders = append(f.CreatedFolders, folder)
	return &folder, nil
}

func (f *FakeCourse) UploadFile(ctx context.Context, folderID int, name string, size int64, r io.Reader, overwrite bool) (*canvas.File, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if f.Uploaded == nil {
		f.Uploaded = make(map[string][]byte)
	}
	f.Uploaded[name] = content
	file := canvas.File{ID: f.id(), FolderID: folderID, DisplayName: name}
	if f.FolderFiles == nil {
		f.FolderFiles = make(map[int][]canvas.File)
	}
	f.FolderFiles[folderID] = append(f.FolderFiles[folderID], file)
	return &file, nil
}

func (f *FakeCourse) ListAssignments(ctx context.Context, searchTerm string) ([]canvas.Assignment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if searchTerm == "" {
		return f.Assignments, nil
	}
	var matched []canvas.Assignment
	for _, a := range f.Assignments {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(searchTerm)) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (f *FakeCourse) GetAssignmentGroup(ctx context.Context, groupID int) (*canvas.AssignmentGroup, error) {
	if f.GroupCalls == nil {
		f.GroupCalls = make(map[int]int)
	}
	f.GroupCalls[groupID]++
	if f.Err != nil {
		return nil, f.Err
	}
	group, ok := f.Groups[groupID]
	if !ok {
		return nil, fmt.Errorf("GET assignment_groups/%d failed with status 404: not found", groupID)
	}
	return &group, nil
}

func (f *FakeCourse) CreateAssignment(ctx context.Context, assignment canvas.NewAssignment) (*canvas.Assignment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CreatedAssignments = append(f.CreatedAssignments, assignment)
	created := canvas.Assignment{ID: f.id(), Name: assignment.Name, AssignmentGroupID: assignment.AssignmentGroupID}
	f.Assignments = append(f.Assignments, created)
	return &created, nil
}

func (f *FakeCourse) EditAssignment(ctx context.Context, id int, changes canvas.NewAssignment) (*canvas.Assignment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.EditedAssignments == nil {
		f.EditedAssignments = make(map[int]canvas.NewAssignment)
	}
	f.EditedAssignments[id] = changes
	return &canvas.Assignment{ID: id, Name: changes.Name}, nil
}

func (f *FakeCourse) DeleteAssignment(ctx context.Context, id int) error {
	if f.Err != nil {
		return f.Err
	}
	f.DeletedAssignments = append(f.DeletedAssignments, id)
	return nil
}

func (f *FakeCourse) ListQuizzes(ctx context.Context) ([]canvas.Quiz, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Quizzes, nil
}

func (f *FakeCourse) CreateQuiz(ctx context.Context, quiz canvas.NewQuiz) (*canvas.Quiz, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CreatedQuizzes = append(f.CreatedQuizzes, quiz)
	created := canvas.Quiz{ID: f.id(), Title: quiz.Title}
	f.Quizzes = append(f.Quizzes, created)
	return &created, nil
}

func (f *FakeCourse) EditQuiz(ctx context.Context, id int, changes canvas.NewQuiz) (*canvas.Quiz, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.EditedQuizzes == nil {
		f.EditedQuizzes = make(map[int]canvas.NewQuiz)
	}
	f.EditedQuizzes[id] = changes
	return &canvas.Quiz{ID: id, Title: changes.Title}, nil
}

func (f *FakeCourse) CreateQuestionGroup(ctx context.Context, quizID int, group canvas.NewQuestionGroup) (*canvas.QuestionGroup, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CreatedGroups = append(f.CreatedGroups, group)
	return &canvas.QuestionGroup{ID: f.id(), QuizID: quizID, Name: group.Name, PickCount: group.PickCount}, nil
}

func (f *FakeCourse) CreateQuestion(ctx context.Context, quizID int, question canvas.NewQuestion) (*canvas.Question, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CreatedQuestions = append(f.CreatedQuestions, question)
	return &canvas.Question{ID: f.id(), QuizID: quizID, QuestionName: question.QuestionName, QuestionType: question.QuestionType}, nil
}

func (f *FakeCourse) ListStudents(ctx context.Context) ([]canvas.Enrollment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Students, nil
}

func (f *FakeCourse) EditFrontPage(ctx context.Context, title, body string) error {
	if f.Err != nil {
		return f.Err
	}
	f.FrontPageTitle = title
	f.FrontPageBody = body
	return nil
}
