package canvas

import (
	"context"
	"io"
)

// CourseAPI is the remote-course capability the rest of the tool is built
// against. The snapshot builders, reconciler and course operations only see
// this interface, so tests substitute fakes and the HTTP client stays an
// external collaborator.
type CourseAPI interface {
	// Folder and file methods
	ListFolders(ctx context.Context) ([]Folder, error)
	ListFolderFiles(ctx context.Context, folderID int) ([]File, error)
	ResolveFolderPath(ctx context.Context, path string) ([]Folder, error)
	CreateFolder(ctx context.Context, name, parentPath string) (*Folder, error)
	UploadFile(ctx context.Context, folderID int, name string, size int64, r io.Reader, overwrite bool) (*File, error)

	// Assignment methods
	ListAssignments(ctx context.Context, searchTerm string) ([]Assignment, error)
	GetAssignmentGroup(ctx context.Context, groupID int) (*AssignmentGroup, error)
	CreateAssignment(ctx context.Context, assignment NewAssignment) (*Assignment, error)
	EditAssignment(ctx context.Context, id int, changes NewAssignment) (*Assignment, error)
	DeleteAssignment(ctx context.Context, id int) error

	// Quiz methods
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	CreateQuiz(ctx context.Context, quiz NewQuiz) (*Quiz, error)
	EditQuiz(ctx context.Context, id int, changes NewQuiz) (*Quiz, error)
	CreateQuestionGroup(ctx context.Context, quizID int, group NewQuestionGroup) (*QuestionGroup, error)
	CreateQuestion(ctx context.Context, quizID int, question NewQuestion) (*Question, error)

	// Course methods
	ListStudents(ctx context.Context) ([]Enrollment, error)
	EditFrontPage(ctx context.Context, title, body string) error
	BaseURL() string
	CourseID() int
}

// Ensure Client implements the CourseAPI interface
var _ CourseAPI = (*Client)(nil)
