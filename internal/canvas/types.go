package canvas

// Folder is a folder in the course file tree. FullName carries the
// root-prefixed path ("course files/problems"); FilesCount lets callers
// skip the file listing for empty folders.
type Folder struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	FullName   string `json:"full_name"`
	FilesCount int    `json:"files_count"`
}

// File is an uploaded course file.
type File struct {
	ID          int    `json:"id"`
	FolderID    int    `json:"folder_id"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
}

// Assignment is a course assignment.
type Assignment struct {
	ID                      int    `json:"id"`
	Name                    string `json:"name"`
	AssignmentGroupID       int    `json:"assignment_group_id"`
	Published               bool   `json:"published"`
	HasSubmittedSubmissions bool   `json:"has_submitted_submissions"`
}

// AssignmentGroup names a group of assignments ("Homework", "Exams").
type AssignmentGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Quiz is a course quiz.
type Quiz struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}

// Enrollment is a course enrollment record.
type Enrollment struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Type   string `json:"type"`
}

// AssignmentOverride restricts an assignment to a set of students.
type AssignmentOverride struct {
	DueAt      string `json:"due_at,omitempty"`
	StudentIDs []int  `json:"student_ids,omitempty"`
	Title      string `json:"title,omitempty"`
}

// NewAssignment is the payload for creating or editing an assignment.
type NewAssignment struct {
	Name                   string               `json:"name,omitempty"`
	Description            string               `json:"description,omitempty"`
	DueAt                  string               `json:"due_at,omitempty"`
	PointsPossible         float64              `json:"points_possible,omitempty"`
	SubmissionTypes        []string             `json:"submission_types,omitempty"`
	AllowedExtensions      []string             `json:"allowed_extensions,omitempty"`
	AssignmentGroupID      int                  `json:"assignment_group_id,omitempty"`
	Published              *bool                `json:"published,omitempty"`
	Overrides              []AssignmentOverride `json:"assignment_overrides,omitempty"`
	OnlyVisibleToOverrides bool                 `json:"only_visible_to_overrides,omitempty"`
}

// NewQuiz is the payload for creating or editing a quiz.
type NewQuiz struct {
	Title          string  `json:"title,omitempty"`
	Description    string  `json:"description,omitempty"`
	QuizType       string  `json:"quiz_type,omitempty"`
	PointsPossible float64 `json:"points_possible,omitempty"`
	QuestionCount  int     `json:"question_count,omitempty"`
	Published      *bool   `json:"published,omitempty"`
}

// NewQuestionGroup is the payload for creating a question group inside a
// quiz. PickCount questions are drawn at random, each worth QuestionPoints.
type NewQuestionGroup struct {
	Name           string  `json:"name,omitempty"`
	PickCount      int     `json:"pick_count,omitempty"`
	QuestionPoints float64 `json:"question_points,omitempty"`
}

// QuestionGroup is a created question group.
type QuestionGroup struct {
	ID        int    `json:"id"`
	QuizID    int    `json:"quiz_id"`
	Name      string `json:"name"`
	PickCount int    `json:"pick_count"`
}

// Answer is one answer of a quiz question. HTML and plain text are
// mutually exclusive; which one is used depends on the question type.
type Answer struct {
	AnswerText   string  `json:"answer_text,omitempty"`
	AnswerHTML   string  `json:"answer_html,omitempty"`
	AnswerWeight float64 `json:"answer_weight"`
	BlankID      string  `json:"blank_id,omitempty"`
}

// NewQuestion is the payload for creating a quiz question.
type NewQuestion struct {
	QuestionName   string   `json:"question_name,omitempty"`
	QuestionText   string   `json:"question_text,omitempty"`
	QuestionType   string   `json:"question_type,omitempty"`
	PointsPossible float64  `json:"points_possible,omitempty"`
	QuizGroupID    int      `json:"quiz_group_id,omitempty"`
	Answers        []Answer `json:"answers,omitempty"`
}

// Question is a created quiz question.
type Question struct {
	ID           int    `json:"id"`
	QuizID       int    `json:"quiz_id"`
	QuestionName string `json:"question_name"`
	QuestionType string `json:"question_type"`
}
