package course

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/prokaj/canvasctl/internal/canvas"
)

// QuizDoc is one quiz parsed from a quiz JSON document: header fields
// plus question groups and ungrouped questions in document order.
type QuizDoc struct {
	Title       string
	Description string
	QuizType    string
	Entries     []QuizEntry
}

// QuizEntry is either a question group or a single ungrouped question.
type QuizEntry struct {
	Group    *GroupDoc
	Question *QuestionDoc
}

// GroupDoc is a question group: PickCount questions drawn at random, each
// worth QuestionPoints.
type GroupDoc struct {
	Name           string
	PickCount      int
	QuestionPoints float64
	Questions      []*QuestionDoc
}

// QuestionDoc is one quiz question.
type QuestionDoc struct {
	Name    string
	Text    string
	Type    string
	Points  float64
	Answers []AnswerDoc
}

// AnswerDoc is one answer of a question.
type AnswerDoc struct {
	Text    string
	Weight  float64
	BlankID string
}

// Question types whose answers are HTML fragments and therefore go
// through the converter.
var htmlAnswerTypes = map[string]bool{
	"multiple_answers_question": true,
	"multiple_choice_question":  true,
}

func mapStr(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapNum(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func parseQuestion(m map[string]any) *QuestionDoc {
	q := &QuestionDoc{
		Name:   mapStr(m, "question_name"),
		Text:   mapStr(m, "question_text"),
		Type:   mapStr(m, "question_type"),
		Points: mapNum(m, "points_possible"),
	}
	if answers, ok := m["answers"].([]any); ok {
		for _, a := range answers {
			am, ok := a.(map[string]any)
			if !ok {
				continue
			}
			q.Answers = append(q.Answers, AnswerDoc{
				Text:    mapStr(am, "text"),
				Weight:  mapNum(am, "weight"),
				BlankID: strings.Trim(mapStr(am, "blank_id"), "[]"),
			})
		}
	}
	return q
}

// ParseQuizDocs folds the flat entry list of a quiz JSON document into
// quizzes. A "quiz" entry opens a new quiz, a "quizgroup" entry opens a
// group inside the current quiz, anything else is a question appended to
// the most recent group or quiz.
func ParseQuizDocs(data []byte) ([]*QuizDoc, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse quiz document: %w", err)
	}

	var (
		docs    []*QuizDoc
		current *QuizDoc
		group   *GroupDoc
	)
	for _, m := range raw {
		switch mapStr(m, "type") {
		case "quiz":
			current = &QuizDoc{
				Title:       mapStr(m, "title"),
				Description: mapStr(m, "description"),
				QuizType:    mapStr(m, "quiz_type"),
			}
			group = nil
			docs = append(docs, current)
		case "quizgroup":
			if current == nil {
				return nil, fmt.Errorf("question group %q before any quiz", mapStr(m, "name"))
			}
			group = &GroupDoc{
				Name:           mapStr(m, "name"),
				PickCount:      int(mapNum(m, "pick_count")),
				QuestionPoints: mapNum(m, "question_points"),
			}
			current.Entries = append(current.Entries, QuizEntry{Group: group})
		default:
			if current == nil {
				return nil, fmt.Errorf("question before any quiz")
			}
			q := parseQuestion(m)
			if group != nil {
				group.Questions = append(group.Questions, q)
			} else {
				current.Entries = append(current.Entries, QuizEntry{Question: q})
			}
		}
	}
	return docs, nil
}

// ReadQuizFile parses a quiz JSON document from disk.
func ReadQuizFile(path string) ([]*QuizDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseQuizDocs(data)
}

// convertTexts runs every convertible text of the quiz through the
// converter in a single batch and writes the HTML back in place.
func convertTexts(doc *QuizDoc, conv TextConverter) error {
	var (
		texts   []string
		assigns []func(string)
	)
	add := func(text string, assign func(string)) {
		texts = append(texts, text)
		assigns = append(assigns, assign)
	}

	add(doc.Description, func(s string) { doc.Description = s })
	for _, e := range doc.Entries {
		questions := []*QuestionDoc{e.Question}
		if e.Group != nil {
			questions = e.Group.Questions
		}
		for _, q := range questions {
			q := q
			add(q.Text, func(s string) { q.Text = s })
			if htmlAnswerTypes[q.Type] {
				for i := range q.Answers {
					i := i
					add(q.Answers[i].Text, func(s string) { q.Answers[i].Text = s })
				}
			}
		}
	}

	html := conv.ConvertList(texts, "latex", "html")
	if len(html) != len(texts) {
		return fmt.Errorf("conversion produced %d documents, expected %d", len(html), len(texts))
	}
	for i, assign := range assigns {
		assign(strings.TrimSpace(html[i]))
	}
	return nil
}

func buildAnswers(q *QuestionDoc) []canvas.Answer {
	if len(q.Answers) == 0 {
		return nil
	}
	html := htmlAnswerTypes[q.Type]
	answers := make([]canvas.Answer, len(q.Answers))
	for i, a := range q.Answers {
		answers[i] = canvas.Answer{AnswerWeight: a.Weight, BlankID: a.BlankID}
		if html {
			answers[i].AnswerHTML = a.Text
		} else {
			answers[i].AnswerText = a.Text
		}
	}
	return answers
}

// PushQuizzes converts and creates the quizzes on the remote. After the
// questions exist the quiz is patched with its question count and total
// points, which the create call cannot carry.
func PushQuizzes(ctx context.Context, api canvas.CourseAPI, conv TextConverter, logger *log.Logger, docs []*QuizDoc) error {
	if logger == nil {
		logger = log.New(os.Stderr, "[course] ", log.LstdFlags)
	}
	for _, doc := range docs {
		if err := convertTexts(doc, conv); err != nil {
			return fmt.Errorf("quiz %q: %w", doc.Title, err)
		}

		quiz, err := api.CreateQuiz(ctx, canvas.NewQuiz{
			Title:       doc.Title,
			Description: doc.Description,
			QuizType:    doc.QuizType,
		})
		if err != nil {
			return fmt.Errorf("create quiz %q: %w", doc.Title, err)
		}

		var total float64
		for _, e := range doc.Entries {
			if e.Group != nil {
				created, err := api.CreateQuestionGroup(ctx, quiz.ID, canvas.NewQuestionGroup{
					Name:           e.Group.Name,
					PickCount:      e.Group.PickCount,
					QuestionPoints: e.Group.QuestionPoints,
				})
				if err != nil {
					return fmt.Errorf("create group %q: %w", e.Group.Name, err)
				}
				for _, q := range e.Group.Questions {
					question := canvas.NewQuestion{
						QuestionName:   q.Name,
						QuestionText:   q.Text,
						QuestionType:   q.Type,
						PointsPossible: e.Group.QuestionPoints,
						QuizGroupID:    created.ID,
						Answers:        buildAnswers(q),
					}
					if _, err := api.CreateQuestion(ctx, quiz.ID, question); err != nil {
						return fmt.Errorf("create question %q: %w", q.Name, err)
					}
				}
				total += e.Group.QuestionPoints
				continue
			}

			q := e.Question
			question := canvas.NewQuestion{
				QuestionName:   q.Name,
				QuestionText:   q.Text,
				QuestionType:   q.Type,
				PointsPossible: q.Points,
				Answers:        buildAnswers(q),
			}
			if _, err := api.CreateQuestion(ctx, quiz.ID, question); err != nil {
				return fmt.Errorf("create question %q: %w", q.Name, err)
			}
			total += q.Points
		}

		if _, err := api.EditQuiz(ctx, quiz.ID, canvas.NewQuiz{
			QuestionCount:  len(doc.Entries),
			PointsPossible: total,
		}); err != nil {
			return fmt.Errorf("finalize quiz %q: %w", doc.Title, err)
		}
		logger.Printf("created quiz %d (%q)", quiz.ID, quiz.Title)
	}
	return nil
}
