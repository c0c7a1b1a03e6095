package course

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/prokaj/canvasctl/internal/canvas"
)

// AssignmentSpec describes one assignment to create. Students limits
// visibility to the listed user ids; nil means visible to everyone.
type AssignmentSpec struct {
	Name        string
	Description string
	DueAt       time.Time
	Points      float64
	GroupTitle  string
	Students    []int
}

var (
	submissionTypes   = []string{"online_text_entry", "online_upload"}
	allowedExtensions = []string{"pdf", "png", "jpg"}
)

// BuildAssignment turns a spec into the create payload. Visibility-limited
// assignments carry an override with the due date and are hidden from
// everyone else.
func BuildAssignment(spec AssignmentSpec) canvas.NewAssignment {
	a := canvas.NewAssignment{
		Name:              spec.Name,
		Description:       spec.Description,
		PointsPossible:    spec.Points,
		SubmissionTypes:   submissionTypes,
		AllowedExtensions: allowedExtensions,
	}
	if !spec.DueAt.IsZero() {
		a.DueAt = spec.DueAt.Format(time.RFC3339)
	}
	if spec.Students != nil {
		a.Overrides = []canvas.AssignmentOverride{{
			DueAt:      a.DueAt,
			StudentIDs: spec.Students,
			Title:      spec.GroupTitle,
		}}
		a.OnlyVisibleToOverrides = true
	}
	return a
}

// VariantSpecs expands one assignment over its exercise variants. A single
// text yields the base spec visible to everyone; with several texts the
// students are distributed over the variants and each spec carries a
// visibility override and a variant-lettered name. rng may be nil for the
// default source.
func VariantSpecs(base AssignmentSpec, texts []string, students []int, rng *rand.Rand) []AssignmentSpec {
	variants := AssignVariants(texts, students, rng)
	specs := make([]AssignmentSpec, len(variants))
	for i, v := range variants {
		spec := base
		spec.Description = v.Text
		spec.Students = v.Students
		if len(variants) > 1 {
			spec.Name = fmt.Sprintf("%s/%c", base.Name, 'a'+i)
		}
		specs[i] = spec
	}
	return specs
}

// PublishAssignments publishes every assignment whose name matches the
// search term.
func PublishAssignments(ctx context.Context, api canvas.CourseAPI, logger *log.Logger, term string) error {
	if logger == nil {
		logger = log.New(os.Stderr, "[course] ", log.LstdFlags)
	}
	assignments, err := api.ListAssignments(ctx, term)
	if err != nil {
		return fmt.Errorf("list assignments %q: %w", term, err)
	}
	published := true
	for _, a := range assignments {
		logger.Printf("publishing %s (%d)", a.Name, a.ID)
		if _, err := api.EditAssignment(ctx, a.ID, canvas.NewAssignment{Published: &published}); err != nil {
			return fmt.Errorf("publish %s: %w", a.Name, err)
		}
	}
	return nil
}

// ConfirmFunc asks the user whether one named item should be deleted.
type ConfirmFunc func(name string) (bool, error)

// DeleteAssignments removes assignments matching the search term after a
// per-item confirmation. Assignments that already have submissions are
// never deleted, only reported.
func DeleteAssignments(ctx context.Context, api canvas.CourseAPI, logger *log.Logger, term string, confirm ConfirmFunc) error {
	if logger == nil {
		logger = log.New(os.Stderr, "[course] ", log.LstdFlags)
	}
	assignments, err := api.ListAssignments(ctx, term)
	if err != nil {
		return fmt.Errorf("list assignments %q: %w", term, err)
	}
	for _, a := range assignments {
		ok, err := confirm(a.Name)
		if err != nil {
			return fmt.Errorf("confirm %s: %w", a.Name, err)
		}
		if !ok {
			continue
		}
		if a.HasSubmittedSubmissions {
			logger.Printf("not deleting %s (%d): there are submissions", a.Name, a.ID)
			continue
		}
		logger.Printf("deleting %s (%d)", a.Name, a.ID)
		if err := api.DeleteAssignment(ctx, a.ID); err != nil {
			return fmt.Errorf("delete %s: %w", a.Name, err)
		}
	}
	return nil
}
