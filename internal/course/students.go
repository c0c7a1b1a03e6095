package course

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/prokaj/canvasctl/internal/canvas"
)

// Students returns the user ids of the enrolled students.
func Students(ctx context.Context, api canvas.CourseAPI) ([]int, error) {
	enrollments, err := api.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	ids := make([]int, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Type == "" || e.Type == "StudentEnrollment" {
			ids = append(ids, e.UserID)
		}
	}
	return ids, nil
}

// Split partitions xs into n near-equal consecutive slices. Sizes differ
// by at most one.
func Split(xs []int, n int) [][]int {
	out := make([][]int, 0, n)
	delta := float64(len(xs)) / float64(n)
	s := 0.0
	for k := 0; k < n; k++ {
		i, j := int(math.Round(s)), int(math.Round(s+delta))
		out = append(out, xs[i:j])
		s += delta
	}
	return out
}

// Variant pairs one exercise text with the students allowed to see it.
// Students is nil when the assignment is visible to everyone.
type Variant struct {
	Text     string
	Students []int
}

// AssignVariants distributes students over the exercise variants. A single
// variant stays visible to the whole course; with several variants the
// students are shuffled and split evenly. rng may be nil for the default
// source.
func AssignVariants(texts []string, students []int, rng *rand.Rand) []Variant {
	if len(texts) == 1 {
		return []Variant{{Text: texts[0]}}
	}

	shuffled := make([]int, len(students))
	copy(shuffled, students)
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	groups := Split(shuffled, len(texts))
	variants := make([]Variant, len(texts))
	for i, text := range texts {
		variants[i] = Variant{Text: text, Students: groups[i]}
	}
	return variants
}
