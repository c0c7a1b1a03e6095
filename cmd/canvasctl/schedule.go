package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/prokaj/canvasctl/internal/course"
	"github.com/prokaj/canvasctl/internal/pandoc"
	"github.com/prokaj/canvasctl/internal/schedule"
	"github.com/prokaj/canvasctl/internal/store"
	"github.com/prokaj/canvasctl/internal/ui"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Render or push the course schedule",
}

var (
	scheduleUntil  string
	scheduleOut    string
	schedulePoints float64
	scheduleName   string
)

// sourceFile picks the course document: the argument when given, the
// configured source otherwise.
func sourceFile(cc *courseContext, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cc.course.Source != "" {
		return cc.course.Source, nil
	}
	return "", fmt.Errorf("no course document given and none configured")
}

// renderSchedule produces the HTML for the course document: template
// rendering, a metadata preamble with the cached file ids, then the
// converter.
func renderSchedule(cc *courseContext, path string, until time.Time) (string, error) {
	header, sections, err := schedule.ReadCourseFile(path)
	if err != nil {
		return "", err
	}
	text, err := schedule.Render(header, sections, until)
	if err != nil {
		return "", err
	}

	// The metadata block lets the converter's filters resolve logical
	// file paths to course URLs.
	fsdata := map[string]any{}
	cache := store.NewCache(cc.cacheDir())
	if files, err := cache.Member(store.NamespaceFiles); err == nil {
		if err := files.Load(nil); err == nil {
			fsdata = files.Entries()
		}
	}
	text, err = schedule.AddMetaBlock(cc.api.BaseURL(), cc.course.CourseID, fsdata, text)
	if err != nil {
		return "", err
	}

	conv, err := pandoc.New(nil)
	if err != nil {
		return "", err
	}
	html := conv.Convert(text, "markdown", "html")
	if html == "" {
		return "", fmt.Errorf("conversion of %s produced no output", path)
	}
	return html, nil
}

var scheduleRenderCmd = &cobra.Command{
	Use:   "render [FILE]",
	Short: "Render the schedule document to HTML",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}
		src, err := sourceFile(cc, args)
		if err != nil {
			fatal(err)
		}

		var until time.Time
		if scheduleUntil != "" {
			until, err = time.Parse("2006-01-02", scheduleUntil)
			if err != nil {
				fatal(fmt.Errorf("invalid --until date: %w", err))
			}
		}

		html, err := renderSchedule(cc, src, until)
		if err != nil {
			fatal(err)
		}

		if scheduleOut == "" {
			fmt.Print(html)
			return
		}
		if err := os.WriteFile(scheduleOut, []byte(html), 0644); err != nil {
			fatal(err)
		}
		fmt.Printf("%s Rendered %s to %s\n", ui.RenderPass("✓"), src, scheduleOut)
	},
}

var schedulePushCmd = &cobra.Command{
	Use:   "push [FILE]",
	Short: "Create one assignment per schedule section",
	Long: `Create an assignment for every section of the course document.

Each section's exercises are converted to HTML and become the assignment
description; the section date becomes the due date. A section whose
exercises are a list of texts is treated as variants: the enrolled
students are split over them and each variant assignment is only visible
to its share of the students.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}
		src, err := sourceFile(cc, args)
		if err != nil {
			fatal(err)
		}

		header, sections, err := schedule.ReadCourseFile(src)
		if err != nil {
			fatal(err)
		}
		conv, err := pandoc.New(nil)
		if err != nil {
			fatal(err)
		}

		var (
			texts    []string
			variants [][]string
			bases    []course.AssignmentSpec
		)
		for _, s := range sections {
			exs := s.Texts("exs")
			if len(exs) == 0 {
				continue
			}
			texts = append(texts, exs...)
			variants = append(variants, exs)
			bases = append(bases, course.AssignmentSpec{
				Name:       fmt.Sprintf("%d. %s", s.Serial, scheduleName),
				DueAt:      s.Date,
				Points:     schedulePoints,
				GroupTitle: header.Title,
			})
		}
		if len(bases) == 0 {
			fatal(fmt.Errorf("%s has no sections with exercises", src))
		}

		html := conv.ConvertList(texts, "markdown", "html")
		if len(html) != len(texts) {
			fatal(fmt.Errorf("conversion produced %d documents, expected %d", len(html), len(texts)))
		}

		// Enrollment is only needed when a section actually has variants.
		var students []int
		for _, v := range variants {
			if len(v) > 1 {
				students, err = course.Students(cmd.Context(), cc.api)
				if err != nil {
					fatal(err)
				}
				break
			}
		}

		next := 0
		for i, base := range bases {
			n := len(variants[i])
			specs := course.VariantSpecs(base, html[next:next+n], students, nil)
			next += n
			for _, spec := range specs {
				created, err := cc.api.CreateAssignment(cmd.Context(), course.BuildAssignment(spec))
				if err != nil {
					fatal(err)
				}
				fmt.Printf("%s Created %s (id %d)\n", ui.RenderPass("✓"), created.Name, created.ID)
			}
		}
	},
}

func init() {
	scheduleRenderCmd.Flags().StringVar(&scheduleUntil, "until", "", "cut off sections after this date (YYYY-MM-DD)")
	scheduleRenderCmd.Flags().StringVarP(&scheduleOut, "output", "o", "", "write the HTML to this file instead of stdout")
	schedulePushCmd.Flags().Float64Var(&schedulePoints, "points", 10, "points per assignment")
	schedulePushCmd.Flags().StringVar(&scheduleName, "name", "feladat", "assignment name suffix (prefixed with the serial)")
	scheduleCmd.AddCommand(scheduleRenderCmd)
	scheduleCmd.AddCommand(schedulePushCmd)
	rootCmd.AddCommand(scheduleCmd)
}
