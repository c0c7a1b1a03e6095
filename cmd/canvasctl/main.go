// canvasctl is a command line tool for instructors automating a
// Canvas-style LMS: it reconciles local path-to-id caches against the
// remote course, uploads files, and generates and pushes templated
// assignment and quiz content.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prokaj/canvasctl/internal/canvas"
	"github.com/prokaj/canvasctl/internal/config"
)

var (
	configPath string
	courseName string
)

var rootCmd = &cobra.Command{
	Use:   "canvasctl",
	Short: "Course automation for a Canvas-style LMS",
	Long: `canvasctl automates the instructor side of a Canvas-style LMS.

It keeps local caches that map logical paths (file paths, "group/assignment"
names, quiz titles) to remote identifiers, reconciles them against the
remote course, uploads files, and generates assignment and quiz content
from templated course documents.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (default canvas.{yaml,json})")
	rootCmd.PersistentFlags().StringVar(&courseName, "course", "", "course name from the settings file")
}

// courseContext bundles what most commands need: the settings, the
// selected course section, and a client bound to that course.
type courseContext struct {
	cfg    *config.Config
	course *config.Course
	api    canvas.CourseAPI
}

// cacheDir returns the directory holding the course caches.
func (cc *courseContext) cacheDir() string {
	if cc.course.Dir != "" {
		return cc.course.Dir
	}
	return "."
}

func loadCourse() (*courseContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	course, err := cfg.Course(courseName)
	if err != nil {
		return nil, err
	}
	return &courseContext{
		cfg:    cfg,
		course: course,
		api:    canvas.NewClient(cfg.BaseURL, cfg.AccessToken, course.CourseID),
	}, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
