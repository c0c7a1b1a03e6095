package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/prokaj/canvasctl/internal/course"
)

var assignmentCmd = &cobra.Command{
	Use:   "assignment",
	Short: "Publish or delete assignments by search term",
}

var assignmentPublishCmd = &cobra.Command{
	Use:   "publish TERM",
	Short: "Publish every assignment whose name matches the term",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}
		if err := course.PublishAssignments(cmd.Context(), cc.api, nil, args[0]); err != nil {
			fatal(err)
		}
	},
}

var assignmentDeleteCmd = &cobra.Command{
	Use:   "delete TERM",
	Short: "Delete matching assignments after per-item confirmation",
	Long: `Delete every assignment whose name matches the term.

Each deletion is confirmed individually. Assignments that already have
submissions are never deleted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}
		err = course.DeleteAssignments(cmd.Context(), cc.api, nil, args[0], confirmDelete)
		if err != nil {
			fatal(err)
		}
	},
}

func confirmDelete(name string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Do you really want to delete %q?", name)).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func init() {
	assignmentCmd.AddCommand(assignmentPublishCmd)
	assignmentCmd.AddCommand(assignmentDeleteCmd)
	rootCmd.AddCommand(assignmentCmd)
}
