package main

import (
	"github.com/spf13/cobra"

	"github.com/prokaj/canvasctl/internal/course"
	"github.com/prokaj/canvasctl/internal/pandoc"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Create quizzes from quiz JSON documents",
}

var quizPushCmd = &cobra.Command{
	Use:   "push FILE",
	Short: "Create the quizzes described by a quiz JSON document",
	Long: `Create quizzes on the remote course from a quiz JSON document.

The document is a flat list: "quiz" entries open a quiz, "quizgroup"
entries open a question group inside it, anything else is a question.
Descriptions, question texts and choice answers are converted to HTML
before the quiz is created.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}
		docs, err := course.ReadQuizFile(args[0])
		if err != nil {
			fatal(err)
		}
		conv, err := pandoc.New(nil)
		if err != nil {
			fatal(err)
		}
		if err := course.PushQuizzes(cmd.Context(), cc.api, conv, nil, docs); err != nil {
			fatal(err)
		}
	},
}

func init() {
	quizCmd.AddCommand(quizPushCmd)
	rootCmd.AddCommand(quizCmd)
}
