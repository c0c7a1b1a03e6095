package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prokaj/canvasctl/internal/course"
	"github.com/prokaj/canvasctl/internal/pandoc"
	"github.com/prokaj/canvasctl/internal/store"
	"github.com/prokaj/canvasctl/internal/ui"
)

// resolveLocalArg makes a path argument absolute before the cache scope
// changes into the course directory, so relative paths keep meaning what
// they meant at the prompt. A bare file name stays as is: those are looked
// up under the configured local default directory.
func resolveLocalArg(p string) (string, error) {
	if dir, _ := filepath.Split(p); dir == "" {
		return p, nil
	}
	return filepath.Abs(p)
}

var uploadCmd = &cobra.Command{
	Use:   "upload LOCAL [REMOTE]",
	Short: "Upload a file to the course, overwriting any previous version",
	Long: `Upload a local file to the remote course.

A bare file name is looked up under the configured local default
directory and placed under the remote default directory. The remote
folder is created when missing, and the new file id is recorded in the
files cache.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}

		remote := ""
		if len(args) == 2 {
			remote = args[1]
		}

		local, err := resolveLocalArg(args[0])
		if err != nil {
			fatal(err)
		}

		scope, err := store.Enter(cc.cacheDir())
		if err != nil {
			fatal(err)
		}
		cache, err := scope.Cache()
		if err != nil {
			scope.Close()
			fatal(err)
		}

		opts := course.UploadOptions{
			LocalDefaultDir:  cc.course.LocalDefaultDir,
			RemoteDefaultDir: cc.course.CanvasDefaultDir,
		}
		file, uploadErr := course.Upload(cmd.Context(), cc.api, cache, local, remote, opts)
		if err := scope.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving caches: %v\n", err)
			os.Exit(1)
		}
		if uploadErr != nil {
			fatal(uploadErr)
		}

		fmt.Printf("%s Uploaded %s (id %d)\n", ui.RenderPass("✓"), file.DisplayName, file.ID)
	},
}

var frontpageCmd = &cobra.Command{
	Use:   "frontpage FILE",
	Short: "Convert a document and install it as the course front page",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}

		text, err := os.ReadFile(args[0])
		if err != nil {
			fatal(err)
		}
		conv, err := pandoc.New(nil)
		if err != nil {
			fatal(err)
		}

		title, _ := cmd.Flags().GetString("title")
		if err := course.UpdateFrontPage(cmd.Context(), cc.api, conv, title, string(text)); err != nil {
			fatal(err)
		}
		fmt.Printf("%s Front page updated\n", ui.RenderPass("✓"))
	},
}

func init() {
	frontpageCmd.Flags().String("title", "Course description", "front page title")
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(frontpageCmd)
}
