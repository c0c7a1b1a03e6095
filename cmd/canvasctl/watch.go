package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/prokaj/canvasctl/internal/ui"
	"github.com/prokaj/canvasctl/internal/watch"
)

var watchLogFile string

var watchCmd = &cobra.Command{
	Use:   "watch [FILE]",
	Short: "Re-render the schedule whenever the course document changes",
	Long: `Watch the course document and re-render it on every change.

The HTML lands next to the source with an .html extension. With --log the
render log goes to a rotating log file instead of stderr.`,
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

		logger := log.New(os.Stderr, "[watch] ", log.LstdFlags)
		if watchLogFile != "" {
			logger.SetOutput(&lumberjack.Logger{
				Filename:   watchLogFile,
				MaxSize:    10, // MB
				MaxBackups: 3,
				MaxAge:     28, // days
			})
		}

		out := strings.TrimSuffix(src, filepath.Ext(src)) + ".html"
		render := func() {
			html, err := renderSchedule(cc, src, time.Time{})
			if err != nil {
				logger.Printf("ERROR: render %s: %v", src, err)
				return
			}
			if err := os.WriteFile(out, []byte(html), 0644); err != nil {
				logger.Printf("ERROR: write %s: %v", out, err)
				return
			}
			logger.Printf("rendered %s to %s", src, out)
		}
		render()

		w, err := watch.New()
		if err != nil {
			fatal(err)
		}
		if err := w.Start(filepath.Dir(src)); err != nil {
			fatal(err)
		}
		defer w.Stop()

		fmt.Printf("%s Watching %s\n", ui.RenderAccent("👁"), src)
		fmt.Printf("Press Ctrl+C to stop\n")

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

		absSrc, _ := filepath.Abs(src)
		for {
			select {
			case event, ok := <-w.Events():
				if !ok {
					return
				}
				absEvent, _ := filepath.Abs(event.Path)
				if absEvent != absSrc || event.Op == watch.OpDelete {
					continue
				}
				render()
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				logger.Printf("ERROR: watcher: %v", err)
			case <-sigs:
				fmt.Printf("\n%s Stopped\n", ui.RenderPass("✓"))
				return
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchLogFile, "log", "", "write the render log to this rotating file")
	rootCmd.AddCommand(watchCmd)
}
