package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/prokaj/canvasctl/internal/reconcile"
	"github.com/prokaj/canvasctl/internal/store"
	"github.com/prokaj/canvasctl/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync [namespace...]",
	Short: "Reconcile the local caches against the remote course",
	Long: `Fetch the remote course listings and replace the local caches with them.

Without arguments all namespaces are reconciled (files, assignments,
quizzes); naming namespaces limits the run. A namespace whose remote
listing fails keeps its previous content.`,
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}

		scope, err := store.Enter(cc.cacheDir())
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Syncing course %d from %s...\n", ui.RenderAccent("🔄"), cc.course.CourseID, cc.cfg.BaseURL)
		start := time.Now()

		rec := reconcile.New(nil)
		syncErr := rec.Reconcile(cmd.Context(), scope, cc.api, args...)

		cache, cacheErr := scope.Cache()
		if closeErr := scope.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Error saving caches: %v\n", closeErr)
			os.Exit(1)
		}
		if syncErr != nil {
			fatal(syncErr)
		}
		if cacheErr != nil {
			fatal(cacheErr)
		}

		elapsed := time.Since(start)
		fmt.Printf("%s Sync complete in %v\n", ui.RenderPass("✓"), elapsed.Round(time.Millisecond))
		for _, name := range store.Namespaces {
			m, err := cache.Member(name)
			if err != nil {
				continue
			}
			if m.Loaded() {
				fmt.Printf("   %s: %d\n", name, m.Len())
			}
		}
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the local caches",
	Long: `Display the cache files of the selected course.

Shows each namespace's file location, size, entry count and last
modification time.`,
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := loadCourse()
		if err != nil {
			fatal(err)
		}

		cache := store.NewCache(cc.cacheDir())
		fmt.Printf("\n%s Cache status for course %d\n\n", ui.RenderAccent("📊"), cc.course.CourseID)
		for _, name := range store.Namespaces {
			m, err := cache.Member(name)
			if err != nil {
				continue
			}

			info, err := os.Stat(m.Path())
			if os.IsNotExist(err) {
				fmt.Printf("%s %s: not initialized (run 'canvasctl sync')\n", ui.RenderWarn("⚠"), name)
				continue
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error checking %s: %v\n", m.Path(), err)
				os.Exit(1)
			}
			if err := m.Load(nil); err != nil {
				fmt.Printf("%s %s: %v\n", ui.RenderErr("✗"), name, err)
				continue
			}

			size := info.Size()
			sizeStr := fmt.Sprintf("%d bytes", size)
			if size > 1024 {
				sizeStr = fmt.Sprintf("%.1f KB", float64(size)/1024)
			}

			fmt.Printf("%s %s\n", ui.RenderPass("✓"), name)
			fmt.Printf("   Location: %s\n", m.Path())
			fmt.Printf("   Size: %s\n", sizeStr)
			fmt.Printf("   Entries: %d\n", m.Len())
			fmt.Printf("   Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
}
