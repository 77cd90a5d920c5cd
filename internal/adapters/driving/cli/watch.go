package cli

import (
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/scour-search/scour-cli/internal/core/services"
	"github.com/scour-search/scour-cli/internal/logger"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the root directory and re-index on changes",
	Long: `Watches the configured root for filesystem changes and re-runs a full
ingestion pass after a quiet period. Passes run sequentially; a burst of
changes triggers a single rebuild.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "quiet period before re-indexing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	w, err := defaultWiring()
	if err != nil {
		return err
	}
	cfg, err := w.store.Load()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the root and every subdirectory; fsnotify is not recursive.
	walkErr := filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("watch setup: traversal error at %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if werr := watcher.Add(path); werr != nil {
				logger.Warn("watch setup: cannot watch %s: %v", path, werr)
			}
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ingest := services.NewIngestService(w.store, w.provider, cmd.OutOrStdout())
	cmd.Printf("Watching %s (debounce %s). Press Ctrl-C to stop.\n", cfg.Root, watchDebounce)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopping watch.")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug("fs event: %s", ev)
			// New directories must be added to the watch set.
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if werr := watcher.Add(ev.Name); werr != nil {
						logger.Warn("cannot watch new directory %s: %v", ev.Name, werr)
					}
				}
			}
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-debounce.C:
			cmd.Println("Change detected, re-indexing...")
			report, err := ingest.Ingest(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("  Indexed %d files (%d skipped).\n", report.Indexed, report.TotalSkipped())
		}
	}
}
