package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/services"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Re-scan the filesystem and rebuild the index",
	Long: `Runs a full ingestion pass using the saved configuration. The index is
rebuilt from scratch so it exactly reflects the current filesystem state.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	w, err := defaultWiring()
	if err != nil {
		return err
	}
	return runPass(cmd, w)
}

// runPass executes one ingestion pass and prints the summary contract.
func runPass(cmd *cobra.Command, w *wiring) error {
	cfg, err := w.store.Load()
	if err != nil {
		return err
	}

	cmd.Println("Indexing...")
	cmd.Printf("  Root directory : %s\n", cfg.Root)
	cmd.Printf("  Index directory: %s\n", cfg.IndexDir)

	ingest := services.NewIngestService(w.store, w.provider, cmd.OutOrStdout())
	report, err := ingest.Ingest(cmd.Context())
	if err != nil {
		return err
	}

	// Reload for the freshly persisted timestamp.
	cfg, err = w.store.Load()
	if err != nil {
		return err
	}
	printReport(cmd, report, cfg.LastIndexed)
	return nil
}

func printReport(cmd *cobra.Command, report *domain.IngestReport, lastIndexed *time.Time) {
	last := "unknown"
	if lastIndexed != nil {
		last = lastIndexed.Format(time.RFC3339)
	}

	cmd.Println("Indexing complete.")
	cmd.Printf("  Indexed files : %d\n", report.Indexed)
	cmd.Printf("  Skipped files : %d\n", report.TotalSkipped())
	cmd.Printf("    - Unsupported extension : %d\n", report.UnsupportedExtension)
	cmd.Printf("    - Too large             : %d\n", report.TooLarge)
	cmd.Printf("    - Binary content        : %d\n", report.BinaryContent)
	cmd.Printf("    - Read errors           : %d\n", report.ReadErrors)
	cmd.Printf("  Last indexed  : %s\n", last)
}
