package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/scour-search/scour-cli/internal/core/domain"
	"github.com/scour-search/scour-cli/internal/core/services"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the index for a query string",
	Long: `Parses the query with the index engine's grammar (field-scoped terms,
phrases, boolean operators) and prints the top-ranked matches with
highlighted snippets.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	w, err := defaultWiring()
	if err != nil {
		return err
	}

	svc := services.NewSearchService(w.store, w.provider)
	results, err := svc.Search(cmd.Context(), query)
	switch {
	case errors.Is(err, domain.ErrNeverIndexed),
		errors.Is(err, domain.ErrIndexEmpty),
		errors.Is(err, domain.ErrIndexMissing):
		// Informational states, not failures.
		cmd.Println(err.Error())
		return nil
	case err != nil:
		return err
	}

	if len(results) == 0 {
		cmd.Printf("No results found for query: %s\n", query)
		return nil
	}

	cmd.Printf("Results for query: %s\n", query)
	for _, r := range results {
		cmd.Printf("%2d. [score: %.3f] %s\n", r.Rank, r.Score, r.Path)
		cmd.Printf("      %s\n", renderSnippet(r.Snippet))
		cmd.Println()
	}
	return nil
}
