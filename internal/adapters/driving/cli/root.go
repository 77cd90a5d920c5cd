// Package cli implements the scour command-line interface: init, index,
// search, watch, and version. Commands wire the file-backed config
// store and the bleve index provider into the core services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/scour-search/scour-cli/internal/adapters/driven/config/file"
	bleveindex "github.com/scour-search/scour-cli/internal/adapters/driven/index/bleve"
	"github.com/scour-search/scour-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "scour",
	Short: "Local, offline full-text file search",
	Long: `Scour indexes the text files under a root directory into a local
full-text index and answers free-text queries with ranked, highlighted
results. Everything stays on this machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// wiring bundles the driven adapters behind one scour home.
type wiring struct {
	store    *file.ConfigStore
	provider *bleveindex.Provider
	indexDir string
}

// defaultWiring resolves the scour home and constructs the production
// adapters.
func defaultWiring() (*wiring, error) {
	home, err := file.DefaultHome()
	if err != nil {
		return nil, err
	}
	store, err := file.NewConfigStore(home)
	if err != nil {
		return nil, err
	}
	return &wiring{
		store:    store,
		provider: bleveindex.NewProvider(),
		indexDir: file.DefaultIndexDir(home),
	}, nil
}
