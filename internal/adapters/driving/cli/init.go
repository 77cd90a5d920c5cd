package cli

import (
	"github.com/spf13/cobra"

	"github.com/scour-search/scour-cli/internal/core/services"
)

var (
	initRoot  string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize config and index for a root folder",
	Long: `Creates (or validates) the persistent index and saves the configuration,
then runs a full initial indexing pass over the root directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initRoot, "root", "", "root directory to index")
	initCmd.Flags().BoolVar(&initForce, "force", false, "recreate the index directory if it already exists")
	_ = initCmd.MarkFlagRequired("root")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	w, err := defaultWiring()
	if err != nil {
		return err
	}

	lifecycle := services.NewLifecycleService(w.store, w.provider, w.indexDir)
	res, err := lifecycle.Init(cmd.Context(), initRoot, initForce)
	if err != nil {
		return err
	}

	status := "Created new index."
	if res.Reused {
		status = "Reused existing index."
	}

	cmd.Println("Initialized scour:")
	cmd.Printf("  Root directory : %s\n", res.Root)
	cmd.Printf("  Index directory: %s\n", res.IndexDir)
	cmd.Printf("  Index status   : %s\n", status)
	cmd.Printf("  Config file    : %s\n", res.ConfigPath)
	cmd.Println()
	cmd.Println("Starting initial indexing run...")

	return runPass(cmd, w)
}
