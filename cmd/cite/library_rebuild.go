package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	libraryCmd.AddCommand(libraryRebuildCmd)
}

var libraryRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the library cache from the bibliography",
	Long: `Rebuild the SQLite cache from the project's bibliography file.

Use this after editing the .bib file or if the cache becomes corrupted.
Duplicate keys collapse to their last occurrence, keeping the citation
number of the first.`,
	Args: cobra.NoArgs,
	RunE: runLibraryRebuild,
}

// LibraryRebuildResult is the response for the library rebuild command.
type LibraryRebuildResult struct {
	Status       string `json:"status"`
	Records      int    `json:"records"`
	Bibliography string `json:"bibliography"`
	Library      string `json:"library"`
}

func runLibraryRebuild(cmd *cobra.Command, args []string) error {
	cfg := mustProjectConfig()

	// Ensure the cache directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Library), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db := mustOpenLibrary(cfg)
	defer db.Close()

	bibPath := resolveBibliography()
	count, err := db.Rebuild(bibPath)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding library: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt library with %d records from %s\n", count, bibPath)
	} else {
		outputJSON(LibraryRebuildResult{
			Status:       "rebuilt",
			Records:      count,
			Bibliography: bibPath,
			Library:      cfg.Library,
		})
	}

	return nil
}
