package main

import (
	"github.com/TresPies-source/citelib/internal/library"
	"github.com/spf13/cobra"
)

var libraryListLimit int

func init() {
	libraryListCmd.Flags().IntVar(&libraryListLimit, "limit", 0, "Maximum results to return (0 = all)")
	libraryCmd.AddCommand(libraryListCmd)
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all library records",
	Long: `List every record in the library cache in citation order.

Example:
  cite library list --human`,
	Args: cobra.NoArgs,
	RunE: runLibraryList,
}

// LibraryListResult is the response for the library list command.
type LibraryListResult struct {
	Count   int             `json:"count"`
	Entries []library.Entry `json:"entries"`
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	cfg := mustProjectConfig()
	db := mustOpenBuiltLibrary(cfg)
	defer db.Close()

	entries, err := db.ListAll(libraryListLimit)
	if err != nil {
		exitWithError(ExitError, "listing records: %v", err)
	}
	if entries == nil {
		entries = []library.Entry{}
	}

	if humanOutput {
		for _, entry := range entries {
			printRecordSummary(entry.Pos, entry.Record)
		}
	} else {
		outputJSON(LibraryListResult{
			Count:   len(entries),
			Entries: entries,
		})
	}

	return nil
}
