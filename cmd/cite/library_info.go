package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	libraryCmd.AddCommand(libraryInfoCmd)
}

var libraryInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show library cache location and size",
	Args:  cobra.NoArgs,
	RunE:  runLibraryInfo,
}

// LibraryInfoResult is the response for the library info command.
type LibraryInfoResult struct {
	Library      string `json:"library"`
	Bibliography string `json:"bibliography"`
	Style        string `json:"style"`
	Records      int    `json:"records"`
}

func runLibraryInfo(cmd *cobra.Command, args []string) error {
	cfg := mustProjectConfig()
	db := mustOpenBuiltLibrary(cfg)
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting records: %v", err)
	}

	if humanOutput {
		fmt.Printf("Library:      %s\n", cfg.Library)
		fmt.Printf("Bibliography: %s\n", cfg.Bibliography)
		fmt.Printf("Style:        %s\n", cfg.Style)
		fmt.Printf("Records:      %d\n", count)
	} else {
		outputJSON(LibraryInfoResult{
			Library:      cfg.Library,
			Bibliography: cfg.Bibliography,
			Style:        cfg.Style,
			Records:      count,
		})
	}

	return nil
}
