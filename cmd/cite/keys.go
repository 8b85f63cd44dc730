package main

import (
	"fmt"
	"os"

	"github.com/TresPies-source/citelib/internal/citation"
	"github.com/TresPies-source/citelib/internal/document"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys <doc.md>",
	Short: "List citation keys used by a document",
	Long: `Parse a markdown document and list the citation keys it uses, in
order of first appearance and without duplicates.

Example:
  cite keys thesis.md`,
	Args: cobra.ExactArgs(1),
	RunE: runKeys,
}

// KeysResult is the response for the keys command.
type KeysResult struct {
	Path  string   `json:"path"`
	Count int      `json:"count"`
	Keys  []string `json:"keys"`
}

func runKeys(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "reading %s: %v", path, err)
	}

	doc, err := document.ParseMarkdown(src)
	if err != nil {
		exitWithError(ExitDataError, "parsing %s: %v", path, err)
	}

	// Key extraction needs no bibliography
	coord := citation.NewCoordinator(citation.NewIndexFromRecords(nil))
	keys := coord.ExtractKeys(doc.Root)
	if keys == nil {
		keys = []string{}
	}

	if humanOutput {
		for _, key := range keys {
			fmt.Println(key)
		}
	} else {
		outputJSON(KeysResult{
			Path:  path,
			Count: len(keys),
			Keys:  keys,
		})
	}

	return nil
}
