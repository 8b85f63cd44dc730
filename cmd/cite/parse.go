package main

import (
	"fmt"
	"os"

	"github.com/TresPies-source/citelib/internal/bibtex"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.bib>",
	Short: "Parse a BibTeX file into records",
	Long: `Parse a BibTeX file and print the records.

Parsing is permissive: malformed entries are skipped, unknown entry
types become "other", and duplicate keys are kept in order.

Example:
  cite parse references.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

// ParseResult is the response for the parse command.
type ParseResult struct {
	Path    string          `json:"path"`
	Count   int             `json:"count"`
	Records []bibtex.Record `json:"records"`
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "reading %s: %v", path, err)
	}

	records := bibtex.Parse(string(data))
	if records == nil {
		records = []bibtex.Record{}
	}

	if humanOutput {
		fmt.Printf("Parsed %d records from %s\n\n", len(records), path)
		for i, rec := range records {
			printRecordSummary(i+1, rec)
		}
	} else {
		outputJSON(ParseResult{
			Path:    path,
			Count:   len(records),
			Records: records,
		})
	}

	return nil
}
