package main

import (
	"fmt"

	"github.com/TresPies-source/citelib/internal/bibtex"
	"github.com/TresPies-source/citelib/internal/citation"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bibliography in memory",
	Long: `Search the bibliography by substring match over titles, authors,
and years. Case-insensitive, no index required.

For field filters and full-text search over a large bibliography, use
'cite library search'.

Example:
  cite search quantum`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// SearchResult is the response for the search command.
type SearchResult struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Records []bibtex.Record `json:"records"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	_, records := mustReadBibliography()
	idx := citation.NewIndexFromRecords(records)

	matches := idx.Search(args[0])
	if searchLimit > 0 && len(matches) > searchLimit {
		matches = matches[:searchLimit]
	}
	if matches == nil {
		matches = []bibtex.Record{}
	}

	if humanOutput {
		if len(matches) == 0 {
			fmt.Println("No records found")
		} else {
			fmt.Printf("Found %d records:\n\n", len(matches))
			for i, rec := range matches {
				printRecordSummary(i+1, rec)
			}
		}
	} else {
		outputJSON(SearchResult{
			Query:   args[0],
			Count:   len(matches),
			Records: matches,
		})
	}

	return nil
}
