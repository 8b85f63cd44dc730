package main

import (
	"fmt"
	"strings"

	"github.com/TresPies-source/citelib/internal/config"
	"github.com/spf13/cobra"
)

var bibliographyStyle string

func init() {
	bibliographyCmd.Flags().StringVarP(&bibliographyStyle, "style", "s", "", "Citation style (default from config, else apa)")
	rootCmd.AddCommand(bibliographyCmd)
}

var bibliographyCmd = &cobra.Command{
	Use:   "bibliography [key]...",
	Short: "Format the bibliography",
	Long: `Format bibliography entries in the chosen style.

With no keys, every record is formatted in source order. With keys,
only those records are included, still in source order, and numbered
1..N for numeric styles.

Examples:
  cite bibliography --style ieee
  cite bibliography smith2020 lee2023 --human`,
	RunE: runBibliography,
}

// BibliographyResult is the response for the bibliography command.
type BibliographyResult struct {
	Style   string   `json:"style"`
	Count   int      `json:"count"`
	Entries []string `json:"entries"`
}

func runBibliography(cmd *cobra.Command, args []string) error {
	coord := mustCoordinator()
	styleName := config.ResolveStyle(bibliographyStyle)

	var keys []string
	if len(args) > 0 {
		keys = args
	}

	text := coord.FormatBibliography(keys, styleName)

	if humanOutput {
		if text != "" {
			fmt.Println(text)
		}
		return nil
	}

	entries := []string{}
	if text != "" {
		entries = strings.Split(text, "\n")
	}
	outputJSON(BibliographyResult{
		Style:   styleName,
		Count:   len(entries),
		Entries: entries,
	})

	return nil
}
