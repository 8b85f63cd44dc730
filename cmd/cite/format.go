package main

import (
	"fmt"

	"github.com/TresPies-source/citelib/internal/config"
	"github.com/spf13/cobra"
)

var formatStyle string

func init() {
	formatCmd.Flags().StringVarP(&formatStyle, "style", "s", "", "Citation style (default from config, else apa)")
	rootCmd.AddCommand(formatCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format <key>...",
	Short: "Format inline citations for keys",
	Long: `Format inline citations for one or more keys against the resolved
bibliography.

Keys that don't resolve render as the bracketed key itself, e.g.
"[ghost2020]", so output stays usable while the bibliography is
incomplete.

Examples:
  cite format smith2020
  cite format smith2020 lee2023 --style ieee`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

// FormattedCitation pairs a key with its rendered inline citation.
type FormattedCitation struct {
	Key      string `json:"key"`
	Citation string `json:"citation"`
}

// FormatResult is the response for the format command.
type FormatResult struct {
	Style     string              `json:"style"`
	Citations []FormattedCitation `json:"citations"`
}

func runFormat(cmd *cobra.Command, args []string) error {
	coord := mustCoordinator()
	styleName := config.ResolveStyle(formatStyle)

	citations := make([]FormattedCitation, 0, len(args))
	for _, key := range args {
		citations = append(citations, FormattedCitation{
			Key:      key,
			Citation: coord.FormatCitation(key, styleName),
		})
	}

	if humanOutput {
		for _, c := range citations {
			fmt.Printf("%s: %s\n", c.Key, c.Citation)
		}
	} else {
		outputJSON(FormatResult{
			Style:     styleName,
			Citations: citations,
		})
	}

	return nil
}
