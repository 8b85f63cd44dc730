package main

import (
	"fmt"
	"os"

	"github.com/TresPies-source/citelib/internal/bibtex"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file.bib>",
	Short: "Rewrite a BibTeX file in canonical form",
	Long: `Parse a BibTeX file and print it back in canonical form: known
fields in a fixed order, extra fields alphabetized, values braced.

The output goes to stdout regardless of --human; redirect it to
replace the file.

Example:
  cite normalize messy.bib > clean.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "reading %s: %v", path, err)
	}

	records := bibtex.Parse(string(data))
	fmt.Print(bibtex.Generate(records))
	return nil
}
