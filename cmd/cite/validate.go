package main

import (
	"fmt"
	"os"

	"github.com/TresPies-source/citelib/internal/bibtex"
	"github.com/TresPies-source/citelib/internal/validation"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file.bib>",
	Short: "Validate a BibTeX file",
	Long: `Validate a BibTeX file and report problems.

Errors (unbalanced braces, duplicate keys) make the file invalid and
the command exits non-zero. Missing titles, authors, or years are
warnings only.

Example:
  cite validate references.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "reading %s: %v", path, err)
	}

	result := bibtex.Validate(string(data))

	if humanOutput {
		printValidationResult(result)
	} else {
		outputJSON(result)
	}

	if !result.Valid {
		os.Exit(ExitDataError)
	}
	return nil
}

// printValidationResult prints a validation result for humans. Shared
// by validate and check.
func printValidationResult(result *validation.Result) {
	if result.Valid {
		fmt.Println("valid")
	} else {
		fmt.Println("invalid")
	}

	for _, issue := range result.Errors {
		fmt.Printf("  error [%s] %s\n", issue.Code, issue.Message)
		if issue.Suggestion != "" {
			fmt.Printf("        %s\n", issue.Suggestion)
		}
	}
	for _, issue := range result.Warnings {
		fmt.Printf("  warning [%s] %s\n", issue.Code, issue.Message)
	}
}
