package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <key>...",
	Short: "Resolve keys against the bibliography",
	Long: `Resolve citation keys and report which ones the bibliography knows.

Resolved keys come back with their records; unresolved keys are listed
separately. Unresolved keys do not fail the command; use 'cite check'
for enforcement.

Example:
  cite resolve smith2020 ghost2019`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	coord := mustCoordinator()
	report := coord.Resolution(args)

	if humanOutput {
		for _, r := range report.Resolved {
			fmt.Printf("%s: %s (%d)\n", r.Key, truncateString(r.Record.Title, SearchTitleMaxLen), r.Record.Year)
		}
		for _, key := range report.Unresolved {
			fmt.Printf("%s: unresolved\n", key)
		}
	} else {
		outputJSON(report)
	}

	return nil
}
