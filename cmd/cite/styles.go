package main

import (
	"fmt"

	"github.com/TresPies-source/citelib/internal/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stylesCmd)
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available citation styles",
	Long: `List the citation style names accepted by --style.

IEEE and APA have dedicated renderers; the rest share a generic
author-year rendering.`,
	Args: cobra.NoArgs,
	RunE: runStyles,
}

// StylesResult is the response for the styles command.
type StylesResult struct {
	Styles []string `json:"styles"`
}

func runStyles(cmd *cobra.Command, args []string) error {
	names := style.Builtin()

	if humanOutput {
		for _, name := range names {
			fmt.Println(name)
		}
	} else {
		outputJSON(StylesResult{Styles: names})
	}

	return nil
}
