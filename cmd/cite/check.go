package main

import (
	"os"
	"path/filepath"

	"github.com/TresPies-source/citelib/internal/bibtex"
	"github.com/TresPies-source/citelib/internal/citation"
	"github.com/TresPies-source/citelib/internal/config"
	"github.com/TresPies-source/citelib/internal/document"
	"github.com/TresPies-source/citelib/internal/validation"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <doc.md>",
	Short: "Check a document against its bibliography",
	Long: `Check that every citation in a markdown document resolves against
the bibliography, and that every bibliography entry is cited.

Unresolved citations are errors (exit code 3); uncited entries are
warnings. A "bibliography:" entry in the document's frontmatter names
the bibliography, relative to the document; --bib overrides it.

Example:
  cite check thesis.md`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Path         string             `json:"path"`
	Bibliography string             `json:"bibliography"`
	Result       *validation.Result `json:"result"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "reading %s: %v", path, err)
	}

	doc, err := document.ParseMarkdown(src)
	if err != nil {
		exitWithError(ExitDataError, "parsing %s: %v", path, err)
	}

	bibPath := documentBibliography(path, doc.Meta)
	data, err := os.ReadFile(bibPath)
	if err != nil {
		exitWithError(ExitConfigError, "reading bibliography %s: %v", bibPath, err)
	}

	coord := citation.NewCoordinator(citation.NewIndexFromRecords(bibtex.Parse(string(data))))
	result := coord.ValidateDocument(doc.Root)

	if humanOutput {
		printValidationResult(result)
	} else {
		outputJSON(CheckResult{
			Path:         path,
			Bibliography: bibPath,
			Result:       result,
		})
	}

	if !result.Valid {
		os.Exit(ExitDataError)
	}
	return nil
}

// documentBibliography resolves the bibliography for a document
// command. An explicit --bib wins; otherwise a frontmatter
// "bibliography:" entry applies, relative to the document; otherwise
// normal resolution (env, project, global, default).
func documentBibliography(docPath string, meta document.Meta) string {
	if bibOverride != "" {
		return config.ResolveBibliography(bibOverride)
	}
	if meta.Bibliography != "" {
		p := config.ExpandPath(meta.Bibliography)
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(docPath), p)
		}
		return p
	}
	return config.ResolveBibliography("")
}
