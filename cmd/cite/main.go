// Package main provides the cite CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/TresPies-source/citelib/internal/bibtex"
	"github.com/TresPies-source/citelib/internal/citation"
	"github.com/TresPies-source/citelib/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// bibOverride is the persistent --bib flag value
var bibOverride string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cite",
	Short: "Bibliography and citation toolkit",
	Long: `cite works with BibTeX bibliographies and markdown documents.

Core features:
  - Permissive BibTeX parsing, validation, and canonical regeneration
  - Inline citations and bibliographies in IEEE, APA, and more
  - Document checking: every [@key] resolved, every entry cited
  - Searchable SQLite library rebuilt from the .bib source
  - PDF identification by DOI or title

The .bib file stays the source of truth; SQLite is an ephemeral query
cache. All commands output JSON by default for tool integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for CITE_BIBLIOGRAPHY, CITE_STYLE)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&bibOverride, "bib", "", "Bibliography file (overrides config and CITE_BIBLIOGRAPHY)")
	rootCmd.Version = Version
}

// resolveBibliography returns the bibliography path for this invocation:
// --bib flag, then CITE_BIBLIOGRAPHY, then project and global config.
func resolveBibliography() string {
	return config.ResolveBibliography(bibOverride)
}

// mustReadBibliography loads and parses the resolved bibliography,
// exits on error. Returns the resolved path and the records.
func mustReadBibliography() (string, []bibtex.Record) {
	path := resolveBibliography()
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "reading bibliography %s: %v", path, err)
	}
	return path, bibtex.Parse(string(data))
}

// mustCoordinator builds a citation coordinator over the resolved
// bibliography, exits on error.
func mustCoordinator() *citation.Coordinator {
	_, records := mustReadBibliography()
	return citation.NewCoordinator(citation.NewIndexFromRecords(records))
}

// mustProjectConfig finds the enclosing project and loads cite.yml,
// exits when not inside a project.
func mustProjectConfig() *config.Config {
	root, err := config.FindProject(".")
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
