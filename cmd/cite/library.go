package main

import (
	"os"

	"github.com/TresPies-source/citelib/internal/config"
	"github.com/TresPies-source/citelib/internal/library"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(libraryCmd)
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Query the SQLite library cache",
	Long: `Work with the per-project SQLite library cache.

The cache lives at .cite/library.db next to cite.yml and is rebuilt
from the bibliography with 'cite library rebuild'. The .bib file stays
the source of truth; delete the cache freely.`,
}

// mustOpenLibrary opens the project's library cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenLibrary(cfg *config.Config) *library.DB {
	db, err := library.Open(cfg.Library)
	if err != nil {
		exitWithError(ExitError, "opening library: %v", err)
	}
	return db
}

// mustOpenBuiltLibrary opens the cache and exits with a hint when it
// has never been built.
func mustOpenBuiltLibrary(cfg *config.Config) *library.DB {
	if _, err := os.Stat(cfg.Library); err != nil {
		exitWithError(ExitConfigError, "library not built at %s\n\nRun 'cite library rebuild' to create it.", cfg.Library)
	}
	return mustOpenLibrary(cfg)
}
