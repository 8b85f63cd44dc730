package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TresPies-source/citelib/internal/library"
	"github.com/spf13/cobra"
)

var (
	librarySearchLimit   int
	librarySearchAuthors []string
	librarySearchYear    string
	librarySearchTitle   string
	librarySearchVenue   string
	librarySearchDOI     string
)

func init() {
	librarySearchCmd.Flags().IntVar(&librarySearchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	librarySearchCmd.Flags().StringArrayVarP(&librarySearchAuthors, "author", "a", nil, "Search by author name (can be repeated, uses AND logic)")
	librarySearchCmd.Flags().StringVar(&librarySearchYear, "year", "", "Filter by year: exact (2024), range (2020:2024), or open (2020: or :2024)")
	librarySearchCmd.Flags().StringVarP(&librarySearchTitle, "title", "t", "", "Search in title only")
	librarySearchCmd.Flags().StringVar(&librarySearchVenue, "venue", "", "Filter by venue (partial match)")
	librarySearchCmd.Flags().StringVar(&librarySearchDOI, "doi", "", "Lookup by exact DOI")
	libraryCmd.AddCommand(librarySearchCmd)
}

var librarySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over the library cache",
	Long: `Search the library cache with flexible filtering.

Query syntax (positional argument):
  Plain text     - Searches titles, authors, venues, and years
  author:name    - Search author names only
  title:text     - Search titles only

Author matching supports prefix matching, so "Tim" matches "Timothy".
When multiple authors are specified, all must match (AND logic).

Year syntax:
  --year 2024         - Exact year
  --year 2020:2024    - Range (inclusive)
  --year 2020:        - 2020 and later
  --year :2020        - 2020 and earlier

Examples:
  cite library search "quantum computing"
  cite library search -a Smith --year 2020:
  cite library search --venue Nature
  cite library search --doi "10.1234/nc.2020.42"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLibrarySearch,
}

// LibrarySearchResult is the response for the library search command.
type LibrarySearchResult struct {
	Count   int             `json:"count"`
	Entries []library.Entry `json:"entries"`
}

func runLibrarySearch(cmd *cobra.Command, args []string) error {
	cfg := mustProjectConfig()
	db := mustOpenBuiltLibrary(cfg)
	defer db.Close()

	var entries []library.Entry
	var err error

	useFilters := len(librarySearchAuthors) > 0 || librarySearchYear != "" ||
		librarySearchTitle != "" || librarySearchVenue != "" || librarySearchDOI != ""
	doiOnly := librarySearchDOI != "" && len(args) == 0 &&
		len(librarySearchAuthors) == 0 && librarySearchYear == "" &&
		librarySearchTitle == "" && librarySearchVenue == ""

	if doiOnly {
		// Exact DOI lookup hits the index directly
		var entry *library.Entry
		entry, err = db.GetByDOI(librarySearchDOI)
		if entry != nil {
			entries = []library.Entry{*entry}
		}
	} else if useFilters {
		filters := library.SearchFilters{
			Authors: librarySearchAuthors,
			Title:   librarySearchTitle,
			Venue:   librarySearchVenue,
			DOI:     librarySearchDOI,
		}

		if len(args) > 0 {
			filters.Keyword = args[0]
		}

		if librarySearchYear != "" {
			from, to, err := parseYearRange(librarySearchYear)
			if err != nil {
				exitWithError(ExitError, "invalid year format: %v", err)
			}
			filters.YearFrom = from
			filters.YearTo = to
		}

		entries, err = db.SearchWithFilters(filters, librarySearchLimit)
	} else if len(args) > 0 {
		query := args[0]

		// Field-specific prefix syntax: author:name, title:text
		if strings.HasPrefix(query, "author:") {
			entries, err = db.SearchField("author", strings.TrimPrefix(query, "author:"), librarySearchLimit)
		} else if strings.HasPrefix(query, "title:") {
			entries, err = db.SearchField("title", strings.TrimPrefix(query, "title:"), librarySearchLimit)
		} else {
			entries, err = db.Search(query, librarySearchLimit)
		}
	} else {
		exitWithError(ExitError, "must specify a query or at least one filter (--author, --year)")
	}

	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// Empty result is not an error
	if entries == nil {
		entries = []library.Entry{}
	}

	if humanOutput {
		if len(entries) == 0 {
			fmt.Println("No records found")
		} else {
			fmt.Printf("Found %d records:\n\n", len(entries))
			for _, entry := range entries {
				printRecordSummary(entry.Pos, entry.Record)
			}
		}
	} else {
		outputJSON(LibrarySearchResult{
			Count:   len(entries),
			Entries: entries,
		})
	}

	return nil
}

// parseYearRange parses a year specification into from/to values.
// Supported formats: "2024", "2020:2024", "2020:", ":2024"
func parseYearRange(spec string) (from, to int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, nil
	}

	// Check for range syntax
	if strings.Contains(spec, ":") {
		parts := strings.SplitN(spec, ":", 2)

		if parts[0] != "" {
			from, err = strconv.Atoi(parts[0])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", parts[0])
			}
		}

		if parts[1] != "" {
			to, err = strconv.Atoi(parts[1])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", parts[1])
			}
		}

		return from, to, nil
	}

	// Single year - exact match
	year, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", spec)
	}

	return year, year, nil
}
