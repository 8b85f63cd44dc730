package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search/list commands

	SearchTitleMaxLen = 70 // Title truncation in search result summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthorsShort joins up to maxCount author strings, appending
// "et al." when more follow.
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a)
	}
	return strings.Join(names, "; ")
}

// printRecordSummary prints a one-record summary for human-readable
// search and list output.
func printRecordSummary(num int, rec bibtex.Record) {
	fmt.Printf("[%d] %s\n", num, rec.Key)
	fmt.Printf("    %s\n", truncateString(rec.Title, SearchTitleMaxLen))

	if len(rec.Authors) > 0 {
		fmt.Printf("    %s\n", formatAuthorsShort(rec.Authors, 3))
	}

	if venue := rec.Venue(); venue != "" {
		fmt.Printf("    %s (%d)\n", venue, rec.Year)
	} else if rec.Year != 0 {
		fmt.Printf("    (%d)\n", rec.Year)
	}
	fmt.Println()
}
