package pdf

import (
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
)

// MatchDOI returns the bibliography records whose DOI equals the given
// one. Both sides are normalized first, and the comparison ignores
// case.
func MatchDOI(records []bibtex.Record, doi string) []bibtex.Record {
	want := NormalizeDOI(doi)
	if want == "" {
		return nil
	}

	var matches []bibtex.Record
	for _, rec := range records {
		if rec.DOI == "" {
			continue
		}
		if strings.EqualFold(NormalizeDOI(rec.DOI), want) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// MatchTitle returns the bibliography records whose title occurs in
// the extracted text, ignoring case and line breaks. Titles shorter
// than 10 characters are skipped to avoid spurious hits.
func MatchTitle(records []bibtex.Record, text string) []bibtex.Record {
	// PDF extraction breaks lines mid-title, so compare with
	// whitespace collapsed.
	haystack := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if haystack == "" {
		return nil
	}

	var matches []bibtex.Record
	for _, rec := range records {
		title := strings.Join(strings.Fields(strings.ToLower(rec.Title)), " ")
		if len(title) < 10 {
			continue
		}
		if strings.Contains(haystack, title) {
			matches = append(matches, rec)
		}
	}
	return matches
}
