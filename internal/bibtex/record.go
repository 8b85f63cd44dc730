// Package bibtex parses a permissive subset of BibTeX into normalized
// records, validates source text, and serializes records back out.
package bibtex

import "strings"

// Kind is the closed set of record kinds. Source entry types outside the
// mapped set fall back to KindOther.
type Kind string

const (
	KindArticle       Kind = "article"
	KindBook          Kind = "book"
	KindInProceedings Kind = "inproceedings"
	KindTechReport    Kind = "techreport"
	KindThesis        Kind = "thesis"
	KindMisc          Kind = "misc"
	KindOther         Kind = "other"
)

// KindOf maps a source entry type onto the closed Kind set,
// case-insensitively.
func KindOf(entryType string) Kind {
	switch strings.ToLower(entryType) {
	case "article", "periodical":
		return KindArticle
	case "book", "booklet", "inbook", "collection", "mvbook":
		return KindBook
	case "inproceedings", "conference", "proceedings", "incollection":
		return KindInProceedings
	case "techreport", "report", "manual", "standard":
		return KindTechReport
	case "phdthesis", "mastersthesis", "thesis", "dissertation":
		return KindThesis
	case "misc", "online", "electronic", "www", "webpage", "unpublished":
		return KindMisc
	default:
		return KindOther
	}
}

// Record is one normalized bibliographic entry.
type Record struct {
	// Identity
	Key  string `json:"key"`  // Citation key from the source (uniqueness checked by Validate, not enforced)
	Kind Kind   `json:"kind"` // Mapped entry kind

	// Core metadata
	Title   string   `json:"title"`
	Authors []string `json:"authors,omitempty"` // Raw author strings; name parsing happens at render time
	Year    int      `json:"year"`              // 0 means no year ("n.d." in APA-family styles)

	// Optional metadata ("" means absent)
	Journal   string `json:"journal,omitempty"`
	BookTitle string `json:"booktitle,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Volume    string `json:"volume,omitempty"`
	Number    string `json:"number,omitempty"` // Issue number; "number" and "issue" both map here
	Pages     string `json:"pages,omitempty"`
	DOI       string `json:"doi,omitempty"`
	URL       string `json:"url,omitempty"`
	Accessed  string `json:"accessed,omitempty"` // "accessed" and "urldate" both map here

	// Fields keeps every source field not promoted to a typed field above,
	// lower-cased name to stripped value.
	Fields map[string]string `json:"fields,omitempty"`
}

// Venue returns the journal if present, else the book or proceedings
// title. Empty when the record has neither.
func (r Record) Venue() string {
	if r.Journal != "" {
		return r.Journal
	}
	return r.BookTitle
}
