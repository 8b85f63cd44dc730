package style

import (
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
)

// genericInline renders "(<first author's last name>, <year>)", falling
// back to the record key when no author is available.
func genericInline(rec bibtex.Record) string {
	name := rec.Key
	if len(rec.Authors) > 0 {
		if last := lastName(rec.Authors[0]); last != "" {
			name = last
		}
	}
	return "(" + name + ", " + yearOrND(rec.Year) + ")"
}

func genericEntry(rec bibtex.Record) string {
	authors := "Unknown"
	if len(rec.Authors) > 0 {
		authors = strings.Join(rec.Authors, ", ")
	}
	s := authors + ". \"" + rec.Title + ".\" " + yearOrND(rec.Year)
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
