package style

import (
	"strconv"
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
)

// apaInline renders a parenthetical author-year citation. Three or more
// authors collapse to "et al." after the first.
func apaInline(rec bibtex.Record) string {
	year := yearOrND(rec.Year)
	switch len(rec.Authors) {
	case 0:
		return "(" + year + ")"
	case 1:
		return "(" + lastName(rec.Authors[0]) + ", " + year + ")"
	case 2:
		return "(" + lastName(rec.Authors[0]) + " & " + lastName(rec.Authors[1]) + ", " + year + ")"
	default:
		return "(" + lastName(rec.Authors[0]) + " et al., " + year + ")"
	}
}

// apaEntry renders a reference-list entry:
//
//	Smith, J. & Doe, J. (2020). Title. Journal, 4(2), 1--10. https://doi.org/...
//
// The issue number is only shown parenthesized against a volume, and a
// DOI takes priority over a bare URL when both are present.
func apaEntry(rec bibtex.Record) string {
	var b strings.Builder

	b.WriteString(apaAuthors(rec.Authors))
	b.WriteString(" (" + yearOrND(rec.Year) + ").")
	if rec.Title != "" {
		b.WriteString(" " + rec.Title + ".")
	}

	if rec.Journal != "" {
		b.WriteString(" " + rec.Journal)
		if rec.Volume != "" {
			b.WriteString(", " + rec.Volume)
			if rec.Number != "" {
				b.WriteString("(" + rec.Number + ")")
			}
		}
		if rec.Pages != "" {
			b.WriteString(", " + rec.Pages)
		}
		b.WriteString(".")
	} else if rec.BookTitle != "" {
		b.WriteString(" In " + rec.BookTitle + ".")
	}

	switch {
	case rec.DOI != "":
		b.WriteString(" https://doi.org/" + rec.DOI)
	case rec.URL != "":
		b.WriteString(" " + rec.URL)
	}

	return strings.TrimSpace(b.String())
}

// apaAuthors renders each author as "Lastname, Initials", joined like
// IEEE but with "&" before the final author.
func apaAuthors(authors []string) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		name := lastName(a)
		if initials := firstInitials(a); initials != "" {
			name += ", " + initials
		}
		if name != "" {
			names = append(names, name)
		}
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " & " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
	}
}

func yearOrND(year int) string {
	if year == 0 {
		return "n.d."
	}
	return strconv.Itoa(year)
}
