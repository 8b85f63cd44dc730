package style

import (
	"strconv"
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
)

func ieeeInline(num int) string {
	return "[" + strconv.Itoa(num) + "]"
}

// ieeeEntry renders a numbered reference-list entry:
//
//	[1] J. Smith and J. Doe, "Title," Journal, vol. 4, no. 2, pp. 1--10, 2020.
//
// Clauses whose field is absent are dropped entirely; tidy repairs the
// punctuation seams that dropping leaves behind.
func ieeeEntry(rec bibtex.Record, num int) string {
	var b strings.Builder
	b.WriteString("[" + strconv.Itoa(num) + "] ")

	if authors := ieeeAuthors(rec.Authors); authors != "" {
		b.WriteString(authors + ", ")
	}
	if rec.Title != "" {
		b.WriteString("\"" + rec.Title + ",\" ")
	}
	if rec.Journal != "" {
		b.WriteString(rec.Journal + ", ")
	} else if rec.BookTitle != "" {
		b.WriteString("in " + rec.BookTitle + ", ")
	}
	if rec.Volume != "" {
		b.WriteString("vol. " + rec.Volume + ", ")
	}
	if rec.Number != "" {
		b.WriteString("no. " + rec.Number + ", ")
	}
	if rec.Pages != "" {
		b.WriteString("pp. " + rec.Pages + ", ")
	}
	if rec.Year != 0 {
		b.WriteString(strconv.Itoa(rec.Year))
	}

	return tidy(strings.TrimSpace(b.String()) + ".")
}

// ieeeAuthors renders each author as "<initials> <lastname>" and joins
// them IEEE-fashion: two with "and", three or more with serial commas.
func ieeeAuthors(authors []string) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		name := lastName(a)
		if initials := firstInitials(a); initials != "" {
			name = initials + " " + name
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
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

var punctCleanups = strings.NewReplacer(
	",,", ",",
	",.", ".",
	" ,", ",",
	" .", ".",
)

// tidy collapses whitespace runs to single spaces, then repeatedly
// collapses the duplicate punctuation left where an omitted clause met
// its neighbor (e.g. "Journal, ." at the end of an entry).
func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for {
		cleaned := punctCleanups.Replace(s)
		if cleaned == s {
			return s
		}
		s = cleaned
	}
}
