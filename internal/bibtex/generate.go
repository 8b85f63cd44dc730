package bibtex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Generate serializes records back to bibliography source text: one
// stanza per record, typed fields first, remaining fields in sorted
// order, every value brace-delimited. It is a deterministic best-effort
// inverse of Parse; original whitespace and field ordering are not
// preserved.
func Generate(records []Record) string {
	entries := make([]string, 0, len(records))
	for _, rec := range records {
		entries = append(entries, generateEntry(rec))
	}
	return strings.Join(entries, "\n")
}

func generateEntry(rec Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", rec.Kind, rec.Key)

	writeField := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s = {%s},\n", name, value)
		}
	}

	writeField("title", rec.Title)
	if len(rec.Authors) > 0 {
		writeField("author", strings.Join(rec.Authors, " and "))
	}
	if rec.Year != 0 {
		writeField("year", strconv.Itoa(rec.Year))
	}

	writeField("journal", rec.Journal)
	writeField("booktitle", rec.BookTitle)
	writeField("publisher", rec.Publisher)
	writeField("volume", rec.Volume)
	writeField("number", rec.Number)
	writeField("pages", rec.Pages)
	writeField("doi", rec.DOI)
	writeField("url", rec.URL)
	writeField("accessed", rec.Accessed)

	extras := make([]string, 0, len(rec.Fields))
	for name := range rec.Fields {
		extras = append(extras, name)
	}
	sort.Strings(extras)
	for _, name := range extras {
		writeField(name, rec.Fields[name])
	}

	b.WriteString("}\n")
	return b.String()
}
