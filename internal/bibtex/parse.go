package bibtex

import (
	"regexp"
	"strconv"
	"strings"
)

// authorSepRe splits BibTeX author fields on the "and" separator,
// case-insensitively.
var authorSepRe = regexp.MustCompile(`(?i) and `)

// entry is one raw @type{...} stanza before promotion to a Record.
// Type keeps the source casing; Fields maps lower-cased names to
// stripped values.
type entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Parse extracts every bibliographic record it can from text. Parsing
// never fails: malformed or truncated entries degrade to partial records
// or are skipped, and well-formed entries before and after them are
// unaffected. Use Validate for diagnostics.
func Parse(text string) []Record {
	var records []Record
	for _, e := range scanEntries(text) {
		if isDirective(e.Type) {
			continue
		}
		records = append(records, newRecord(e))
	}
	return records
}

// isDirective reports whether an entry type names a non-record directive.
func isDirective(entryType string) bool {
	switch strings.ToLower(entryType) {
	case "comment", "preamble", "string":
		return true
	}
	return false
}

// scanEntries is the first scanning pass: it finds @type{ headers by a
// forward scan and cuts out each entry body by brace depth counting.
// A single regex over the whole grammar cannot work here because field
// values may contain nested braces.
func scanEntries(text string) []entry {
	var entries []entry
	i, n := 0, len(text)

	for i < n {
		if text[i] != '@' {
			i++
			continue
		}
		i++

		typeStart := i
		for i < n && isTypeByte(text[i]) {
			i++
		}
		entryType := text[typeStart:i]
		if entryType == "" || i >= n || text[i] != '{' {
			continue
		}
		i++

		// The key runs to the first comma. Entries without fields close
		// at the brace instead; a truncated header takes the rest.
		keyStart := i
		for i < n && text[i] != ',' && text[i] != '}' {
			i++
		}
		if i >= n {
			entries = append(entries, entry{
				Type:   entryType,
				Key:    strings.TrimSpace(text[keyStart:]),
				Fields: map[string]string{},
			})
			break
		}
		if text[i] == '}' {
			entries = append(entries, entry{
				Type:   entryType,
				Key:    strings.TrimSpace(text[keyStart:i]),
				Fields: map[string]string{},
			})
			i++
			continue
		}
		key := strings.TrimSpace(text[keyStart:i])
		i++

		// Body runs from the comma to the matching close brace. On EOF
		// before the depth returns to zero the body is everything
		// remaining, so one truncated entry never rejects the document.
		bodyStart := i
		depth := 1
		for i < n && depth > 0 {
			switch text[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			i++
		}
		body := text[bodyStart:]
		if depth == 0 {
			body = text[bodyStart : i-1]
		}

		entries = append(entries, entry{
			Type:   entryType,
			Key:    key,
			Fields: parseFields(body),
		})
	}

	return entries
}

func isTypeByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// parseFields is the second scanning pass, over one entry body:
// skip separators, read a name up to '=', then dispatch on the first
// value byte. Pairs without an '=' are skipped, never fatal.
func parseFields(body string) map[string]string {
	fields := make(map[string]string)
	i, n := 0, len(body)

	for i < n {
		for i < n && (body[i] == ',' || isSpaceByte(body[i])) {
			i++
		}
		if i >= n {
			break
		}

		nameStart := i
		for i < n && body[i] != '=' && body[i] != ',' && body[i] != '}' {
			i++
		}
		if i >= n || body[i] != '=' {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(body[nameStart:i]))
		i++
		for i < n && isSpaceByte(body[i]) {
			i++
		}

		var value string
		value, i = scanValue(body, i)
		if name != "" {
			fields[name] = normalizeValue(value)
		}
	}

	return fields
}

// scanValue reads one field value starting at i and returns it with the
// position after its closing delimiter. '{' opens a depth-counted brace
// value, '"' runs to the next unescaped quote, anything else is a bare
// token up to a comma, close brace, or newline.
func scanValue(body string, i int) (string, int) {
	n := len(body)
	if i >= n {
		return "", i
	}

	switch body[i] {
	case '{':
		depth := 1
		i++
		start := i
		for i < n && depth > 0 {
			switch body[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			i++
		}
		if depth > 0 {
			return body[start:], i
		}
		return body[start : i-1], i

	case '"':
		i++
		start := i
		for i < n {
			if body[i] == '\\' && i+1 < n {
				i += 2
				continue
			}
			if body[i] == '"' {
				return body[start:i], i + 1
			}
			i++
		}
		return body[start:], i

	default:
		start := i
		for i < n && body[i] != ',' && body[i] != '}' && body[i] != '\n' {
			i++
		}
		return body[start:i], i
	}
}

// normalizeValue trims a value and collapses internal whitespace runs,
// so multi-line brace values read as one line.
func normalizeValue(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// newRecord promotes typed fields out of a raw entry. Promoted fields are
// removed from the Fields map so it keeps only the leftovers.
func newRecord(e entry) Record {
	rec := Record{
		Key:  e.Key,
		Kind: KindOf(e.Type),
	}

	if v, ok := takeField(e.Fields, "title"); ok {
		rec.Title = v
	}
	if v, ok := takeField(e.Fields, "author"); ok {
		rec.Authors = SplitAuthors(v)
	}
	if v, ok := takeField(e.Fields, "year"); ok {
		if year, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			rec.Year = year
		}
	}

	rec.Journal, _ = takeField(e.Fields, "journal")
	rec.BookTitle, _ = takeField(e.Fields, "booktitle")
	rec.Publisher, _ = takeField(e.Fields, "publisher")
	rec.Volume, _ = takeField(e.Fields, "volume")
	rec.Pages, _ = takeField(e.Fields, "pages")
	rec.DOI, _ = takeField(e.Fields, "doi")
	rec.URL, _ = takeField(e.Fields, "url")

	// Aliases: the first listed name wins; a losing alias stays in Fields.
	rec.Number = takeFirstField(e.Fields, "number", "issue")
	rec.Accessed = takeFirstField(e.Fields, "accessed", "urldate")

	if len(e.Fields) > 0 {
		rec.Fields = e.Fields
	}
	return rec
}

func takeField(fields map[string]string, name string) (string, bool) {
	v, ok := fields[name]
	if ok {
		delete(fields, name)
	}
	return v, ok
}

func takeFirstField(fields map[string]string, names ...string) string {
	for _, name := range names {
		if v, ok := takeField(fields, name); ok {
			return v
		}
	}
	return ""
}

// SplitAuthors splits an author field on the " and " separator,
// case-insensitively, trimming segments and dropping empty ones.
func SplitAuthors(field string) []string {
	var authors []string
	for _, part := range authorSepRe.Split(field, -1) {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
