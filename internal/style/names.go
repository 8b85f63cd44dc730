package style

import "strings"

// lastName extracts the family name from a raw author string: the
// segment before the first comma when one is present, otherwise the
// final whitespace-delimited token.
func lastName(author string) string {
	if i := strings.Index(author, ","); i >= 0 {
		return strings.TrimSpace(author[:i])
	}
	fields := strings.Fields(author)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// firstInitials renders the given names as dotted initials, so
// "Smith, John Ronald" and "John Ronald Smith" both yield "J. R.".
// An author with no given names yields the empty string.
func firstInitials(author string) string {
	var given string
	if i := strings.Index(author, ","); i >= 0 {
		given = author[i+1:]
	} else if fields := strings.Fields(author); len(fields) > 1 {
		given = strings.Join(fields[:len(fields)-1], " ")
	}

	var initials []string
	for _, tok := range strings.Fields(given) {
		initials = append(initials, string([]rune(tok)[0])+".")
	}
	return strings.Join(initials, " ")
}
