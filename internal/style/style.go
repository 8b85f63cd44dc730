// Package style renders bibliographic records as inline citations and
// bibliography entries. IEEE and APA have dedicated renderers; every
// other style name, including registered custom styles, falls back to a
// generic renderer.
package style

import (
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
)

// Styles with dedicated renderers.
const (
	IEEE = "ieee"
	APA  = "apa"
)

// builtin is the fixed set of recognized style names. Names outside the
// first two render through the generic fallback.
var builtin = []string{IEEE, APA, "chicago", "mla", "harvard", "vancouver", "nature", "arxiv"}

// Builtin returns the built-in style names in listing order.
func Builtin() []string {
	names := make([]string, len(builtin))
	copy(names, builtin)
	return names
}

// Inline renders rec as an inline citation. num is the caller-supplied
// 1-based citation number; only numbered styles use it. Unknown style
// names degrade to the generic renderer rather than failing.
func Inline(rec bibtex.Record, num int, styleName string) string {
	switch normalize(styleName) {
	case IEEE:
		return ieeeInline(num)
	case APA:
		return apaInline(rec)
	default:
		return genericInline(rec)
	}
}

// Entry renders rec as a bibliography entry numbered num. Unknown style
// names degrade to the generic renderer.
func Entry(rec bibtex.Record, num int, styleName string) string {
	switch normalize(styleName) {
	case IEEE:
		return ieeeEntry(rec, num)
	case APA:
		return apaEntry(rec)
	default:
		return genericEntry(rec)
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
