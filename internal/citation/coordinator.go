package citation

import (
	"fmt"
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
	"github.com/TresPies-source/citelib/internal/document"
	"github.com/TresPies-source/citelib/internal/style"
	"github.com/TresPies-source/citelib/internal/validation"
)

// Coordinator ties the index, the style renderers, and an externally
// supplied document tree together. Formatting degrades instead of
// failing: an unresolved key renders as a bracketed placeholder and an
// unknown style falls back to the generic renderer.
type Coordinator struct {
	index  *Index
	styles *style.Registry
}

func NewCoordinator(index *Index) *Coordinator {
	return &Coordinator{index: index, styles: style.NewRegistry()}
}

// Index exposes the underlying record index.
func (c *Coordinator) Index() *Index {
	return c.index
}

// RegisterStyle stores a custom style definition under name. Custom
// styles render through the generic fallback.
func (c *Coordinator) RegisterStyle(name, definition string) {
	c.styles.Register(name, definition)
}

// Styles lists the styles available to this coordinator.
func (c *Coordinator) Styles() []string {
	return c.styles.Styles()
}

// FormatCitation renders the inline citation for key in the given
// style. An unresolved key degrades to "[key]".
func (c *Coordinator) FormatCitation(key, styleName string) string {
	rec, ok := c.index.Resolve(key)
	if !ok {
		return "[" + key + "]"
	}
	return style.Inline(rec, c.index.Number(key), styleName)
}

// FormatBibliography renders a newline-joined bibliography. A nil keys
// slice selects every indexed record; otherwise the records whose keys
// appear in keys are kept, unresolved keys are silently dropped, and
// the subset keeps parse order. Entries are renumbered 1..N by their
// position in the emitted subset.
func (c *Coordinator) FormatBibliography(keys []string, styleName string) string {
	records := c.index.records
	if keys != nil {
		want := make(map[string]bool, len(keys))
		for _, key := range keys {
			want[key] = true
		}
		subset := make([]bibtex.Record, 0, len(keys))
		for _, rec := range records {
			if want[rec.Key] {
				subset = append(subset, rec)
			}
		}
		records = subset
	}

	entries := make([]string, 0, len(records))
	for i, rec := range records {
		entries = append(entries, style.Entry(rec, i+1, styleName))
	}
	return strings.Join(entries, "\n")
}

// ExtractKeys walks the document tree depth-first and collects citation
// keys: first-class citation nodes count anywhere, citation-reference
// nodes only inside a paragraph. Keys are deduplicated, keeping first
// discovery order.
func (c *Coordinator) ExtractKeys(root *document.Node) []string {
	var keys []string
	seen := make(map[string]bool)

	var walk func(n *document.Node, inParagraph bool)
	walk = func(n *document.Node, inParagraph bool) {
		if n == nil {
			return
		}
		switch n.Type {
		case document.TypeCitation:
			if n.Key != "" && !seen[n.Key] {
				seen[n.Key] = true
				keys = append(keys, n.Key)
			}
		case document.TypeCitationRef:
			if inParagraph && n.Key != "" && !seen[n.Key] {
				seen[n.Key] = true
				keys = append(keys, n.Key)
			}
		}
		for _, child := range n.Children {
			walk(child, inParagraph || n.Type == document.TypeParagraph)
		}
	}
	walk(root, false)
	return keys
}

// ValidateDocument cross-checks a document's citations against the
// bibliography. A cited key missing from the bibliography is an error;
// a bibliography record never cited by the document is a warning. The
// two checks are independent.
func (c *Coordinator) ValidateDocument(root *document.Node) *validation.Result {
	result := validation.NewResult()

	cited := c.ExtractKeys(root)
	citedSet := make(map[string]bool, len(cited))
	for _, key := range cited {
		citedSet[key] = true
		if _, ok := c.index.Resolve(key); ok {
			continue
		}
		suggestion := "add a bibliography entry for this key or correct the reference"
		if match := c.index.closestKey(key); match != "" {
			suggestion = fmt.Sprintf("did you mean %q?", match)
		}
		result.AddError(validation.Issue{
			Code:       validation.CodeCitationUnresolved,
			Message:    fmt.Sprintf("citation %q does not resolve against the bibliography", key),
			Key:        key,
			Suggestion: suggestion,
		})
	}

	for _, rec := range c.index.records {
		if !citedSet[rec.Key] {
			result.AddWarning(validation.Issue{
				Code:    validation.CodeCitationUnused,
				Message: fmt.Sprintf("bibliography entry %q is never cited", rec.Key),
				Key:     rec.Key,
			})
		}
	}
	return result
}

// Resolved pairs a citation key with its bibliography record.
type Resolved struct {
	Key    string        `json:"key"`
	Record bibtex.Record `json:"record"`
}

// Report partitions a set of citation keys into those that resolve
// against the index and those that do not.
type Report struct {
	Resolved   []Resolved `json:"resolved"`
	Unresolved []string   `json:"unresolved"`
}

// Resolution resolves each key in order and reports the outcome. Both
// report slices are always non-nil.
func (c *Coordinator) Resolution(keys []string) Report {
	report := Report{Resolved: []Resolved{}, Unresolved: []string{}}
	for _, key := range keys {
		if rec, ok := c.index.Resolve(key); ok {
			report.Resolved = append(report.Resolved, Resolved{Key: key, Record: rec})
		} else {
			report.Unresolved = append(report.Unresolved, key)
		}
	}
	return report
}
