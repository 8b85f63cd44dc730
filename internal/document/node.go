// Package document models a manuscript as a tree of typed nodes and
// converts Markdown sources into that tree. The citation layer walks
// the tree; it never sees Markdown directly.
package document

// Node types the citation layer understands. Other types are carried
// through walks untouched.
const (
	TypeDocument    = "document"
	TypeSection     = "section"
	TypeParagraph   = "paragraph"
	TypeText        = "text"
	TypeCitation    = "citation"
	TypeCitationRef = "citation_ref"
)

// Node is one vertex of a document tree. Which fields are meaningful
// depends on Type: sections carry Text and Level, text nodes carry
// Text, citations and citation references carry Key.
type Node struct {
	Type     string  `json:"type"`
	Text     string  `json:"text,omitempty"`
	Key      string  `json:"key,omitempty"`
	Level    int     `json:"level,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Meta is the YAML frontmatter block of a manuscript.
type Meta struct {
	Title        string `yaml:"title" json:"title,omitempty"`
	Bibliography string `yaml:"bibliography" json:"bibliography,omitempty"`
	Style        string `yaml:"style" json:"style,omitempty"`
}

// Document pairs a parsed tree with its frontmatter metadata.
type Document struct {
	Meta Meta  `json:"meta"`
	Root *Node `json:"root"`
}
