package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// citeRefRe matches a citation group like [@smith2020] or
// [@smith2020; @doe2021].
var citeRefRe = regexp.MustCompile(`\[@[^\]]+\]`)

// ParseMarkdown converts a Markdown manuscript into a document tree.
// An optional leading YAML frontmatter block becomes the document's
// Meta; citation groups in the prose become citation nodes.
func ParseMarkdown(src []byte) (*Document, error) {
	meta, body, err := splitFrontmatter(src)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	return &Document{
		Meta: meta,
		Root: &Node{Type: TypeDocument, Children: convertChildren(root, body)},
	}, nil
}

// splitFrontmatter peels a leading "---" YAML block off src. A missing
// or unterminated block yields zero metadata and the whole input as the
// body; only malformed YAML inside a terminated block is an error.
func splitFrontmatter(src []byte) (Meta, []byte, error) {
	var meta Meta

	lines := strings.SplitAfter(string(src), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != "---" {
		return meta, src, nil
	}

	for i := 1; i < len(lines); i++ {
		marker := strings.TrimRight(lines[i], "\r\n")
		if marker != "---" && marker != "..." {
			continue
		}
		block := strings.Join(lines[1:i], "")
		if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
			return Meta{}, nil, fmt.Errorf("parsing frontmatter: %w", err)
		}
		return meta, []byte(strings.Join(lines[i+1:], "")), nil
	}

	return meta, src, nil
}

func convertChildren(parent gmast.Node, src []byte) []*Node {
	var out []*Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, convertNode(child, src)...)
	}
	return out
}

// convertNode maps one Goldmark block to zero or more tree nodes.
// Containers with no mapping of their own (lists, quotes) are flattened
// into their converted children.
func convertNode(n gmast.Node, src []byte) []*Node {
	switch block := n.(type) {
	case *gmast.Heading:
		return []*Node{{
			Type:  TypeSection,
			Level: block.Level,
			Text:  plainText(block, src),
		}}
	case *gmast.Paragraph:
		return paragraphNodes(block, src)
	case *gmast.TextBlock:
		return paragraphNodes(block, src)
	default:
		return convertChildren(n, src)
	}
}

// paragraphNodes converts a paragraph's inline text, splitting [@key]
// citation groups out of the prose. A paragraph holding nothing but
// citations becomes first-class citation nodes; otherwise the paragraph
// carries its text runs and citation references as children.
func paragraphNodes(block gmast.Node, src []byte) []*Node {
	raw := plainText(block, src)

	matches := citeRefRe.FindAllStringIndex(raw, -1)
	if len(matches) == 0 {
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		return []*Node{{
			Type:     TypeParagraph,
			Children: []*Node{{Type: TypeText, Text: raw}},
		}}
	}

	var children []*Node
	onlyCitations := true
	last := 0
	for _, m := range matches {
		if lead := raw[last:m[0]]; strings.TrimSpace(lead) != "" {
			children = append(children, &Node{Type: TypeText, Text: lead})
			onlyCitations = false
		}
		for _, key := range splitCitationGroup(raw[m[0]:m[1]]) {
			children = append(children, &Node{Type: TypeCitationRef, Key: key})
		}
		last = m[1]
	}
	if tail := raw[last:]; strings.TrimSpace(tail) != "" {
		children = append(children, &Node{Type: TypeText, Text: tail})
		onlyCitations = false
	}

	if onlyCitations {
		for _, c := range children {
			c.Type = TypeCitation
		}
		return children
	}
	return []*Node{{Type: TypeParagraph, Children: children}}
}

// splitCitationGroup turns "[@a; @b]" into its keys.
func splitCitationGroup(group string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(group, "["), "]")
	var keys []string
	for _, part := range strings.Split(inner, ";") {
		part = strings.TrimPrefix(strings.TrimSpace(part), "@")
		if part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}

// plainText flattens an inline subtree to its literal text, joining
// line breaks with single spaces.
func plainText(n gmast.Node, src []byte) string {
	var b strings.Builder
	collectText(n, src, &b)
	return b.String()
}

func collectText(n gmast.Node, src []byte, b *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch inline := child.(type) {
		case *gmast.Text:
			b.Write(inline.Segment.Value(src))
			if inline.SoftLineBreak() || inline.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(inline.Value)
		default:
			collectText(child, src, b)
		}
	}
}
