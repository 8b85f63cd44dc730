package bibtex

import (
	"fmt"
	"strings"

	"github.com/TresPies-source/citelib/internal/validation"
)

// Validate checks bibliography source text for structural problems.
// It never rejects the text outright: Parse on the same input still
// returns whatever records it can extract. Errors (unbalanced braces,
// duplicate keys) mark the result invalid; missing-field warnings do not.
func Validate(text string) *validation.Result {
	result := validation.NewResult()

	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	if depth != 0 {
		result.AddError(validation.Issue{
			Code:    validation.CodeUnbalancedBraces,
			Message: fmt.Sprintf("unbalanced braces: net depth %+d at end of input", depth),
		})
	}

	seen := make(map[string]bool)
	for _, e := range scanEntries(text) {
		if isDirective(e.Type) {
			continue
		}

		// The first occurrence of a key is never flagged; repeats are.
		if seen[e.Key] {
			result.AddError(validation.Issue{
				Code:    validation.CodeDuplicateKey,
				Key:     e.Key,
				Message: fmt.Sprintf("duplicate citation key %q", e.Key),
			})
		}
		seen[e.Key] = true

		if strings.TrimSpace(e.Fields["title"]) == "" {
			result.AddWarning(validation.Issue{
				Code:    validation.CodeMissingTitle,
				Key:     e.Key,
				Message: fmt.Sprintf("entry %q has no title", e.Key),
			})
		}
		if strings.TrimSpace(e.Fields["author"]) == "" {
			result.AddWarning(validation.Issue{
				Code:    validation.CodeMissingAuthor,
				Key:     e.Key,
				Message: fmt.Sprintf("entry %q has no author", e.Key),
			})
		}
		if strings.TrimSpace(e.Fields["year"]) == "" {
			result.AddWarning(validation.Issue{
				Code:    validation.CodeMissingYear,
				Key:     e.Key,
				Message: fmt.Sprintf("entry %q has no year", e.Key),
			})
		}
	}

	return result
}
