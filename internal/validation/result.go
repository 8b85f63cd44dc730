// Package validation defines the diagnostics result shared by bibliography
// and document checks.
package validation

// Issue is a single validation finding with a machine-readable code.
type Issue struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Key        string `json:"key,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Issue codes reported across the toolkit.
const (
	CodeUnbalancedBraces   = "UNBALANCED_BRACES"
	CodeDuplicateKey       = "DUPLICATE_KEY"
	CodeMissingTitle       = "MISSING_TITLE"
	CodeMissingAuthor      = "MISSING_AUTHOR"
	CodeMissingYear        = "MISSING_YEAR"
	CodeCitationUnresolved = "CITATION_UNRESOLVED"
	CodeCitationUnused     = "CITATION_UNUSED"
)

// Result collects errors and warnings from one validation pass.
// Errors make Valid false; warnings never do.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// NewResult returns a Result that is valid until an error is added.
// Errors and Warnings are non-nil so JSON output shows arrays, not null.
func NewResult() *Result {
	return &Result{
		Valid:    true,
		Errors:   []Issue{},
		Warnings: []Issue{},
	}
}

// AddError records an error and marks the result invalid.
func (r *Result) AddError(issue Issue) {
	r.Errors = append(r.Errors, issue)
	r.Valid = false
}

// AddWarning records a warning without affecting validity.
func (r *Result) AddWarning(issue Issue) {
	r.Warnings = append(r.Warnings, issue)
}
