package style

import (
	"strings"
	"testing"

	"github.com/TresPies-source/citelib/internal/bibtex"
)

func TestBuiltin(t *testing.T) {
	names := Builtin()
	for _, want := range []string{"ieee", "apa", "chicago", "mla", "harvard", "vancouver", "nature", "arxiv"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Builtin() missing %q: %v", want, names)
		}
	}

	// Callers must not be able to mutate the built-in list.
	names[0] = "mangled"
	if Builtin()[0] != "ieee" {
		t.Error("Builtin() returned a shared slice")
	}
}

func TestDispatch_CaseInsensitive(t *testing.T) {
	rec := bibtex.Record{Authors: []string{"Smith, John"}, Year: 2020, Title: "T"}

	if got := Inline(rec, 2, "IEEE"); got != "[2]" {
		t.Errorf("Inline(IEEE) = %q, want [2]", got)
	}
	if got := Inline(rec, 2, " Apa "); got != "(Smith, 2020)" {
		t.Errorf("Inline( Apa ) = %q, want (Smith, 2020)", got)
	}
}

func TestDispatch_UnknownStyleFallsBack(t *testing.T) {
	rec := bibtex.Record{Key: "k1", Authors: []string{"Smith, John"}, Year: 2020, Title: "T"}

	wantInline := "(Smith, 2020)"
	wantEntry := `Smith, John. "T." 2020.`

	for _, name := range []string{"chicago", "mla", "harvard", "vancouver", "nature", "arxiv", "bogus", ""} {
		t.Run("style "+name, func(t *testing.T) {
			if got := Inline(rec, 1, name); got != wantInline {
				t.Errorf("Inline(%q) = %q, want %q", name, got, wantInline)
			}
			if got := Entry(rec, 1, name); got != wantEntry {
				t.Errorf("Entry(%q) = %q, want %q", name, got, wantEntry)
			}
		})
	}
}

func TestGenericInline_FallsBackToKey(t *testing.T) {
	rec := bibtex.Record{Key: "nodoc1999", Year: 1999}
	if got := Inline(rec, 1, "chicago"); got != "(nodoc1999, 1999)" {
		t.Errorf("Inline() = %q, want (nodoc1999, 1999)", got)
	}
}

func TestGenericEntry_UnknownAuthors(t *testing.T) {
	rec := bibtex.Record{Key: "k", Title: "Orphan Work"}
	got := Entry(rec, 1, "mla")
	want := `Unknown. "Orphan Work." n.d.`
	if got != want {
		t.Errorf("Entry() = %q, want %q", got, want)
	}
}

func TestEtAlThreshold(t *testing.T) {
	two := bibtex.Record{Authors: []string{"Smith, John", "Doe, Jane"}, Year: 2020}
	three := bibtex.Record{Authors: []string{"Smith, John", "Doe, Jane", "Lee, Kai"}, Year: 2020}

	if got := Inline(two, 1, APA); strings.Contains(got, "et al") {
		t.Errorf("two authors must render both names, got %q", got)
	}
	if got := Inline(three, 1, APA); got != "(Smith et al., 2020)" {
		t.Errorf("three authors must collapse to et al., got %q", got)
	}
}
