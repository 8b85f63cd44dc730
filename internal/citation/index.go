// Package citation resolves and formats the citations of a document
// against one parsed bibliography snapshot.
package citation

import (
	"strconv"
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
)

// Index owns the record set parsed from one bibliography source. It is
// immutable after construction, so concurrent readers need no locking.
//
// Duplicate keys are legal here (validation reports them separately):
// lookup keeps the last record under a key while citation numbering
// follows the first occurrence in parse order.
type Index struct {
	records []bibtex.Record
	byKey   map[string]bibtex.Record
	numbers map[string]int
}

// NewIndex parses source and indexes the resulting records.
func NewIndex(source string) *Index {
	return NewIndexFromRecords(bibtex.Parse(source))
}

// NewIndexFromRecords indexes already-parsed records.
func NewIndexFromRecords(records []bibtex.Record) *Index {
	idx := &Index{
		records: records,
		byKey:   make(map[string]bibtex.Record, len(records)),
		numbers: make(map[string]int, len(records)),
	}
	for i, rec := range records {
		idx.byKey[rec.Key] = rec
		if _, ok := idx.numbers[rec.Key]; !ok {
			idx.numbers[rec.Key] = i + 1
		}
	}
	return idx
}

// Resolve looks up a record by citation key.
func (idx *Index) Resolve(key string) (bibtex.Record, bool) {
	rec, ok := idx.byKey[key]
	return rec, ok
}

// ResolveMultiple resolves each key in order, silently dropping keys
// that do not resolve.
func (idx *Index) ResolveMultiple(keys []string) []bibtex.Record {
	out := make([]bibtex.Record, 0, len(keys))
	for _, key := range keys {
		if rec, ok := idx.byKey[key]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Search returns every record whose title, author list, or year
// contains the query, case-insensitively, in parse order.
func (idx *Index) Search(query string) []bibtex.Record {
	query = strings.ToLower(query)
	var out []bibtex.Record
	for _, rec := range idx.records {
		if matchesQuery(rec, query) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesQuery(rec bibtex.Record, query string) bool {
	if strings.Contains(strings.ToLower(rec.Title), query) {
		return true
	}
	for _, author := range rec.Authors {
		if strings.Contains(strings.ToLower(author), query) {
			return true
		}
	}
	return rec.Year != 0 && strings.Contains(strconv.Itoa(rec.Year), query)
}

// Number returns a key's 1-based citation number: the position of its
// first occurrence in parse order. Absent keys return 0.
func (idx *Index) Number(key string) int {
	return idx.numbers[key]
}

// Records returns the indexed records in parse order.
func (idx *Index) Records() []bibtex.Record {
	out := make([]bibtex.Record, len(idx.records))
	copy(out, idx.records)
	return out
}

// Len reports the number of indexed records, duplicates included.
func (idx *Index) Len() int {
	return len(idx.records)
}

// closestKey returns an indexed key equal to key up to letter case, or
// "" when none exists.
func (idx *Index) closestKey(key string) string {
	lower := strings.ToLower(key)
	for _, rec := range idx.records {
		if strings.ToLower(rec.Key) == lower {
			return rec.Key
		}
	}
	return ""
}
