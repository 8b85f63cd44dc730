package library

import (
	"os"
	"path/filepath"
	"testing"
)

const testBibliography = `@article{smith2020,
  author  = {Smith, John and Doe, Jane},
  title   = {Quantum Computing in the Wild},
  journal = {Nature Computing},
  year    = {2020},
  volume  = {42},
  number  = {3},
  pages   = {100--115},
  doi     = {10.1234/nc.2020.42},
  note    = {Preprint}
}

@book{knuth1997,
  author    = {Knuth, Donald E.},
  title     = {The Art of Computer Programming},
  publisher = {Addison-Wesley},
  year      = {1997}
}

@inproceedings{lee2023,
  author    = {Lee, Kyung and Park, Min and Cho, Eun},
  title     = {Edge Inference at Scale},
  booktitle = {Proceedings of MLSys},
  year      = {2023},
  pages     = {55--67}
}

@misc{zhang2019,
  author = {Zhang, Wei},
  title  = {Computing at the Edge},
  year   = {2019},
  url    = {https://example.org/zhang}
}
`

// setupTestDB creates a test database rebuilt from a bibliography file
// with four records.
func setupTestDB(t *testing.T) (*DB, string, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")
	bibPath := filepath.Join(tmpDir, "references.bib")

	if err := os.WriteFile(bibPath, []byte(testBibliography), 0644); err != nil {
		t.Fatalf("Failed to write test bibliography: %v", err)
	}

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	if _, err := db.Rebuild(bibPath); err != nil {
		db.Close()
		t.Fatalf("Failed to rebuild DB: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, tmpDir, cleanup
}

func TestOpen_CreatesSchema(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	// Verify file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Open() did not create database file")
	}
}

func TestDB_Rebuild(t *testing.T) {
	db, tmpDir, cleanup := setupTestDB(t)
	defer cleanup()

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 4 {
		t.Errorf("Count() = %d, want 4", count)
	}

	// Test rebuild overwrites
	bibPath := filepath.Join(tmpDir, "references.bib")
	newBib := `@misc{solo2024,
  author = {Solo, Han},
  title  = {The Only Entry},
  year   = {2024}
}
`
	if err := os.WriteFile(bibPath, []byte(newBib), 0644); err != nil {
		t.Fatalf("Failed to rewrite bibliography: %v", err)
	}

	rebuilt, err := db.Rebuild(bibPath)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if rebuilt != 1 {
		t.Errorf("Rebuild() = %d, want 1", rebuilt)
	}

	count, _ = db.Count()
	if count != 1 {
		t.Errorf("After rebuild, Count() = %d, want 1", count)
	}
}

func TestDB_Rebuild_DuplicateKeys(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")
	bibPath := filepath.Join(tmpDir, "references.bib")

	// smith2020 appears twice; the later entry supplies the content
	// while the citation number stays that of the first occurrence.
	dupBib := `@article{smith2020,
  author = {Smith, John},
  title  = {First Version},
  year   = {2020}
}

@book{knuth1997,
  author    = {Knuth, Donald E.},
  title     = {The Art of Computer Programming},
  publisher = {Addison-Wesley},
  year      = {1997}
}

@article{smith2020,
  author = {Smith, John},
  title  = {Second Version},
  year   = {2021}
}
`
	if err := os.WriteFile(bibPath, []byte(dupBib), 0644); err != nil {
		t.Fatalf("Failed to write bibliography: %v", err)
	}

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	count, err := db.Rebuild(bibPath)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Rebuild() = %d, want 2", count)
	}

	entry, err := db.GetByKey("smith2020")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if entry == nil {
		t.Fatal("GetByKey() returned nil")
	}
	if entry.Record.Title != "Second Version" {
		t.Errorf("Title = %q, want Second Version", entry.Record.Title)
	}
	if entry.Record.Year != 2021 {
		t.Errorf("Year = %d, want 2021", entry.Record.Year)
	}
	if entry.Pos != 1 {
		t.Errorf("Pos = %d, want 1", entry.Pos)
	}
}

func TestDB_GetByKey(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		key       string
		wantFound bool
		wantTitle string
		wantPos   int
	}{
		{"smith2020", true, "Quantum Computing in the Wild", 1},
		{"lee2023", true, "Edge Inference at Scale", 3},
		{"zhang2019", true, "Computing at the Edge", 4},
		{"notfound", false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			entry, err := db.GetByKey(tt.key)
			if err != nil {
				t.Fatalf("GetByKey() error = %v", err)
			}

			if tt.wantFound {
				if entry == nil {
					t.Error("GetByKey() returned nil, want entry")
					return
				}
				if entry.Record.Title != tt.wantTitle {
					t.Errorf("GetByKey() title = %q, want %q", entry.Record.Title, tt.wantTitle)
				}
				if entry.Pos != tt.wantPos {
					t.Errorf("GetByKey() pos = %d, want %d", entry.Pos, tt.wantPos)
				}
			} else {
				if entry != nil {
					t.Errorf("GetByKey() returned %+v, want nil", entry)
				}
			}
		})
	}
}

func TestDB_GetByKey_FullRecord(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	entry, err := db.GetByKey("smith2020")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if entry == nil {
		t.Fatal("GetByKey() returned nil")
	}

	// Verify all fields
	rec := entry.Record
	if rec.Key != "smith2020" {
		t.Errorf("Key = %q, want smith2020", rec.Key)
	}
	if rec.Kind != "article" {
		t.Errorf("Kind = %q, want article", rec.Kind)
	}
	if rec.Journal != "Nature Computing" {
		t.Errorf("Journal = %q, want Nature Computing", rec.Journal)
	}
	if rec.Year != 2020 {
		t.Errorf("Year = %d, want 2020", rec.Year)
	}
	if rec.Volume != "42" || rec.Number != "3" {
		t.Errorf("Volume/Number = %q/%q, want 42/3", rec.Volume, rec.Number)
	}
	if rec.Pages != "100--115" {
		t.Errorf("Pages = %q, want 100--115", rec.Pages)
	}
	if rec.DOI != "10.1234/nc.2020.42" {
		t.Errorf("DOI = %q, want 10.1234/nc.2020.42", rec.DOI)
	}
	if len(rec.Authors) != 2 {
		t.Fatalf("Authors len = %d, want 2", len(rec.Authors))
	}
	if rec.Authors[0] != "Smith, John" || rec.Authors[1] != "Doe, Jane" {
		t.Errorf("Authors = %v, want [Smith, John / Doe, Jane]", rec.Authors)
	}
	if rec.Fields["note"] != "Preprint" {
		t.Errorf("Fields[note] = %q, want Preprint", rec.Fields["note"])
	}
}

func TestDB_GetByDOI(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name    string
		doi     string
		wantKey string
	}{
		{"exact", "10.1234/nc.2020.42", "smith2020"},
		{"case-insensitive", "10.1234/NC.2020.42", "smith2020"},
		{"not found", "10.9999/nothing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := db.GetByDOI(tt.doi)
			if err != nil {
				t.Fatalf("GetByDOI() error = %v", err)
			}

			if tt.wantKey == "" {
				if entry != nil {
					t.Errorf("GetByDOI() returned %+v, want nil", entry)
				}
				return
			}
			if entry == nil {
				t.Fatal("GetByDOI() returned nil, want entry")
			}
			if entry.Record.Key != tt.wantKey {
				t.Errorf("GetByDOI() key = %q, want %q", entry.Record.Key, tt.wantKey)
			}
		})
	}
}

func TestDB_Search(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		query    string
		limit    int
		wantKeys []string
		wantMin  int // Minimum expected results (for flexibility)
	}{
		// Title search
		{"quantum", 10, []string{"smith2020"}, 1},
		{"inference", 10, []string{"lee2023"}, 1},

		// Author search
		{"knuth", 10, []string{"knuth1997"}, 1},
		{"park", 10, []string{"lee2023"}, 1},

		// Venue search
		{"mlsys", 10, []string{"lee2023"}, 1},

		// Year search
		{"2019", 10, []string{"zhang2019"}, 1},

		// Combined author and year search
		{"smith 2020", 10, []string{"smith2020"}, 1},

		// No results
		{"nonexistent query xyz", 10, nil, 0},

		// Limit
		{"computing", 1, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			entries, err := db.Search(tt.query, tt.limit)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			if len(entries) < tt.wantMin {
				t.Errorf("Search(%q) returned %d results, want at least %d", tt.query, len(entries), tt.wantMin)
			}

			if tt.wantKeys != nil {
				for _, wantKey := range tt.wantKeys {
					found := false
					for _, entry := range entries {
						if entry.Record.Key == wantKey {
							found = true
							break
						}
					}
					if !found {
						t.Errorf("Search(%q) missing expected key %q", tt.query, wantKey)
					}
				}
			}
		})
	}
}

func TestDB_Search_CitationOrder(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	// "computing" matches smith2020 (pos 1) and zhang2019 (pos 4)
	entries, err := db.Search("computing", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(entries))
	}
	if entries[0].Record.Key != "smith2020" || entries[1].Record.Key != "zhang2019" {
		t.Errorf("Search() order = [%s %s], want [smith2020 zhang2019]",
			entries[0].Record.Key, entries[1].Record.Key)
	}
}

func TestDB_SearchField(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	// Author search
	entries, err := db.SearchField("author", "Knuth", 10)
	if err != nil {
		t.Fatalf("SearchField(author) error = %v", err)
	}
	if len(entries) != 1 || entries[0].Record.Key != "knuth1997" {
		t.Errorf("SearchField(author, Knuth) = %v, want [knuth1997]", entries)
	}

	// Title search
	entries, err = db.SearchField("title", "Quantum", 10)
	if err != nil {
		t.Fatalf("SearchField(title) error = %v", err)
	}
	if len(entries) != 1 || entries[0].Record.Key != "smith2020" {
		t.Errorf("SearchField(title, Quantum) = %v, want [smith2020]", entries)
	}

	// Title terms must not leak into author matching
	entries, err = db.SearchField("author", "Quantum", 10)
	if err != nil {
		t.Fatalf("SearchField(author) error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("SearchField(author, Quantum) = %d results, want 0", len(entries))
	}

	// Invalid field
	if _, err = db.SearchField("invalid", "test", 10); err == nil {
		t.Error("SearchField(invalid) should return error")
	}
}

func TestDB_SearchWithFilters(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name     string
		filters  SearchFilters
		limit    int
		wantKeys []string
		wantMin  int
	}{
		{
			name:     "keyword only",
			filters:  SearchFilters{Keyword: "quantum"},
			limit:    10,
			wantKeys: []string{"smith2020"},
			wantMin:  1,
		},
		{
			name:     "single author",
			filters:  SearchFilters{Authors: []string{"Knuth"}},
			limit:    10,
			wantKeys: []string{"knuth1997"},
			wantMin:  1,
		},
		{
			name:    "author prefix matching",
			filters: SearchFilters{Authors: []string{"Pa"}}, // Should match Park
			limit:   10,
			wantMin: 1,
		},
		{
			name:     "multiple authors (AND logic)",
			filters:  SearchFilters{Authors: []string{"Lee", "Cho"}},
			limit:    10,
			wantKeys: []string{"lee2023"},
			wantMin:  1,
		},
		{
			name:     "year exact",
			filters:  SearchFilters{YearFrom: 2020, YearTo: 2020},
			limit:    10,
			wantKeys: []string{"smith2020"},
			wantMin:  1,
		},
		{
			name:    "year range",
			filters: SearchFilters{YearFrom: 2019, YearTo: 2023},
			limit:   10,
			wantMin: 3,
		},
		{
			name:    "year from only (open-ended)",
			filters: SearchFilters{YearFrom: 2020},
			limit:   10,
			wantMin: 2, // 2020 and 2023
		},
		{
			name:     "year to only (open-ended)",
			filters:  SearchFilters{YearTo: 1999},
			limit:    10,
			wantKeys: []string{"knuth1997"},
			wantMin:  1,
		},
		{
			name:     "author and year combined",
			filters:  SearchFilters{Authors: []string{"Smith"}, YearFrom: 2020, YearTo: 2020},
			limit:    10,
			wantKeys: []string{"smith2020"},
			wantMin:  1,
		},
		{
			name:     "keyword and author combined",
			filters:  SearchFilters{Keyword: "edge", Authors: []string{"Zhang"}},
			limit:    10,
			wantKeys: []string{"zhang2019"},
			wantMin:  1,
		},
		{
			name:     "title search",
			filters:  SearchFilters{Title: "Art"},
			limit:    10,
			wantKeys: []string{"knuth1997"},
			wantMin:  1,
		},
		{
			name:     "venue filter on journal",
			filters:  SearchFilters{Venue: "Nature"},
			limit:    10,
			wantKeys: []string{"smith2020"},
			wantMin:  1,
		},
		{
			name:     "venue filter on booktitle",
			filters:  SearchFilters{Venue: "MLSys"},
			limit:    10,
			wantKeys: []string{"lee2023"},
			wantMin:  1,
		},
		{
			name:     "DOI exact match",
			filters:  SearchFilters{DOI: "10.1234/nc.2020.42"},
			limit:    10,
			wantKeys: []string{"smith2020"},
			wantMin:  1,
		},
		{
			name:    "DOI no match",
			filters: SearchFilters{DOI: "10.9999/nothing"},
			limit:   10,
			wantMin: 0,
		},
		{
			name:    "no matches",
			filters: SearchFilters{Authors: []string{"NonexistentAuthor"}},
			limit:   10,
			wantMin: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := db.SearchWithFilters(tt.filters, tt.limit)
			if err != nil {
				t.Fatalf("SearchWithFilters() error = %v", err)
			}

			if len(entries) < tt.wantMin {
				t.Errorf("SearchWithFilters() returned %d results, want at least %d", len(entries), tt.wantMin)
			}

			if tt.wantKeys != nil {
				for _, wantKey := range tt.wantKeys {
					found := false
					for _, entry := range entries {
						if entry.Record.Key == wantKey {
							found = true
							break
						}
					}
					if !found {
						t.Errorf("SearchWithFilters() missing expected key %q", wantKey)
					}
				}
			}
		})
	}
}

func TestDB_ListAll(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	// List all, in citation order
	entries, err := db.ListAll(0)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("ListAll(0) returned %d entries, want 4", len(entries))
	}
	wantOrder := []string{"smith2020", "knuth1997", "lee2023", "zhang2019"}
	for i, want := range wantOrder {
		if entries[i].Record.Key != want {
			t.Errorf("ListAll()[%d] = %q, want %q", i, entries[i].Record.Key, want)
		}
		if entries[i].Pos != i+1 {
			t.Errorf("ListAll()[%d].Pos = %d, want %d", i, entries[i].Pos, i+1)
		}
	}

	// With limit
	entries, err = db.ListAll(2)
	if err != nil {
		t.Fatalf("ListAll(2) error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("ListAll(2) returned %d entries, want 2", len(entries))
	}

	// Limit greater than count
	entries, err = db.ListAll(100)
	if err != nil {
		t.Fatalf("ListAll(100) error = %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("ListAll(100) returned %d entries, want 4", len(entries))
	}
}

func TestDB_Count(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 4 {
		t.Errorf("Count() = %d, want 4", count)
	}
}

func TestDB_EmptyBibliography(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")
	bibPath := filepath.Join(tmpDir, "references.bib")

	if err := os.WriteFile(bibPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to create empty bibliography: %v", err)
	}

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	count, err := db.Rebuild(bibPath)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Rebuild() = %d, want 0", count)
	}

	dbCount, _ := db.Count()
	if dbCount != 0 {
		t.Errorf("Count() = %d, want 0", dbCount)
	}
}

func TestDB_Rebuild_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	_, err = db.Rebuild(filepath.Join(tmpDir, "missing.bib"))
	if err == nil {
		t.Error("Rebuild() with missing file should return error")
	}
}

func TestPrepareFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"two words", "two words"},
		{"  spaces  ", "spaces"},               // Trimmed
		{"", ""},                               // Empty stays empty
		{`with "quotes"`, `"with ""quotes"""`}, // Quotes escaped
		{"special*chars", `"special*chars"`},   // Special chars quoted
		{"term:colon", `"term:colon"`},         // Colon quoted
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := prepareFTSQuery(tt.input)
			if got != tt.want {
				t.Errorf("prepareFTSQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDB_Close(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	// Close should not error
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Operations after close should fail
	_, err = db.Count()
	if err == nil {
		t.Error("Operations after Close() should fail")
	}
}
