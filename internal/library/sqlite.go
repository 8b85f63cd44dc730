// Package library maintains the persistent, queryable view of a
// bibliography. The .bib file stays the source of truth; the SQLite
// database here is an ephemeral cache rebuilt from it on demand.
package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/TresPies-source/citelib/internal/bibtex"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Entry is a stored record together with its citation number (the
// 1-based position of the key's first occurrence in the source).
type Entry struct {
	Pos    int           `json:"pos"`
	Record bibtex.Record `json:"record"`
}

// selectRecordFields contains the standard field list for SELECT queries.
const selectRecordFields = `key, pos, kind, title, year,
	journal, booktitle, publisher, volume, number, pages,
	doi, url, accessed, authors_json, fields_json`

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per distinct citation key
		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			pos INTEGER NOT NULL,
			kind TEXT NOT NULL,
			title TEXT,
			year INTEGER NOT NULL,
			journal TEXT,
			booktitle TEXT,
			publisher TEXT,
			volume TEXT,
			number TEXT,
			pages TEXT,
			doi TEXT,
			url TEXT,
			accessed TEXT,
			authors_json TEXT NOT NULL,
			fields_json TEXT
		);

		-- Index for DOI lookups
		CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			key,
			title,
			authors_text,
			venue,
			year
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the database and repopulates it from a bibliography
// file. Duplicate keys collapse to one row: the last occurrence wins
// for content while pos keeps the first occurrence's citation number.
// Returns the number of rows stored.
func (d *DB) Rebuild(bibPath string) (int, error) {
	data, err := os.ReadFile(bibPath)
	if err != nil {
		return 0, fmt.Errorf("reading bibliography: %w", err)
	}
	records := bibtex.Parse(string(data))

	var order []string
	pos := make(map[string]int, len(records))
	latest := make(map[string]bibtex.Record, len(records))
	for _, rec := range records {
		if _, ok := pos[rec.Key]; !ok {
			pos[rec.Key] = len(order) + 1
			order = append(order, rec.Key)
		}
		latest[rec.Key] = rec
	}

	if _, err := d.db.Exec("DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clearing records table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM records_fts"); err != nil {
		return 0, fmt.Errorf("clearing records_fts table: %w", err)
	}

	recordStmt, err := d.db.Prepare(`
		INSERT INTO records (
			key, pos, kind, title, year,
			journal, booktitle, publisher, volume, number, pages,
			doi, url, accessed, authors_json, fields_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing records insert: %w", err)
	}
	defer recordStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO records_fts (key, title, authors_text, venue, year)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, key := range order {
		rec := latest[key]

		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return 0, fmt.Errorf("marshaling authors for %s: %w", key, err)
		}
		var fieldsJSON []byte
		if len(rec.Fields) > 0 {
			fieldsJSON, err = json.Marshal(rec.Fields)
			if err != nil {
				return 0, fmt.Errorf("marshaling fields for %s: %w", key, err)
			}
		}

		_, err = recordStmt.Exec(
			rec.Key, pos[key], string(rec.Kind), nullableStringValue(rec.Title), rec.Year,
			nullableStringValue(rec.Journal), nullableStringValue(rec.BookTitle),
			nullableStringValue(rec.Publisher), nullableStringValue(rec.Volume),
			nullableStringValue(rec.Number), nullableStringValue(rec.Pages),
			nullableStringValue(rec.DOI), nullableStringValue(rec.URL),
			nullableStringValue(rec.Accessed),
			string(authorsJSON), nullableString(fieldsJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %s: %w", key, err)
		}

		year := ""
		if rec.Year != 0 {
			year = strconv.Itoa(rec.Year)
		}
		_, err = ftsStmt.Exec(rec.Key, rec.Title, strings.Join(rec.Authors, ", "), rec.Venue(), year)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", key, err)
		}
	}

	return len(order), nil
}

// GetByKey retrieves a record by its citation key.
func (d *DB) GetByKey(key string) (*Entry, error) {
	row := d.db.QueryRow(`SELECT `+selectRecordFields+` FROM records WHERE key = ?`, key)
	return scanRecord(row)
}

// GetByDOI retrieves a record by DOI, case-insensitively.
func (d *DB) GetByDOI(doi string) (*Entry, error) {
	row := d.db.QueryRow(`SELECT `+selectRecordFields+` FROM records WHERE doi = ? COLLATE NOCASE`, doi)
	return scanRecord(row)
}

// Search performs a full-text search and returns matching entries in
// citation-number order.
func (d *DB) Search(query string, limit int) ([]Entry, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectRecordFields+`
		FROM records
		WHERE key IN (SELECT key FROM records_fts WHERE records_fts MATCH ?)
		ORDER BY pos
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SearchField searches a single FTS column. Supported fields are
// "author" and "title".
func (d *DB) SearchField(field, value string, limit int) ([]Entry, error) {
	var ftsQuery string
	switch field {
	case "author":
		ftsQuery = "authors_text:" + prepareFTSQuery(value)
	case "title":
		ftsQuery = "title:" + prepareFTSQuery(value)
	default:
		return nil, fmt.Errorf("unsupported search field: %s", field)
	}

	rows, err := d.db.Query(`
		SELECT `+selectRecordFields+`
		FROM records
		WHERE key IN (SELECT key FROM records_fts WHERE records_fts MATCH ?)
		ORDER BY pos
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching field %s: %w", field, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SearchFilters contains optional filters for SearchWithFilters.
//
// Text filters go through FTS5; year, venue, and DOI are plain SQL.
// All specified filters must match (AND logic). Revisit the approach if
// this struct outgrows ~10 fields or filters need OR/negation.
type SearchFilters struct {
	Keyword  string   // General keyword search across all FTS columns
	Authors  []string // Author names (AND logic, prefix matching)
	YearFrom int      // Minimum publication year (0 = no minimum)
	YearTo   int      // Maximum publication year (0 = no maximum)
	Title    string   // Search in title only (FTS)
	Venue    string   // Filter by venue (SQL LIKE, case-insensitive)
	DOI      string   // Exact DOI match (SQL)
}

// SearchWithFilters performs a search with multiple optional filters.
// Entries matching ALL specified criteria are returned in
// citation-number order.
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]Entry, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	if filters.Title != "" {
		ftsTerms = append(ftsTerms, "title:"+prepareFTSQuery(filters.Title))
	}
	for _, author := range filters.Authors {
		if author != "" {
			ftsTerms = append(ftsTerms, "authors_text:"+prepareAuthorQuery(author))
		}
	}

	var query string
	if len(ftsTerms) > 0 {
		ftsQuery := strings.Join(ftsTerms, " AND ")
		query = `SELECT ` + selectRecordFields + `
			FROM records
			WHERE key IN (SELECT key FROM records_fts WHERE records_fts MATCH ?)`
		args = append(args, ftsQuery)
	} else {
		query = `SELECT ` + selectRecordFields + ` FROM records WHERE 1=1`
	}

	if filters.YearFrom > 0 {
		query += " AND year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Venue != "" {
		query += " AND (journal LIKE ? OR booktitle LIKE ?)"
		like := "%" + filters.Venue + "%"
		args = append(args, like, like)
	}
	if filters.DOI != "" {
		query += " AND doi = ? COLLATE NOCASE"
		args = append(args, filters.DOI)
	}

	query += " ORDER BY pos LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// prepareAuthorQuery prepares an author name for FTS5 search with
// prefix matching, so "Tim" matches "Timothy".
func prepareAuthorQuery(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return author
	}

	parts := strings.Fields(author)
	var terms []string
	for _, part := range parts {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}

	// Use OR for multi-word author queries (match any part)
	return "(" + strings.Join(terms, " OR ") + ")"
}

// ListAll returns all entries in citation-number order, optionally
// limited.
func (d *DB) ListAll(limit int) ([]Entry, error) {
	query := `SELECT ` + selectRecordFields + ` FROM records ORDER BY pos`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of stored records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*Entry, error) {
	var entry Entry
	var kind string
	var title, journal, booktitle, publisher sql.NullString
	var volume, number, pages, doi, url, accessed sql.NullString
	var authorsJSON, fieldsJSON sql.NullString

	err := s.Scan(
		&entry.Record.Key, &entry.Pos, &kind, &title, &entry.Record.Year,
		&journal, &booktitle, &publisher, &volume, &number, &pages,
		&doi, &url, &accessed, &authorsJSON, &fieldsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	entry.Record.Kind = bibtex.Kind(kind)
	entry.Record.Title = title.String
	entry.Record.Journal = journal.String
	entry.Record.BookTitle = booktitle.String
	entry.Record.Publisher = publisher.String
	entry.Record.Volume = volume.String
	entry.Record.Number = number.String
	entry.Record.Pages = pages.String
	entry.Record.DOI = doi.String
	entry.Record.URL = url.String
	entry.Record.Accessed = accessed.String

	if authorsJSON.Valid && authorsJSON.String != "" {
		if err := json.Unmarshal([]byte(authorsJSON.String), &entry.Record.Authors); err != nil {
			return nil, fmt.Errorf("parsing authors JSON for %s: %w", entry.Record.Key, err)
		}
	}
	if fieldsJSON.Valid && fieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(fieldsJSON.String), &entry.Record.Fields); err != nil {
			return nil, fmt.Errorf("parsing fields JSON for %s: %w", entry.Record.Key, err)
		}
	}

	return &entry, nil
}

func scanRecords(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		entry, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, rows.Err()
}

func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If the query contains FTS5 operators, treat it as one phrase
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
