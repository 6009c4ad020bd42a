// Package corpus stores passage collections in SQLite and searches them
// without regard to diacritics.
package corpus

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hazyhaar/tashkeel/pkg/diacritics"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound  = errors.New("passage not found")
	ErrEmptyTerm = errors.New("search term is empty after removing diacritics")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Store keeps collections and passages in SQLite.
type Store struct {
	db *sql.DB
}

// CollectionInfo is the public metadata of a stored collection.
type CollectionInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Language  string `json:"language"`
	Source    string `json:"source"`
	License   string `json:"license"`
	Passages  int    `json:"passages"`
	UpdatedAt int64  `json:"updated_at"`
}

// SearchOptions are optional filters for Search.
type SearchOptions struct {
	Collections []string
	Limit       int
}

// Hit is a passage containing the term, with the first match span.
type Hit struct {
	Passage
	Match   diacritics.MatchResult `json:"match"`
	Matched string                 `json:"matched"`
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS collections (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	language    TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL DEFAULT '',
	license     TEXT NOT NULL DEFAULT '',
	updated_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS passages (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	collection_id  TEXT NOT NULL,
	title          TEXT NOT NULL DEFAULT '',
	content        TEXT NOT NULL,
	stripped       TEXT NOT NULL,
	created_at     INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_passages_collection ON passages(collection_id)`,
}

// OpenStore opens (or creates) the SQLite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceCollection stores c, replacing any passages previously stored under its ID.
func (s *Store) ReplaceCollection(c *Collection) (err error) {
	m := c.Manifest
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().Unix()
	if _, err = tx.Exec(`INSERT INTO collections (id, title, language, source, license, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, language = excluded.language,
			source = excluded.source, license = excluded.license, updated_at = excluded.updated_at`,
		m.ID, m.Title, m.Language, m.Source, m.License, now); err != nil {
		return fmt.Errorf("upsert collection %s: %w", m.ID, err)
	}
	if _, err = tx.Exec(`DELETE FROM passages WHERE collection_id = ?`, m.ID); err != nil {
		return fmt.Errorf("clear collection %s: %w", m.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO passages (collection_id, title, content, stripped, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, p := range c.Passages {
		if _, err = stmt.Exec(m.ID, p.Title, p.Content, diacritics.Strip(p.Content), now); err != nil {
			return fmt.Errorf("insert passage: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// AddPassage stores a single passage and returns its ID.
// The collection row is created on first use.
func (s *Store) AddPassage(collectionID, title, content string) (int64, error) {
	if collectionID == "" {
		return 0, fmt.Errorf("add passage: missing collection")
	}
	now := time.Now().Unix()
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO collections (id, updated_at) VALUES (?, ?)`, collectionID, now); err != nil {
		return 0, fmt.Errorf("ensure collection %s: %w", collectionID, err)
	}
	res, err := s.db.Exec(`INSERT INTO passages (collection_id, title, content, stripped, created_at)
		VALUES (?, ?, ?, ?, ?)`, collectionID, title, content, diacritics.Strip(content), now)
	if err != nil {
		return 0, fmt.Errorf("insert passage: %w", err)
	}
	return res.LastInsertId()
}

// Passage returns the passage with the given ID.
func (s *Store) Passage(id int64) (*Passage, error) {
	var p Passage
	err := s.db.QueryRow(`SELECT id, collection_id, title, content FROM passages WHERE id = ?`, id).
		Scan(&p.ID, &p.Collection, &p.Title, &p.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("passage %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get passage %d: %w", id, err)
	}
	return &p, nil
}

// ListCollections returns all collections ordered by ID, with passage counts.
func (s *Store) ListCollections() ([]CollectionInfo, error) {
	rows, err := s.db.Query(`SELECT c.id, c.title, c.language, c.source, c.license, c.updated_at, COUNT(p.id)
		FROM collections c LEFT JOIN passages p ON p.collection_id = c.id
		GROUP BY c.id ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	infos := []CollectionInfo{}
	for rows.Next() {
		var ci CollectionInfo
		if err := rows.Scan(&ci.ID, &ci.Title, &ci.Language, &ci.Source, &ci.License, &ci.UpdatedAt, &ci.Passages); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		infos = append(infos, ci)
	}
	return infos, rows.Err()
}

// Search returns passages containing term, ignoring diacritics, in ID order.
// Each hit carries the first match span within that passage.
func (s *Store) Search(term string, opts *SearchOptions) ([]Hit, error) {
	stripped := diacritics.Strip(term)
	if stripped == "" {
		return nil, ErrEmptyTerm
	}

	limit := DefaultLimit
	var collections []string
	if opts != nil {
		if opts.Limit > 0 {
			limit = min(opts.Limit, MaxLimit)
		}
		collections = opts.Collections
	}

	q := `SELECT id, collection_id, title, content FROM passages WHERE instr(stripped, ?) > 0`
	args := []any{stripped}
	if len(collections) > 0 {
		q += ` AND collection_id IN (` + strings.TrimSuffix(strings.Repeat("?,", len(collections)), ",") + `)`
		for _, c := range collections {
			args = append(args, c)
		}
	}
	q += ` ORDER BY id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("search passages: %w", err)
	}
	defer rows.Close()

	hits := []Hit{}
	for rows.Next() {
		var p Passage
		if err := rows.Scan(&p.ID, &p.Collection, &p.Title, &p.Content); err != nil {
			return nil, fmt.Errorf("scan passage: %w", err)
		}
		m := diacritics.Search(p.Content, term)
		if !m.Found {
			continue
		}
		_, matched, _ := diacritics.Split(p.Content, m)
		hits = append(hits, Hit{Passage: p, Match: m, Matched: matched})
	}
	return hits, rows.Err()
}
