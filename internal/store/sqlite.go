package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const documentSchema = `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		body TEXT NOT NULL,
		updatedAt REAL NOT NULL,
		PRIMARY KEY (collection, id)
	);
`

// SQLiteStore keeps all documents in one SQLite table, keyed by collection
// and id.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) the document database at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(documentSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save upserts the document body.
func (s *SQLiteStore) Save(collection, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO documents (collection, id, body, updatedAt)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET body = excluded.body, updatedAt = excluded.updatedAt
	`, collection, id, string(body), float64(time.Now().UnixNano())/1e9)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Load reads the document body into out; a missing row is not an error.
func (s *SQLiteStore) Load(collection, id string, out any) (bool, error) {
	var body string
	err := s.db.QueryRow(`
		SELECT body FROM documents WHERE collection = ? AND id = ?
	`, collection, id).Scan(&body)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load document: %w", err)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}
	return true, nil
}

// Delete removes the document row if present.
func (s *SQLiteStore) Delete(collection, id string) (bool, error) {
	res, err := s.db.Exec(`
		DELETE FROM documents WHERE collection = ? AND id = ?
	`, collection, id)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return n > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
