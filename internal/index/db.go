// Package index caches the most recent discovery result in a local SQLite
// database so the search command works without touching the network.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database for the local video index.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the SQLite database at the given path.
func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS videos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		url TEXT NOT NULL UNIQUE,
		poster TEXT DEFAULT '',
		sensitive INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_videos_position ON videos(position);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE VIRTUAL TABLE IF NOT EXISTS videos_fts USING fts5(
		name,
		url,
		content=videos,
		content_rowid=id,
		tokenize='unicode61 remove_diacritics 2'
	);

	CREATE TRIGGER IF NOT EXISTS videos_ai AFTER INSERT ON videos BEGIN
		INSERT INTO videos_fts(rowid, name, url) VALUES (new.id, new.name, new.url);
	END;

	CREATE TRIGGER IF NOT EXISTS videos_ad AFTER DELETE ON videos BEGIN
		INSERT INTO videos_fts(videos_fts, rowid, name, url) VALUES('delete', old.id, old.name, old.url);
	END;

	CREATE TRIGGER IF NOT EXISTS videos_au AFTER UPDATE ON videos BEGIN
		INSERT INTO videos_fts(videos_fts, rowid, name, url) VALUES('delete', old.id, old.name, old.url);
		INSERT INTO videos_fts(videos_fts, rowid, name, url) VALUES (new.id, new.name, new.url);
	END;
	`
	_, err := db.Exec(schema)
	return err
}

// Record is one indexed video.
type Record struct {
	ID        int64  `json:"-"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Poster    string `json:"poster,omitempty"`
	Sensitive bool   `json:"sensitive"`
}

// sanitizeFTS5Query escapes FTS5 special characters so user input
// does not cause syntax errors. Each word is wrapped in double quotes,
// and embedded double quotes are doubled (FTS5 escaping).
func sanitizeFTS5Query(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	words := strings.Fields(query)
	var quoted []string
	for _, w := range words {
		w = strings.ReplaceAll(w, `"`, `""`)
		w = strings.NewReplacer(
			"(", "",
			")", "",
			"[", "",
			"]", "",
			"{", "",
			"}", "",
			"^", "",
		).Replace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, `"`+w+`"`)
	}
	if len(quoted) == 0 {
		return ""
	}
	return strings.Join(quoted, " ")
}

// ReplaceAll replaces the cached snapshot with the given records in a
// single transaction, preserving their order.
func (d *DB) ReplaceAll(records []Record) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM videos"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO videos (name, url, poster, sensitive, position)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		sensitive := 0
		if r.Sensitive {
			sensitive = 1
		}
		if _, err := stmt.Exec(r.Name, r.URL, r.Poster, sensitive, i); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES ('indexed_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// All returns the cached snapshot in its stored order.
func (d *DB) All() ([]Record, error) {
	rows, err := d.db.Query(
		"SELECT id, name, url, poster, sensitive FROM videos ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Search performs a full-text search over the cached snapshot.
func (d *DB) Search(query string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	sanitized := sanitizeFTS5Query(query)
	if sanitized == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT v.id, v.name, v.url, v.poster, v.sensitive
		FROM videos_fts fts
		JOIN videos v ON v.id = fts.rowid
		WHERE videos_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, sanitized, limit)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var sensitive int
		if err := rows.Scan(&r.ID, &r.Name, &r.URL, &r.Poster, &sensitive); err != nil {
			return nil, err
		}
		r.Sensitive = sensitive != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

// Stats describes the cached snapshot.
type Stats struct {
	Videos    int
	Sensitive int
	IndexedAt string
}

// GetStats returns statistics about the index.
func (d *DB) GetStats() (Stats, error) {
	var s Stats
	if err := d.db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&s.Videos); err != nil {
		return s, err
	}
	if err := d.db.QueryRow("SELECT COUNT(*) FROM videos WHERE sensitive = 1").Scan(&s.Sensitive); err != nil {
		return s, err
	}
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'indexed_at'").Scan(&s.IndexedAt)
	if err != nil && err != sql.ErrNoRows {
		return s, err
	}
	return s, nil
}
