// Package cache provides a SQLite-backed memo of segmenter output keyed by
// language, rules version and a digest of the file content.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	_ "modernc.org/sqlite"
)

// Cache wraps a SQLite database. It is safe for concurrent use.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) a cache database at dbPath and ensures the table
// exists. Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Workers share one connection so concurrent writes queue instead of
	// failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS segments (
			language   TEXT NOT NULL,
			rules      TEXT NOT NULL,
			digest     TEXT NOT NULL,
			simplified TEXT NOT NULL,
			cached_at  DATETIME NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (language, rules, digest)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// Key identifies one cached segmentation.
type Key struct {
	Language string
	Rules    string
	Digest   string
}

// KeyFor builds the key for source segmented as language under rules.
func KeyFor(language, rules string, source []byte) Key {
	sum := sha256.Sum256(source)
	return Key{Language: language, Rules: rules, Digest: hex.EncodeToString(sum[:])}
}

// Get returns the cached text for key. The second result is false on a miss.
func (c *Cache) Get(key Key) (string, bool, error) {
	var text string
	err := c.db.QueryRow(
		`SELECT simplified FROM segments WHERE language = ? AND rules = ? AND digest = ?`,
		key.Language, key.Rules, key.Digest,
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query segment: %w", err)
	}
	return text, true, nil
}

// Put stores text for key, replacing any previous value.
func (c *Cache) Put(key Key, text string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO segments (language, rules, digest, simplified, cached_at)
		 VALUES (?, ?, ?, ?, datetime('now'))`,
		key.Language, key.Rules, key.Digest, text,
	)
	if err != nil {
		return fmt.Errorf("store segment: %w", err)
	}
	return nil
}

// Prune deletes entries written under a rules version older than current,
// or under one that does not parse as a version, and returns how many rows
// were removed. Newer versions are kept so binaries of different ages can
// share one cache file.
func (c *Cache) Prune(current string) (int64, error) {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return 0, fmt.Errorf("prune segments: rules version %q: %w", current, err)
	}

	rows, err := c.db.Query(`SELECT DISTINCT rules FROM segments`)
	if err != nil {
		return 0, fmt.Errorf("prune segments: %w", err)
	}
	var stale []string
	for rows.Next() {
		var rules string
		if err := rows.Scan(&rules); err != nil {
			rows.Close()
			return 0, fmt.Errorf("prune segments: %w", err)
		}
		if v, err := semver.NewVersion(rules); err != nil || v.LessThan(cur) {
			stale = append(stale, rules)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("prune segments: %w", err)
	}

	var removed int64
	for _, rules := range stale {
		res, err := c.db.Exec(`DELETE FROM segments WHERE rules = ?`, rules)
		if err != nil {
			return removed, fmt.Errorf("prune segments: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return removed, fmt.Errorf("prune segments: %w", err)
		}
		removed += n
	}
	return removed, nil
}

// Len returns the number of cached segments.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM segments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count segments: %w", err)
	}
	return n, nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
