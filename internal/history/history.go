// Package history provides SQLite-backed persistence for completed
// council sessions (~/.local/share/lazysusan/history.db by default).
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kryonis/lazysusan/pkg/models"
)

// ErrNotFound indicates no session with the requested id exists.
var ErrNotFound = errors.New("session not found")

// DefaultRecentLimit caps Recent when no limit is given.
const DefaultRecentLimit = 20

// Store wraps an SQLite database holding completed sessions.
type Store struct {
	conn *sql.DB
	path string
	mu   sync.RWMutex
}

// DefaultPath returns the default history database location.
func DefaultPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "lazysusan", "history.db")
}

// Open opens the history database at the given path, creating parent
// directories as needed. WAL mode is enabled for concurrent reads.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &Store{conn: conn, path: path}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.path
}

// migrate applies all pending schema migrations.
func (s *Store) migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var currentVersion int
	row := s.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1Sessions},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := s.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration v%d: %w", m.version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration v%d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration v%d: %w", m.version, err)
		}
	}

	return nil
}

const migrationV1Sessions = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	lang TEXT NOT NULL,
	verbosity TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	synthesis TEXT NOT NULL DEFAULT '',
	agents TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
`

// Save persists a completed session. Agent results are stored as a
// JSON column since they are only ever read back whole.
func (s *Store) Save(res *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents, err := json.Marshal(res.Agents)
	if err != nil {
		return fmt.Errorf("encode agent results: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT OR REPLACE INTO sessions (id, question, lang, verbosity, created_at, synthesis, agents)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, res.ID, res.Question, string(res.Lang), string(res.Verbosity),
		formatTime(res.Timestamp), res.Synthesis, string(agents))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get returns the session with the given id, or ErrNotFound.
func (s *Store) Get(id string) (*models.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.conn.QueryRow(`
		SELECT id, question, lang, verbosity, created_at, synthesis, agents
		FROM sessions WHERE id = ?
	`, id)

	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return res, nil
}

// Recent returns up to limit sessions, newest first. A limit of zero
// or less falls back to DefaultRecentLimit.
func (s *Store) Recent(limit int) ([]*models.Result, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.conn.Query(`
		SELECT id, question, lang, verbosity, created_at, synthesis, agents
		FROM sessions ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Purge deletes sessions older than the given duration and returns
// the number removed.
func (s *Store) Purge(olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := formatTime(time.Now().Add(-olderThan))
	result, err := s.conn.Exec("DELETE FROM sessions WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return result.RowsAffected()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*models.Result, error) {
	var (
		res       models.Result
		lang      string
		verbosity string
		createdAt string
		agents    string
	)
	if err := row.Scan(&res.ID, &res.Question, &lang, &verbosity, &createdAt, &res.Synthesis, &agents); err != nil {
		return nil, err
	}

	res.Lang = models.Language(lang)
	res.Verbosity = models.Verbosity(verbosity)

	ts, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	res.Timestamp = ts

	if err := json.Unmarshal([]byte(agents), &res.Agents); err != nil {
		return nil, fmt.Errorf("decode agent results: %w", err)
	}
	return &res, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
