// Package store is the SQLite persistence layer for founders, connectors,
// investors, introductions and their follow-up logs.
//
// The derivation packages never see a database handle: callers load a
// snapshot here (ListIntroductions eagerly attaches relations and logs),
// hand it to tasks/digest/trends, and write back through the mutation
// methods. Status changes and follow-up logs are separate writes with no
// shared transaction; readers treat the gap as eventually consistent.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateActive is returned when a founder already has a non-terminal
// introduction to the same investor.
var ErrDuplicateActive = errors.New("active introduction already exists for this founder and investor")

// timestampLayout is how instants are persisted. Fixed-width so that
// lexical order in SQL matches chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default configuration for the store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".introflow")}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the introduction store backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates the data directory if needed, opens SQLite with WAL mode
// and foreign keys enabled, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	// Pragmas ride on the DSN so every pooled connection gets them.
	dsn := filepath.Join(cfg.DataDir, "introflow.db") + "?" + strings.Join([]string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_pragma=journal_mode(WAL)",
		"_pragma=synchronous(NORMAL)",
	}, "&")
	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := ensureForeignKeys(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

func ensureForeignKeys(db *sql.DB) error {
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("store: check foreign keys: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("store: foreign keys are disabled")
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	// Founder, node and investor references are deliberately loose: imported
	// rows may point at people that are not loaded yet, and the engine skips
	// such rows with a warning. Follow-up logs are owned by their
	// introduction and go with it.
	schema := `
		CREATE TABLE IF NOT EXISTS founders (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL,
			email        TEXT,
			company      TEXT,
			round_status TEXT NOT NULL DEFAULT 'pre_round',
			created_at   TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS nodes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			email      TEXT,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS investors (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			name           TEXT NOT NULL,
			firm           TEXT,
			website        TEXT,
			stage_focus    TEXT,
			sector_focus   TEXT,
			research_notes TEXT,
			researched_at  TEXT,
			created_at     TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS introductions (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			founder_id          INTEGER NOT NULL,
			node_id             INTEGER NOT NULL,
			investor_id         INTEGER NOT NULL,
			status              TEXT    NOT NULL DEFAULT 'intro_request_sent',
			date_requested      TEXT,
			date_node_asked     TEXT,
			date_introduced     TEXT,
			first_meeting_date  TEXT,
			second_meeting_date TEXT,
			next_followup_date  TEXT,
			last_followup_date  TEXT,
			followup_owner      TEXT,
			pass_reason         TEXT,
			notes               TEXT,
			created_at          TEXT NOT NULL,
			updated_at          TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_intro_founder  ON introductions(founder_id);
		CREATE INDEX IF NOT EXISTS idx_intro_node     ON introductions(node_id);
		CREATE INDEX IF NOT EXISTS idx_intro_investor ON introductions(founder_id, investor_id);
		CREATE INDEX IF NOT EXISTS idx_intro_status   ON introductions(status);

		CREATE TABLE IF NOT EXISTS followup_logs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			introduction_id INTEGER NOT NULL,
			followup_type   TEXT    NOT NULL,
			completed_by    TEXT    NOT NULL,
			completed_at    TEXT    NOT NULL,
			notes           TEXT,
			next_action     TEXT,
			FOREIGN KEY (introduction_id) REFERENCES introductions(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_followup_intro ON followup_logs(introduction_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", v, err)
	}
	return t.UTC(), nil
}

func now() string {
	return formatTime(timeNow())
}
