package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/goccy/go-json"

	"github.com/veridoc/veridoc/internal/model"
)

// dbFileName is the SQLite file created inside the history directory.
const dbFileName = "veridoc.db"

// Store provides SQLite-backed persistence for authenticity reports.
// It manages connection pooling and provides methods for saving and listing
// reports.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Entry is a stored report with its database identity.
type Entry struct {
	// ID is the autoincrement row ID.
	ID int64

	// Report is the full deserialized report.
	Report model.AuthenticityReport
}

// Open opens or creates the history store in the specified directory.
// The directory and database file are created if missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent saves from the HTTP handlers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- Reports store complete analysis results as JSON with denormalized
	-- columns for listing.
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		label TEXT NOT NULL,
		score REAL NOT NULL,
		analyzed_at DATETIME NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_analyzed_at ON reports(analyzed_at);
	CREATE INDEX IF NOT EXISTS idx_reports_label ON reports(label);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Save persists a completed report and returns its row ID.
func (s *Store) Save(ctx context.Context, report *model.AuthenticityReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
	INSERT INTO reports (filename, label, score, analyzed_at, report_json)
	VALUES (?, ?, ?, ?, ?)`,
		report.Metadata.Filename,
		report.Label.String(),
		report.Score,
		report.AnalyzedAt.UTC(),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}

	return result.LastInsertId()
}

// Recent returns up to limit reports, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, report_json FROM reports
	ORDER BY analyzed_at DESC, id DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			id         int64
			reportJSON string
		)
		if err := rows.Scan(&id, &reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}

		var report model.AuthenticityReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			return nil, fmt.Errorf("failed to deserialize report %d: %w", id, err)
		}

		entries = append(entries, Entry{ID: id, Report: report})
	}

	return entries, rows.Err()
}

// Count returns the total number of stored reports.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}
