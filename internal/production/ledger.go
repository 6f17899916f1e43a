package production

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"showrunner/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current ledger schema version. Bump this when the
// schema changes; the ledger is an index and safe to delete and rebuild.
const schemaVersion = 1

// ErrSchemaMismatch indicates the ledger database was created by a different
// release and must be removed before reuse.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Ledger records production runs in SQLite. It exists for the outputs
// listing and for post-mortems; completion decisions always come from
// artifact files on disk, never from here.
type Ledger struct {
	db   *sql.DB
	path string
}

// OpenLedger initializes or connects to the production ledger database under
// the configured data directory.
func OpenLedger(cfg *config.Config) (*Ledger, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return openLedgerAt(filepath.Join(cfg.Paths.DataDir, "productions.db"))
}

func openLedgerAt(dbPath string) (*Ledger, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	ledger := &Ledger{db: db, path: dbPath}
	if err := ledger.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return ledger, nil
}

func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Path returns the database file path.
func (l *Ledger) Path() string { return l.path }

func (l *Ledger) initSchema(ctx context.Context) error {
	var tableExists int
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return l.createSchema(ctx)
	}

	var version int
	if err := l.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, l.path)
	}
	return nil
}

func (l *Ledger) createSchema(ctx context.Context) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Begin upserts the record with running status. A rerun of an existing
// production reuses the same row.
func (l *Ledger) Begin(ctx context.Context, rec Record) error {
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := l.db.ExecContext(ctx, `
INSERT INTO productions (id, show_id, episode_idx, title, directory, status, error_message, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, '', ?, ?)
ON CONFLICT(id) DO UPDATE SET
    status = excluded.status,
    error_message = '',
    updated_at = excluded.updated_at`,
		rec.ID, rec.ShowID, rec.EpisodeIndex, rec.Title, rec.Directory, StatusRunning, now, now)
	if err != nil {
		return fmt.Errorf("record production start: %w", err)
	}
	return nil
}

// Finish marks the production completed, or failed with the error message
// when runErr is non-nil.
func (l *Ledger) Finish(ctx context.Context, id string, runErr error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	status := StatusCompleted
	message := ""
	if runErr != nil {
		status = StatusFailed
		message = runErr.Error()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := l.db.ExecContext(ctx,
		"UPDATE productions SET status = ?, error_message = ?, updated_at = ? WHERE id = ?",
		status, message, now, id)
	if err != nil {
		return fmt.Errorf("record production finish: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("production %q not found in ledger", id)
	}
	return nil
}

// Get returns one record by production identifier.
func (l *Ledger) Get(ctx context.Context, id string) (*Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	row := l.db.QueryRowContext(ctx, `
SELECT id, show_id, episode_idx, title, directory, status, error_message, created_at, updated_at
FROM productions WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load production %q: %w", id, err)
	}
	return rec, nil
}

// List returns all records, newest first.
func (l *Ledger) List(ctx context.Context) ([]Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := l.db.QueryContext(ctx, `
SELECT id, show_id, episode_idx, title, directory, status, error_message, created_at, updated_at
FROM productions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate productions: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec                  Record
		createdAt, updatedAt string
	)
	if err := row.Scan(&rec.ID, &rec.ShowID, &rec.EpisodeIndex, &rec.Title, &rec.Directory,
		&rec.Status, &rec.ErrorMessage, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		rec.UpdatedAt = ts
	}
	return &rec, nil
}
