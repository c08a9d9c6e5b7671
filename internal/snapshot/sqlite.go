package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/teemow/cadence/internal/model"
	"github.com/teemow/cadence/internal/snapshot/migrations"
)

const migrationTable = "schema_migrations"

// SQLiteStore keeps the snapshot in a SQLite database.
type SQLiteStore struct {
	path  string
	sqlDB *sql.DB
	now   func() time.Time
}

// OpenSQLite opens a snapshot database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{path: cleanPath, sqlDB: sqlDB, now: time.Now}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save replaces every stored due date in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, due model.DueDates) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM due_dates`); err != nil {
		return fmt.Errorf("clear due dates: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO due_dates (email, due_date) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare due date insert: %w", err)
	}
	defer stmt.Close()

	for email, d := range due {
		if _, err := stmt.ExecContext(ctx, email, d.Format(model.DateLayout)); err != nil {
			return fmt.Errorf("insert due date %s: %w", email, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO snapshot_meta (id, saved_at) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at
`, s.now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("record snapshot time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load returns the stored due dates. A database that has never been saved
// to reports NotFound, while a saved empty snapshot loads as an empty map.
func (s *SQLiteStore) Load(ctx context.Context) (model.DueDates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var savedAt int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT saved_at FROM snapshot_meta WHERE id = 1`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot meta: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT email, due_date FROM due_dates`)
	if err != nil {
		return nil, fmt.Errorf("query due dates: %w", err)
	}
	defer rows.Close()

	due := make(model.DueDates)
	for rows.Next() {
		var email, raw string
		if err := rows.Scan(&email, &raw); err != nil {
			return nil, fmt.Errorf("scan due date: %w", err)
		}
		d, err := model.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("parse due date %s: %w", email, err)
		}
		due[email] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate due dates: %w", err)
	}
	return due, nil
}

// SavedAt returns when the snapshot was last saved.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, error) {
	var savedAt int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT saved_at FROM snapshot_meta WHERE id = 1`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, notFound(s.path)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read snapshot meta: %w", err)
	}
	return time.UnixMilli(savedAt).UTC(), nil
}

// applyMigrations executes each embedded .sql file at most once, in name order.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, migrationTable)
	if _, err := sqlDB.Exec(createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range sqlFiles {
		var count int
		if err := sqlDB.QueryRow(`SELECT COUNT(1) FROM `+migrationTable+` WHERE name = ?`, file).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := sqlDB.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`, file, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}
