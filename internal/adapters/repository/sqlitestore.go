package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/scoreboard/internal/domain/model"
	_ "modernc.org/sqlite"
)

const documentsSchema = `CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps the document as a single row of a SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
	opts  options
}

// OpenSQLite opens the database at path and ensures the documents table
// exists.
func OpenSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(documentsSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}

	return &SQLiteStore{sqlDB: sqlDB, opts: newOptions(opts)}, nil
}

// Load reads the document row.
func (s *SQLiteStore) Load(ctx context.Context) (model.Document, error) {
	if s == nil || s.sqlDB == nil {
		return model.EmptyDocument(), ErrStoreClosed
	}

	var body string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE key = ?`,
		s.opts.documentKey,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.EmptyDocument(), nil
	}
	if err != nil {
		return model.EmptyDocument(), fmt.Errorf("%w: query: %w", ErrCorruptDocument, err)
	}
	return decodeStored([]byte(body))
}

// Save upserts the document row.
func (s *SQLiteStore) Save(ctx context.Context, doc model.Document) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("%w: %w", ErrSaveDocument, ErrStoreClosed)
	}
	raw, err := model.EncodeSnapshot(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveDocument, err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		    body = excluded.body,
		    updated_at = excluded.updated_at`,
		s.opts.documentKey,
		string(raw),
		s.opts.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert: %w", ErrSaveDocument, err)
	}
	return nil
}

// Reset deletes the document row.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return ErrStoreClosed
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, s.opts.documentKey); err != nil {
		return fmt.Errorf("%w: delete: %w", ErrSaveDocument, err)
	}
	return nil
}

// UpdatedAt reports when the document was last saved. The zero time means
// nothing is stored.
func (s *SQLiteStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	if s == nil || s.sqlDB == nil {
		return time.Time{}, ErrStoreClosed
	}
	var stamp string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT updated_at FROM documents WHERE key = ?`,
		s.opts.documentKey,
	).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query updated_at: %w", err)
	}
	return time.Parse(time.RFC3339Nano, stamp)
}

// Close releases the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	err := s.sqlDB.Close()
	s.sqlDB = nil
	return err
}
