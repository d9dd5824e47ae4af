package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/scoreboard/internal/domain/model"
)

// FileStore keeps the document as one indented JSON file.
type FileStore struct {
	path string
	opts options
}

// NewFileStore returns a store writing to path. The parent directory is
// created on first save.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("data file path is required")
	}
	return &FileStore{path: filepath.Clean(path), opts: newOptions(opts)}, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

// Load reads the document file.
func (s *FileStore) Load(ctx context.Context) (model.Document, error) {
	if err := ctx.Err(); err != nil {
		return model.EmptyDocument(), err
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.EmptyDocument(), nil
	}
	if err != nil {
		return model.EmptyDocument(), fmt.Errorf("%w: read %s: %w", ErrCorruptDocument, s.path, err)
	}
	return decodeStored(raw)
}

// Save writes the document to a temporary file in the same directory and
// renames it over the previous one.
func (s *FileStore) Save(ctx context.Context, doc model.Document) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveDocument, err)
	}
	raw, err := model.EncodeSnapshot(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveDocument, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrSaveDocument, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveDocument, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write: %w", ErrSaveDocument, err)
	}
	if err := tmp.Chmod(s.opts.fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: chmod: %w", ErrSaveDocument, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrSaveDocument, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: rename: %w", ErrSaveDocument, err)
	}
	return nil
}

// Reset deletes the document file.
func (s *FileStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %w", ErrSaveDocument, s.path, err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error { return nil }
