package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teemow/cadence/internal/model"
)

// FileStore keeps the snapshot in a YAML file mapping email to YYYY-MM-DD.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save replaces the snapshot. The new document is written to a temporary
// file in the same directory and renamed over the old one.
func (s *FileStore) Save(ctx context.Context, due model.DueDates) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := make(map[string]string, len(due))
	for email, d := range due {
		doc[email] = d.Format(model.DateLayout)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// SavedAt returns the modification time of the snapshot file.
func (s *FileStore) SavedAt(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, notFound(s.path)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("stat snapshot: %w", err)
	}
	return info.ModTime().UTC(), nil
}

// Load reads the snapshot.
func (s *FileStore) Load(ctx context.Context) (model.DueDates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var doc map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}

	due := make(model.DueDates, len(doc))
	for email, raw := range doc {
		d, err := model.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot %s: entry %s: %w", s.path, email, err)
		}
		due[email] = d
	}
	return due, nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
