package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

var (
	// ErrNotFound is returned by Load when the document
	// does not exist yet.
	ErrNotFound = errors.New("config not found")
	// ErrCorrupt is returned when the document does not
	// match the expected shape.
	ErrCorrupt = errors.New("config corrupt")
	// ErrIO wraps file system failures. The message
	// carries the attempted path.
	ErrIO = errors.New("config io")
)

const (
	dirPerm  os.FileMode = 0o700
	filePerm os.FileMode = 0o600
)

// Store reads and writes the document at a fixed
// location. It does no locking: one process at a time.
type Store struct {
	paths Paths
}

// NewStore returns a Store for paths.
func NewStore(paths Paths) *Store {
	return &Store{paths: paths}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.paths.File
}

// Load reads the whole document.
func (s *Store) Load() (Document, error) {
	const errCtx = "loading config"

	raw, err := os.ReadFile(s.paths.File)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf(
			"%s: %w: %s", errCtx, ErrNotFound, s.paths.File,
		)
	}

	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %s: %w",
			errCtx, ErrIO, s.paths.File, err,
		)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf(
			"%s: %w: %s: empty document",
			errCtx, ErrCorrupt, s.paths.File,
		)
	}

	var doc Document

	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %s: %w",
			errCtx, ErrCorrupt, s.paths.File, err,
		)
	}

	if doc == nil {
		return nil, fmt.Errorf(
			"%s: %w: %s: null document",
			errCtx, ErrCorrupt, s.paths.File,
		)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, s.paths.File, err,
		)
	}

	return doc, nil
}

// EnsureInitialized writes DefaultDocument when no
// document exists, creating the directory as needed.
// It reports whether it wrote the file; an existing
// document is left untouched.
func (s *Store) EnsureInitialized() (bool, error) {
	const errCtx = "initializing config"

	_, err := os.Stat(s.paths.File)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf(
			"%s: %w: %s: %w",
			errCtx, ErrIO, s.paths.File, err,
		)
	}

	if err := os.MkdirAll(s.paths.Dir, dirPerm); err != nil {
		return false, fmt.Errorf(
			"%s: %w: %s: %w",
			errCtx, ErrIO, s.paths.Dir, err,
		)
	}

	if err := s.ReplaceAll(DefaultDocument()); err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug("created config", "path", s.paths.File)

	return true, nil
}

// ReplaceAll overwrites the document with doc. The
// content goes to a temporary file in the same
// directory which is then renamed over the target.
func (s *Store) ReplaceAll(doc Document) error {
	const errCtx = "replacing config"

	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if doc == nil {
		doc = Document{}
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf(
			"%s: marshal: %w", errCtx, err,
		)
	}

	if err := writeAtomic(s.paths.File, payload); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// writeAtomic writes payload to a sibling temporary
// file and renames it to path.
func writeAtomic(path string, payload []byte) (retErr error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}

	defer func() {
		if retErr != nil {
			_ = tmp.Close()           //nolint:errcheck // already failing
			_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, tmp.Name(), err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, tmp.Name(), err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}

	return syncDir(dir)
}

// syncDir flushes the directory entry so the rename
// survives a crash.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, dir, err)
	}

	defer d.Close() //nolint:errcheck

	if err := d.Sync(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, dir, err)
	}

	return nil
}
