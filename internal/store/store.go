// Package store implements the JSON-array record store backing every
// collection. Each collection is one file holding a flat JSON array;
// every operation is a whole-file read-modify-write. There is no locking:
// the application is single-user and last writer wins.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sharjeelz/famories/internal/apperr"
)

// Record is the minimal contract a stored type must satisfy.
type Record interface {
	RecordID() string
}

// Store persists one collection of records in a single JSON array file.
type Store[T Record] struct {
	path string
}

// New creates a store over the given file path. The file is not created
// until the first write; a missing file reads as an empty collection.
func New[T Record](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// Load reads the whole collection. A missing file is not an error and
// yields an empty slice. Invalid JSON fails with apperr.ErrCorruptStore.
func (s *Store[T]) Load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w: %v", s.path, apperr.ErrCorruptStore, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Append adds a record to the end of the collection.
func (s *Store[T]) Append(rec T) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	return s.Replace(append(records, rec))
}

// Update replaces the first record whose id matches. An unknown id is a
// silent no-op: the collection is rewritten unchanged and no error is
// returned. Callers that need to distinguish should Get first.
func (s *Store[T]) Update(rec T) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.RecordID() == rec.RecordID() {
			records[i] = rec
			break
		}
	}
	return s.Replace(records)
}

// Upsert updates the record in place if its id exists, else appends it.
func (s *Store[T]) Upsert(rec T) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.RecordID() == rec.RecordID() {
			records[i] = rec
			return s.Replace(records)
		}
	}
	return s.Replace(append(records, rec))
}

// Delete removes every record with the given id. Deleting an unknown id
// is a no-op; the operation is idempotent.
func (s *Store[T]) Delete(id string) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	return s.Replace(kept)
}

// Get returns the first record with the given id, or apperr.ErrNotFound.
func (s *Store[T]) Get(id string) (T, error) {
	var zero T
	records, err := s.Load()
	if err != nil {
		return zero, err
	}
	for _, r := range records {
		if r.RecordID() == id {
			return r, nil
		}
	}
	return zero, apperr.ErrNotFound
}

// Replace rewrites the whole collection atomically: temp file in the
// same directory, fsync, rename.
func (s *Store[T]) Replace(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".famories-tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("store: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("store: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}
	success = true
	return nil
}
