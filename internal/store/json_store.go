package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fayina-backend/internal/models"
)

// ErrPersistence wraps record store I/O failures. Propagated to the caller,
// never retried here.
var ErrPersistence = errors.New("record store failure")

// RecordStore is the append-only persistence collaborator. The core hands it
// finished record snapshots and never touches the filesystem itself.
type RecordStore interface {
	Append(rec models.Record) error
	LoadAll() ([]models.Record, error)
}

// FileStore keeps records as a JSON array in a single file. Appends are
// mutex-serialized and written via rename so concurrent renders cannot
// interleave partial writes.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append reads the existing array, adds the record, and atomically replaces
// the file.
func (s *FileStore) Append(rec models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}
	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersistence, s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: create dir for %s: %v", ErrPersistence, s.path, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}

// LoadAll returns every stored record. A store that does not exist yet is an
// empty list, not an error.
func (s *FileStore) LoadAll() ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *FileStore) readAll() ([]models.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Record{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersistence, s.path, err)
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrPersistence, s.path, err)
	}
	return records, nil
}
