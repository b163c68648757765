package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fayina-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllMissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "invoices.json"))
	records, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "invoices.json"))

	require.NoError(t, s.Append(models.Record{"invoice_number": "INV-01", "total_amount": "38500.00"}))
	require.NoError(t, s.Append(models.Record{"invoice_number": "INV-02", "total_amount": "100.00"}))

	records, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "INV-01", records[0]["invoice_number"])
	assert.Equal(t, "INV-02", records[1]["invoice_number"])
}

func TestAppendCreatesParentDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "data", "nested", "customers.json"))
	require.NoError(t, s.Append(models.Record{"name": "Ada"}))

	records, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadAllCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path).LoadAll()
	assert.True(t, errors.Is(err, ErrPersistence))
}

func TestConcurrentAppendsDoNotInterleave(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "invoices.json"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, s.Append(models.Record{"n": n}))
		}(i)
	}
	wg.Wait()

	records, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, records, 20)
}
