package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/memory"
)

// Store persists one ledger as a single JSON document keyed by card id.
// The document is read fully into memory and written back fully; the
// ledger is not an append log.
type Store struct {
	path string
}

// NewStore creates a store for the ledger document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing document path.
func (s *Store) Path() string {
	return s.path
}

// Load deserializes the ledger document. A missing or malformed file is
// a fatal LoadError; use LoadOrInit when an absent ledger is explicitly
// acceptable (first-ever run).
func (s *Store) Load() (*memory.Ledger, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &entities.LoadError{Path: s.path, Err: err}
	}

	var entries map[entities.CardID]*entities.CardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &entities.LoadError{Path: s.path, Err: fmt.Errorf("malformed ledger document: %w", err)}
	}

	for id, entry := range entries {
		if entry == nil {
			return nil, &entities.LoadError{Path: s.path, Err: fmt.Errorf("null entry for id %s", id)}
		}
		// The map key is authoritative for identity.
		entry.ID = id
		if entry.Boxes == nil {
			entry.Boxes = make(map[string]map[string]entities.Quantity)
		}
	}

	return memory.FromEntries(entries), nil
}

// LoadOrInit loads the ledger, returning an empty one when the backing
// document does not exist yet. Malformed documents still fail.
func (s *Store) LoadOrInit() (*memory.Ledger, error) {
	ledger, err := s.Load()
	if err != nil {
		var loadErr *entities.LoadError
		if errors.As(err, &loadErr) && os.IsNotExist(loadErr.Err) {
			return memory.NewLedger(), nil
		}
		return nil, err
	}
	return ledger, nil
}

// Persist atomically replaces the ledger document with the full
// in-memory state: the document is written to a temp file in the same
// directory and renamed over the previous one.
func (s *Store) Persist(ledger *memory.Ledger) error {
	data, err := json.MarshalIndent(ledger.Entries(), "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp ledger file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger document: %w", err)
	}

	return nil
}
