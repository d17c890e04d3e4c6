package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otabekj/dukon/internal/ledger"
)

// Store persists the whole ledger document as one JSON file, the same
// db.json layout the desktop app kept. Every operation reads the full file
// and every mutation writes it back; there are no partial writes.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Init bootstraps the file at startup: creates it with empty collections if
// absent and backfills any missing top-level collection without discarding
// the ones present.
func (s *Store) Init(ctx context.Context) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}

	return s.Persist(ctx, doc)
}

func (s *Store) Load(_ context.Context) (*ledger.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.NewDocument(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ledger.ErrStorageUnavailable, s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return ledger.NewDocument(), nil
	}

	var doc ledger.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ledger.ErrStorageUnavailable, s.path, err)
	}

	doc.Normalize()

	return &doc, nil
}

func (s *Store) Persist(_ context.Context, doc *ledger.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", ledger.ErrStorageUnavailable, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ledger.ErrStorageUnavailable, dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ledger.ErrStorageUnavailable, s.path, err)
	}

	return nil
}
