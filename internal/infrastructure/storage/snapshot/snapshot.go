// Package snapshot persists the workspace to disk: one JSON file with
// the taxonomy state and quotes, written atomically, plus a
// zstd-compressed archive of saved quotes for export.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

// Workspace is the full persisted application state.
type Workspace struct {
	Library      library.State `json:"library"`
	CurrentQuote *quote.Quote  `json:"currentQuote,omitempty"`
	SavedQuotes  []quote.Quote `json:"savedQuotes"`
}

// Store reads and writes the workspace file.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the workspace. A missing file returns an empty workspace
// and no error so first runs start clean.
func (s *Store) Load() (*Workspace, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Workspace{}, nil
	}
	if err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("read workspace: %w", err))
	}
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("decode workspace: %w", err))
	}
	return &ws, nil
}

// Save writes the workspace atomically: the payload lands in a temp
// file in the same directory, then renames over the target.
func (s *Store) Save(ws *Workspace) error {
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("encode workspace: %w", err))
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperror.NewStorage(fmt.Errorf("create data directory: %w", err))
	}
	tmp, err := os.CreateTemp(dir, ".workspace-*.json")
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperror.NewStorage(fmt.Errorf("write workspace: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return apperror.NewStorage(fmt.Errorf("close workspace: %w", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperror.NewStorage(fmt.Errorf("replace workspace: %w", err))
	}
	return nil
}
