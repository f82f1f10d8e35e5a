package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// FileStore keeps each document as a pretty-printed JSON file named
// <dir>/<storeID>.json. This matches the layout the bot has always used
// on disk, so existing data files load unchanged.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(storeID string) string {
	return filepath.Join(s.dir, storeID+".json")
}

// Load reads the document, bootstrapping an empty one if the file does
// not exist yet.
func (s *FileStore) Load(ctx context.Context, storeID string, out any) error {
	data, err := os.ReadFile(s.path(storeID))
	if os.IsNotExist(err) {
		log.WithField("store", storeID).Debug("bootstrapping empty store file")
		if err := os.WriteFile(s.path(storeID), []byte("{}"), 0o644); err != nil {
			return fmt.Errorf("failed to bootstrap store %s: %w", storeID, err)
		}
		data = []byte("{}")
	} else if err != nil {
		return fmt.Errorf("failed to read store %s: %w", storeID, err)
	}

	// An empty file is treated the same as a missing one.
	if len(data) == 0 {
		data = []byte("{}")
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &CorruptStoreError{StoreID: storeID, Err: err}
	}
	return nil
}

// Save replaces the document on disk.
func (s *FileStore) Save(ctx context.Context, storeID string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store %s: %w", storeID, err)
	}
	if err := os.WriteFile(s.path(storeID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write store %s: %w", storeID, err)
	}
	return nil
}
