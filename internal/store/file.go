package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is a BlobStore backed by one file per key in a directory.
// It is the default store — the server-side analog of the browser
// localStorage the data model was designed around.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store.NewFileStore: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Read returns the stored bytes for key, or (nil, nil) when the file does
// not exist yet.
func (s *FileStore) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store.FileStore.Read: %w", err)
	}
	return data, nil
}

// Write replaces the entire value for key. The write goes through a temp
// file and rename so a crash mid-write never leaves a truncated value.
func (s *FileStore) Write(_ context.Context, key string, value []byte) error {
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("store.FileStore.Write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("store.FileStore.Write: %w", err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
