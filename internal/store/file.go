package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each document as an indented JSON file under
// <root>/<collection>/<id>.json.
type FileStore struct {
	root string
}

// NewFileStore returns a FileStore rooted at dir. Directories are created
// lazily on first save.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "data"
	}
	return &FileStore{root: dir}
}

func (s *FileStore) path(collection, id string) string {
	return filepath.Join(s.root, collection, id+".json")
}

// Save writes doc as indented JSON, creating the collection directory if
// needed.
func (s *FileStore) Save(collection, id string, doc any) error {
	dir := filepath.Join(s.root, collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create collection dir: %w", err)
	}

	f, err := os.Create(s.path(collection, id))
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// Load reads the document into out; a missing file is not an error.
func (s *FileStore) Load(collection, id string, out any) (bool, error) {
	f, err := os.Open(s.path(collection, id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}
	return true, nil
}

// Delete removes the document file if present.
func (s *FileStore) Delete(collection, id string) (bool, error) {
	err := os.Remove(s.path(collection, id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove document: %w", err)
	}
	return true, nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }
