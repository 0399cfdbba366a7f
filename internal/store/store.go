// Package store persists JSON documents by collection and id, either as
// files on disk or in a single SQLite database.
package store

import "fmt"

// Store is the document persistence contract: one JSON document per
// (collection, id) pair.
type Store interface {
	// Save writes doc, replacing any existing document with the same id.
	Save(collection, id string, doc any) error
	// Load reads the document into out. The bool reports whether it existed.
	Load(collection, id string, out any) (bool, error)
	// Delete removes the document. The bool reports whether it existed.
	Delete(collection, id string) (bool, error)
	// Close releases any underlying resources.
	Close() error
}

// Open constructs a Store for the configured mode: "local" keeps JSON files
// under dir, "sqlite" keeps everything in the database at path.
func Open(mode, dir, path string) (Store, error) {
	switch mode {
	case "", "local":
		return NewFileStore(dir), nil
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage mode %q", mode)
	}
}
