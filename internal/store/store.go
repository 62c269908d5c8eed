// Package store is the on-disk cache of extracted Advanced Installer
// installations.
//
// Each installation is keyed by (tool, version, architecture) and lives in
// its own directory under the store root; entry metadata is kept in BoltDB.
// The version component of the key must already be normalized by the caller —
// Find and Save do not normalize, they just have to be handed the same form.
// Entries are written once and never evicted or updated. Concurrent
// invocations against the same key are assumed to be serialized by the CI
// system; the store itself takes no cross-process lock.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// DefaultDirName is the default store directory name under the user
	// cache directory
	DefaultDirName = "advup"

	// bucketName is the BoltDB bucket name for installation entries
	bucketName = "installations"
)

// Store manages cached installations and their metadata using BoltDB
type Store struct {
	db   *bbolt.DB
	root string
}

// Open opens the store rooted at dir, creating it if needed.
// If dir is empty, the store lives under the user cache directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user cache directory: %w", err)
		}

		dir = filepath.Join(cacheDir, DefaultDirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "store.db")
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create store bucket: %w", err)
	}

	return &Store{
		db:   db,
		root: dir,
	}, nil
}

// Close closes the store database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// Find looks up the installation root for (tool, version, arch).
// Returns ok=false on a miss. Find does not verify the directory contents;
// a recorded entry whose files have gone missing is the caller's problem to
// surface, not a miss to silently re-download.
func (s *Store) Find(tool, version, arch string) (string, bool, error) {
	var entry Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data := b.Get(key(tool, version, arch))
		if data == nil {
			return nil // miss
		}

		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return "", false, err
	}

	if entry.Root == "" {
		return "", false, nil
	}

	return entry.Root, true, nil
}

// Save commits the extracted installation in sourceDir into the store under
// (tool, version, arch) and returns the store-assigned root directory.
func (s *Store) Save(sourceDir, tool, version, arch string) (string, error) {
	root := s.installDir(tool, version, arch)

	if err := copyDir(sourceDir, root); err != nil {
		return "", fmt.Errorf("failed to copy installation into store: %w", err)
	}

	entry := Entry{
		Tool:         tool,
		Version:      version,
		Architecture: arch,
		Root:         root,
		SavedAt:      time.Now(),
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		return b.Put(key(tool, version, arch), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store entry: %w", err)
	}

	return root, nil
}

// List returns all entries sorted by tool, version and architecture
func (s *Store) List() ([]Entry, error) {
	var entries []Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		return b.ForEach(func(_, data []byte) error {
			var entry Entry
			if err := json.Unmarshal(data, &entry); err != nil {
				return err
			}

			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Tool != entries[j].Tool {
			return entries[i].Tool < entries[j].Tool
		}

		if entries[i].Version != entries[j].Version {
			return entries[i].Version < entries[j].Version
		}

		return entries[i].Architecture < entries[j].Architecture
	})

	return entries, nil
}

// Clear removes all entries and cached installations
func (s *Store) Clear() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return err
	}

	toolsDir := filepath.Join(s.root, "tools")
	if err := os.RemoveAll(toolsDir); err != nil {
		return fmt.Errorf("failed to remove cached installations: %w", err)
	}

	return nil
}

// Stats returns the number of entries and total size of cached installations
func (s *Store) Stats() (int, int64, error) {
	var count int
	var totalSize int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		count = b.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	toolsDir := filepath.Join(s.root, "tools")
	err = filepath.Walk(toolsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip errors
		}

		if !info.IsDir() {
			totalSize += info.Size()
		}

		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return count, totalSize, err
	}

	return count, totalSize, nil
}

// installDir returns the store directory for a given key
func (s *Store) installDir(tool, version, arch string) string {
	return filepath.Join(s.root, "tools", tool, version, arch)
}

func key(tool, version, arch string) []byte {
	return []byte(tool + "/" + version + "/" + arch)
}
