// Package store persists checkpoint manifests in a Badger database so
// diffs can refer to checkpoints by ID instead of manifest files.
package store

import (
	"bytes"
	"encoding/gob"
	"errors"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/aezell/sprite-differ/pkg/differ/manifest"
)

// ErrNotFound is returned when a checkpoint doesn't exist in the store.
var ErrNotFound = errors.New("checkpoint not found")

// keyPrefix namespaces checkpoint keys, leaving room for future record
// kinds in the same database.
const keyPrefix = "ckpt\x00"

// Store wraps Badger for checkpoint persistence.
type Store struct {
	db *badger.DB
}

// Open opens or creates a checkpoint store at the given path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// makeKey builds the database key for a checkpoint ID.
func makeKey(checkpointID string) []byte {
	return []byte(keyPrefix + checkpointID)
}

// encode serializes a manifest using gob.
func encode(m *manifest.Manifest) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode deserializes a manifest using gob.
func decode(data []byte) (*manifest.Manifest, error) {
	var m manifest.Manifest
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return nil, err
	}
	if m.Files == nil {
		m.Files = []manifest.Entry{}
	}
	return &m, nil
}

// Put stores a manifest keyed by its checkpoint ID, replacing any existing
// checkpoint with the same ID.
func (s *Store) Put(m *manifest.Manifest) error {
	if m.CheckpointID == "" {
		return errors.New("manifest has no checkpoint ID")
	}

	value, err := encode(m)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(makeKey(m.CheckpointID), value)
	})
}

// Get retrieves a manifest by checkpoint ID.
func (s *Store) Get(checkpointID string) (*manifest.Manifest, error) {
	var m *manifest.Manifest

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeKey(checkpointID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			m, err = decode(val)
			return err
		})
	})

	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a checkpoint. Deleting a missing checkpoint is not an
// error.
func (s *Store) Delete(checkpointID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(makeKey(checkpointID))
	})
}

// Info summarizes one stored checkpoint for listings.
type Info struct {
	CheckpointID string    `json:"checkpoint_id"`
	Sprite       string    `json:"sprite,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	BasePath     string    `json:"base_path"`
	TotalFiles   int       `json:"total_files"`
	TotalSize    int64     `json:"total_size"`
}

// List returns summaries of all stored checkpoints, newest first.
// If limit is 0 or negative, all checkpoints are returned.
func (s *Store) List(limit int) ([]Info, error) {
	var infos []Info

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				m, err := decode(val)
				if err != nil {
					// Skip records that can't be decoded.
					return nil
				}
				infos = append(infos, Info{
					CheckpointID: m.CheckpointID,
					Sprite:       m.Sprite,
					CreatedAt:    m.CreatedAt,
					BasePath:     m.BasePath,
					TotalFiles:   m.TotalFiles,
					TotalSize:    m.TotalSize,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})

	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}

	if infos == nil {
		infos = []Info{}
	}

	return infos, nil
}

// Cleanup removes checkpoints older than retentionDays.
func (s *Store) Cleanup(retentionDays int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	infos, err := s.List(0)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, info := range infos {
		if info.CreatedAt.Before(cutoff) {
			if err := s.Delete(info.CheckpointID); err != nil {
				return removed, err
			}
			removed++
		}
	}

	return removed, nil
}
