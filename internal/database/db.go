// Package database provides the persistence layer for the OnboardBox application.
// The whole application state is one JSON document stored under a fixed key in
// an embedded key-value store (bbolt). There are no partial writes: every
// mutation re-persists the full document, which is both the durability
// mechanism and the concurrency boundary.
package database

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const (
	// Bucket is the single bbolt bucket holding application documents.
	Bucket = "onboardbox"

	// StateKey is the fixed key of the serialized AppState document.
	// The version suffix tracks the document layout, not the app release.
	StateKey = "onboarding_app_state_v2"
)

// DocumentStore is the interface the domain store persists through.
// It allows tests to substitute an in-memory implementation, the same way
// the repository layer elsewhere swaps a mock pool in for pgx.
type DocumentStore interface {
	// Load returns the current state document, or nil when none has been
	// written yet. A nil document is not an error; callers fall back to seed.
	Load() ([]byte, error)

	// Save overwrites the state document with the given bytes.
	Save(doc []byte) error

	// Close releases the underlying storage.
	Close() error
}

// BoltStore persists the state document in a bbolt file.
type BoltStore struct {
	db *bolt.DB
}

// Open opens (creating if needed) the bbolt file at path and ensures the
// application bucket exists.
func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open data file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(Bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Load reads the state document. Returns nil bytes when the key is absent.
func (s *BoltStore) Load() ([]byte, error) {
	var doc []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(Bucket)).Get([]byte(StateKey))
		if v != nil {
			// The slice is only valid inside the transaction; copy out.
			doc = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load state document: %w", err)
	}
	return doc, nil
}

// Save overwrites the state document in a single write transaction.
func (s *BoltStore) Save(doc []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(Bucket)).Put([]byte(StateKey), doc)
	})
	if err != nil {
		return fmt.Errorf("save state document: %w", err)
	}
	return nil
}

// Close closes the underlying bbolt database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory DocumentStore for tests.
// LoadErr and SaveErr, when set, are returned as-is so failure paths can be
// exercised without a real storage fault.
type MemoryStore struct {
	Doc     []byte
	LoadErr error
	SaveErr error
	Saves   int // number of successful Save calls
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() ([]byte, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Doc == nil {
		return nil, nil
	}
	return append([]byte(nil), m.Doc...), nil
}

func (m *MemoryStore) Save(doc []byte) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Doc = append([]byte(nil), doc...)
	m.Saves++
	return nil
}

func (m *MemoryStore) Close() error { return nil }
