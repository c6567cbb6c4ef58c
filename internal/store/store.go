// Package store persists client-side state between runs: the bearer
// credential and principal of the current session, and the last full
// catalog load for offline filtering.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/readerly/circulate/internal/domain"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketCatalog = []byte("catalog")
)

// Fixed keys. Token and principal live under separate keys and are always
// cleared together on logout.
const (
	keyToken     = "authToken"
	keyPrincipal = "currentUser"
	keyBooks     = "books"
)

// Store is a BoltDB-backed durable client store. With an empty path it runs
// memory-only, which the tests use.
type Store struct {
	db *bolt.DB

	mu    sync.RWMutex
	cache map[string][]byte
}

// Open opens (or creates) the store at path. An empty path yields a
// memory-only store with no persistence.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketCatalog} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string) ([]byte, bool) {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data, true
}

func (s *Store) set(bucket []byte, key string, data []byte) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.cache, string(bucket)+":"+key)
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Session ===

// Token returns the stored bearer credential, or "" when logged out.
// Store implements domain.TokenSource.
func (s *Store) Token() string {
	data, ok := s.get(bucketSession, keyToken)
	if !ok {
		return ""
	}
	return string(data)
}

// SaveSession persists the credential and principal together.
func (s *Store) SaveSession(token string, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.set(bucketSession, keyToken, []byte(token)); err != nil {
		return err
	}
	return s.set(bucketSession, keyPrincipal, data)
}

// SaveUser replaces only the stored principal, keeping the credential.
func (s *Store) SaveUser(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.set(bucketSession, keyPrincipal, data)
}

// User returns the stored principal. A malformed stored value is purged and
// reported as absent, so a corrupted session falls back to anonymous.
func (s *Store) User() (domain.User, bool) {
	data, ok := s.get(bucketSession, keyPrincipal)
	if !ok {
		return domain.User{}, false
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.delete(bucketSession, keyPrincipal)
		return domain.User{}, false
	}
	return user, true
}

// ClearSession removes the credential and principal together.
func (s *Store) ClearSession() {
	s.delete(bucketSession, keyToken, keyPrincipal)
}

// === Catalog snapshot ===

// SaveBooks persists the last full catalog load for offline filtering.
func (s *Store) SaveBooks(books []domain.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return err
	}
	return s.set(bucketCatalog, keyBooks, data)
}

// Books returns the persisted catalog snapshot, if any.
func (s *Store) Books() ([]domain.Book, bool) {
	data, ok := s.get(bucketCatalog, keyBooks)
	if !ok {
		return nil, false
	}

	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		s.delete(bucketCatalog, keyBooks)
		return nil, false
	}
	return books, true
}
