package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSettings = []byte("settings")
)

const keyEventSearch = "event_search"

// eventSearch is the persisted form of the last event search
type eventSearch struct {
	ZipCode     string    `json:"zip_code"`
	RadiusMiles float64   `json:"radius_miles"`
	SavedAt     time.Time `json:"saved_at"`
}

// SettingsStore implements domain.SettingsRepository using BoltDB.
// An empty path keeps everything in memory.
type SettingsStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every value read or written
	cache map[string][]byte
}

// NewSettingsStore opens (or creates) the settings database at path
func NewSettingsStore(path string) (*SettingsStore, error) {
	if path == "" {
		return &SettingsStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSettings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SettingsStore{db: db, cache: make(map[string][]byte)}, nil
}

// Close releases the database
func (s *SettingsStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SettingsStore) get(key string, dest any) bool {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSettings)
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
		return false
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SettingsStore) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSettings).Put([]byte(key), data)
	})
}

// LastEventSearch implements domain.SettingsRepository
func (s *SettingsStore) LastEventSearch() (string, float64, bool) {
	var v eventSearch
	if !s.get(keyEventSearch, &v) || v.ZipCode == "" {
		return "", 0, false
	}
	return v.ZipCode, v.RadiusMiles, true
}

// SaveEventSearch implements domain.SettingsRepository
func (s *SettingsStore) SaveEventSearch(zipCode string, radiusMiles float64) error {
	return s.set(keyEventSearch, eventSearch{
		ZipCode:     zipCode,
		RadiusMiles: radiusMiles,
		SavedAt:     time.Now().UTC(),
	})
}
