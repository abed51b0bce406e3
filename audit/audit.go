// Package audit persists security-relevant admin events to an append-only
// bbolt store. Entries are diagnostics only; nothing here ever influences
// the shape of a response.
package audit

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketEvents = []byte("events")

// Entry is one recorded event.
type Entry struct {
	ID         string `json:"id"`
	Event      string `json:"event"`
	Actor      string `json:"actor,omitempty"`
	Detail     string `json:"detail,omitempty"`
	RemoteAddr string `json:"remote_addr,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// Store is an append-only event log backed by a single bbolt bucket. Keys
// are RFC3339Nano timestamps suffixed with a UUID, so iteration order is
// chronological.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening audit store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing audit store: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records an entry. ID and CreatedAt are filled in when empty.
func (s *Store) Append(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt == "" {
		e.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	key := []byte(e.CreatedAt + "-" + e.ID)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEvents).Put(key, data)
	})
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketEvents).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
