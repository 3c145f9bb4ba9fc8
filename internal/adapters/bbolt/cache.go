// Package bbolt implements ports.StubCache on bbolt (embedded B+ tree).
// Entries live in one top-level bucket named after the settings
// fingerprint; buckets written under other settings are dropped on open.
// Values are JSON-encoded ports.CacheEntry records.
package bbolt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/apistub/internal/ports"
)

// Cache implements ports.StubCache backed by bbolt.
type Cache struct {
	db     *bolt.DB
	bucket []byte
}

// OpenCache opens (or creates) the cache database at path and selects the
// bucket for fingerprint.
func OpenCache(path, fingerprint string) (*Cache, error) {
	if fingerprint == "" {
		return nil, fmt.Errorf("bbolt cache: empty fingerprint")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	c := &Cache{db: db, bucket: []byte(fingerprint)}
	if err := db.Update(c.reset); err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return c, nil
}

// reset drops every bucket but the current one and makes sure it exists.
func (c *Cache) reset(tx *bolt.Tx) error {
	var stale [][]byte
	err := tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
		if !bytes.Equal(name, c.bucket) {
			// name is only valid inside the transaction
			stale = append(stale, append([]byte(nil), name...))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, name := range stale {
		if err := tx.DeleteBucket(name); err != nil {
			return err
		}
	}
	_, err = tx.CreateBucketIfNotExists(c.bucket)
	return err
}

// Close closes the underlying bbolt database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the entry stored for rel.
func (c *Cache) Get(rel string) (ports.CacheEntry, bool, error) {
	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(c.bucket)
		if b == nil {
			return nil
		}
		if v := b.Get(key(rel)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil || raw == nil {
		return ports.CacheEntry{}, false, err
	}

	var e ports.CacheEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return ports.CacheEntry{}, false, fmt.Errorf("unmarshal entry %s: %w", rel, err)
	}
	return e, true, nil
}

// Put stores e for rel. Concurrent callers are coalesced into one
// transaction by bbolt's batching.
func (c *Cache) Put(rel string, e ports.CacheEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry %s: %w", rel, err)
	}
	return c.db.Batch(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(c.bucket)
		if err != nil {
			return err
		}
		return b.Put(key(rel), raw)
	})
}

// Len returns the number of entries in the current bucket.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(c.bucket); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n, err
}

func key(rel string) []byte {
	return []byte(filepath.ToSlash(rel))
}
