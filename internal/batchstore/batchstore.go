// Package batchstore gives the batch CLI a persistent,
// content-addressed cache of extraction results across invocations:
// rerunning the extractor over a directory of place files that hasn't
// changed should not redo the work. It is the concrete home given to
// github.com/cockroachdb/pebble/v2, a direct dependency of the teacher
// repo that no file in the retrieved pack actually imported. Wired in
// from cmd/rbxl-extract's batch loop.
package batchstore

import (
	"crypto/sha256"

	"github.com/cockroachdb/pebble/v2"
)

// Store wraps an on-disk pebble database keyed by the SHA-256 of a
// place file's bytes.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if necessary) a batch store rooted at dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the content-addressed cache key for a place file's raw
// bytes: SHA-256 of the input, matching the dedup key spec.md's script
// canonicalizer already uses for the same "identical bytes in, same
// result out" guarantee.
func Key(raw []byte) []byte {
	sum := sha256.Sum256(raw)
	return sum[:]
}

// Get returns the cached, already-serialized extraction summary for
// key, if present.
func (s *Store) Get(key []byte) ([]byte, bool, error) {
	value, closer, err := s.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Put stores the serialized extraction summary for key.
func (s *Store) Put(key, value []byte) error {
	return s.db.Set(key, value, pebble.Sync)
}
