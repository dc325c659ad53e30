// Package chunkcache memoizes decompressed chunk payloads keyed by a
// fast hash of their still-compressed bytes. It exists purely to avoid
// repeated inflate work — the same compressed blob can recur within a
// single file (two byte-identical chunks) or across parses that share
// one Cache — and never changes what a lookup returns versus
// decompressing directly; see internal/rbxchunk.
//
// Adapted from the teacher's internal/decompressioncache, which backs a
// byte-range read cache for a virtual filesystem with allegro/bigcache.
// That package's stepper/checkpoint machinery exists to support
// out-of-order ReadAt calls over a streaming decompressor; a chunk
// payload here is always decompressed whole, so this package keeps only
// the get-or-compute memoization idea and the bigcache backing store.
package chunkcache

import (
	"context"
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"
)

// Cache memoizes decompressed chunk payloads.
type Cache struct {
	bc *bigcache.BigCache
}

// New creates a Cache with the given approximate entry lifetime. A nil
// *Cache is valid to use as "no cache" throughout rbxchunk.
func New(lifetime time.Duration) (*Cache, error) {
	cfg := bigcache.DefaultConfig(lifetime)
	cfg.Verbose = false
	bc, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return &Cache{bc: bc}, nil
}

func key(raw []byte) string {
	return strconv.FormatUint(xxhash.Sum64(raw), 36)
}

// Get returns the cached payload for raw's content hash, if present.
func (c *Cache) Get(raw []byte) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, err := c.bc.Get(key(raw))
	if err != nil {
		return nil, false
	}
	return v, true
}

// Put stores payload under raw's content hash.
func (c *Cache) Put(raw, payload []byte) {
	if c == nil {
		return
	}
	_ = c.bc.Set(key(raw), payload)
}
