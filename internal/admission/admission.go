// Package admission memoizes scavenger candidates across the files of
// a batch run so the same recovered asset or script body, seen again
// in a later file, is not re-emitted and rewritten to disk.
package admission

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	tinylfu "github.com/dgryski/go-tinylfu"
)

var seed = maphash.MakeSeed()

// Filter is an admission-controlled set: Seen reports whether a key
// was already admitted, admitting it on first sight. It is safe to
// share across sequential file scans in one batch run; it is not
// safe for concurrent use by multiple goroutines (matching the
// single-writer filesystem-sink model of the orchestrator).
type Filter struct {
	t *tinylfu.T[uint64, struct{}]
}

// New builds a Filter sized for roughly capacity distinct candidates.
func New(capacity int) *Filter {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Filter{
		t: tinylfu.New[uint64, struct{}](capacity, capacity*10, hashKey),
	}
}

func hashKey(k uint64) uint64 {
	return maphash.Comparable(seed, k)
}

// Seen reports whether raw has already been admitted into the filter,
// and admits it if this is its first sighting.
func (f *Filter) Seen(raw []byte) bool {
	if f == nil {
		return false
	}
	key := xxhash.Sum64(raw)
	if _, ok := f.t.Get(key); ok {
		return true
	}
	f.t.Add(key, struct{}{})
	return false
}
