// Package mmapbuf loads a place file's bytes with mmap on platforms
// where that's available, avoiding a full read(2)-into-heap copy of
// potentially large inputs, and falls back to os.ReadFile everywhere
// else (spec.md §6, external interfaces).
package mmapbuf

import "os"

// Buffer is a loaded file's bytes plus whatever teardown is needed to
// release them.
type Buffer struct {
	Bytes []byte
	close func() error
}

// Close releases the underlying mapping, if any. It is always safe to
// call, including on the zero value.
func (b *Buffer) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Load maps path into memory, falling back to a plain read if mmap is
// unsupported or fails for any reason (a pipe, a virtual filesystem, a
// platform without mmap support).
func Load(path string) (*Buffer, error) {
	if buf, err := mmapFile(path); err == nil {
		return buf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Buffer{Bytes: data}, nil
}
