// Package rbxchunk implements the length-prefixed, optionally compressed
// chunk framing used by the binary container: read a chunk header, then
// attempt gzip, zlib, raw DEFLATE, and raw DEFLATE at a two-byte offset
// before falling back to the chunk's raw bytes.
//
// The four wrapper schemes named in spec.md §4.2 map directly onto the
// standard library's compress/gzip, compress/zlib, and compress/flate
// packages; the binary format does not carry StuffIt-style seekable
// archive members, so the teacher's own internal/flate (built for
// resumable, seekable decode of very large archive forks) solves a
// different problem than this bounded, fully-buffered chunk payload and
// is not adapted here — see DESIGN.md.
package rbxchunk

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/byteio"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/chunkcache"
)

// ErrTerminator is returned by Read when the chunk length is zero,
// signalling the end of the chunk stream.
var ErrTerminator = errors.New("rbxchunk: terminator chunk")

// ErrBadLength is returned when the declared chunk length exceeds the
// remaining input. Callers must treat this as chunk-scoped: skip the
// chunk, don't abort the file.
var ErrBadLength = errors.New("rbxchunk: declared length exceeds remaining input")

var gzipMagic = []byte{0x1F, 0x8B}

// Cache, when non-nil, memoizes decompressed chunk payloads by a fast
// hash of the raw (still-compressed) chunk bytes. It never changes
// output, only whether the inflate work is repeated; see
// internal/chunkcache.
type Cache = chunkcache.Cache

// Read consumes a chunk header (u32 length, u32 reserved) and the
// length bytes that follow from r, and returns the decompressed
// payload. A zero length is the stream terminator (ErrTerminator). A
// length exceeding the remaining input is ErrBadLength. cache may be
// nil.
func Read(r *byteio.Reader, cache *Cache) ([]byte, error) {
	length, err := r.ReadU32LE()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadU32LE(); err != nil { // reserved, read but ignored
		return nil, err
	}
	if length == 0 {
		return nil, ErrTerminator
	}
	if int(length) > r.Remaining() {
		return nil, ErrBadLength
	}
	raw, err := r.ReadFixed(int(length))
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if payload, ok := cache.Get(raw); ok {
			return payload, nil
		}
	}

	payload := decompress(raw)
	if cache != nil {
		cache.Put(raw, payload)
	}
	return payload, nil
}

// decompress tries, in order, gzip, zlib, raw DEFLATE, and raw DEFLATE
// starting two bytes in; if every attempt fails it returns raw
// unchanged, per spec.md §4.2 step 5.
func decompress(raw []byte) []byte {
	if len(raw) >= 2 && bytes.Equal(raw[:2], gzipMagic) {
		if out, ok := tryGzip(raw); ok {
			return out
		}
	}
	if out, ok := tryZlib(raw); ok {
		return out
	}
	if out, ok := tryRawDeflate(raw); ok {
		return out
	}
	if len(raw) > 2 {
		if out, ok := tryRawDeflate(raw[2:]); ok {
			return out
		}
	}
	return raw
}

func tryGzip(raw []byte) ([]byte, bool) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return out, true
}

func tryZlib(raw []byte) ([]byte, bool) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return out, true
}

func tryRawDeflate(raw []byte) ([]byte, bool) {
	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()
	out, err := io.ReadAll(fr)
	if err != nil || len(out) == 0 {
		return nil, false
	}
	return out, true
}
