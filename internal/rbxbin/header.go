package rbxbin

import (
	"bytes"
	"errors"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/byteio"
)

// Magic is the eight-byte literal that opens every binary place file.
var Magic = []byte("<roblox!")

// ErrBadMagic is the fatal error this parser returns when the input
// does not begin with the binary container's magic (a header that is
// cut short after the magic fails with a byteio error instead).
// Callers fall back to XML sniffing (spec.md §6).
var ErrBadMagic = errors.New("rbxbin: not a binary place file (bad magic)")

type header struct {
	Version       uint8
	ClassCount    uint64
	Compressed    bool
}

func readHeader(r *byteio.Reader) (header, error) {
	magic, err := r.ReadFixed(len(Magic))
	if err != nil || !bytes.Equal(magic, Magic) {
		return header{}, ErrBadMagic
	}
	version, err := r.ReadU8()
	if err != nil {
		return header{}, err
	}
	classCount, err := r.ReadVarint()
	if err != nil {
		return header{}, err
	}
	compressed, err := r.ReadBool()
	if err != nil {
		return header{}, err
	}
	return header{Version: version, ClassCount: classCount, Compressed: compressed}, nil
}

// readClassTable reads h.ClassCount length-prefixed strings. On any
// failure it returns ok=false; the caller abandons the table and falls
// back to reading inline class names from each INST token.
func readClassTable(r *byteio.Reader, count uint64) (names []string, ok bool) {
	names = make([]string, 0, min64(count, 1<<16))
	for i := uint64(0); i < count; i++ {
		s, err := r.ReadString()
		if err != nil {
			return nil, false
		}
		names = append(names, s)
	}
	return names, true
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
