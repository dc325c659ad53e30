package rbxbin

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/byteio"
)

// resolveSharedString looks up idx in the file-scoped shared string
// table. This implementation's binary parser never encounters a token
// that populates that table (spec.md names the table's existence and
// miss behavior but no populating token), so every lookup misses and
// produces the visible placeholder spec.md §3 requires rather than a
// crash.
func (p *Parser) resolveSharedString(idx uint64) Value {
	if int(idx) < len(p.tree.sharedStrings) {
		return VSharedString{Index: idx, Resolved: p.tree.sharedStrings[idx]}
	}
	return VSharedString{Index: idx, Placeholder: fmt.Sprintf("<shared_string_index:%d>", idx)}
}

// recoverUnknown implements §4.3.1: a property-value tag outside the
// defined set must not abort the chunk. Try a single varint length
// applying to all N values; if implausible, fall back to per-value
// u32-length chunks; if that also fails, assign the literal
// placeholder "<unknown>" to every instance.
func (p *Parser) recoverUnknown(r *byteio.Reader, count int) ([]Value, error) {
	start := r.Pos()
	if length, err := r.ReadVarint(); err == nil && int(length) <= r.Remaining() {
		raw, err := r.ReadFixed(int(length))
		if err == nil {
			text := decodeLossy(raw)
			out := make([]Value, count)
			for i := range out {
				out[i] = VUnknown{Raw: text}
			}
			return out, nil
		}
	}
	r.Seek(start)

	out := make([]Value, 0, count)
	fellBack := false
	for i := 0; i < count; i++ {
		length, err := r.ReadU32LE()
		if err != nil {
			fellBack = true
			break
		}
		raw, err := r.ReadFixed(int(length))
		if err != nil {
			fellBack = true
			break
		}
		out = append(out, VUnknown{Raw: decodeLossy(raw)})
	}
	if !fellBack && len(out) == count {
		return out, nil
	}

	placeholders := make([]Value, count)
	for i := range placeholders {
		placeholders[i] = VUnknown{Raw: "<unknown>"}
	}
	return placeholders, nil
}

// readProtectedString implements §4.3.2: u32 length, then length
// bytes; zlib-decompress if the payload starts with the zlib magic,
// else try raw DEFLATE, else use the bytes as-is; decode UTF-8 with
// lossy fallback to a Latin-1-equivalent mapping.
func readProtectedString(r *byteio.Reader) (string, error) {
	length, err := r.ReadU32LE()
	if err != nil {
		return "", err
	}
	raw, err := r.ReadFixed(int(length))
	if err != nil {
		return "", err
	}

	content := raw
	switch {
	case len(raw) >= 2 && raw[0] == 0x78 && raw[1] == 0x9C:
		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if out, err := io.ReadAll(zr); err == nil {
				content = out
			}
			zr.Close()
		}
	default:
		fr := flate.NewReader(bytes.NewReader(raw))
		if out, err := io.ReadAll(fr); err == nil && len(out) > 0 {
			content = out
		}
		fr.Close()
	}
	return decodeLossy(content), nil
}

// decodeLossy decodes b as UTF-8; if it isn't valid UTF-8, each byte is
// treated as its own Latin-1 codepoint rather than being replaced, so
// no information is discarded.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
