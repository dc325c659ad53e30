package rbxlextract

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/rbxbin"
)

// sniffXML implements spec.md §6's input-format detection: the core
// tries gzip-wrapped XML, plain XML, and zlib/raw-DEFLATE XML by magic
// sniffing before falling through to the binary path. It returns the
// decompressed XML text and true on a match.
func sniffXML(buf []byte) ([]byte, bool) {
	if bytes.HasPrefix(buf, rbxbin.Magic) {
		return nil, false
	}

	if len(buf) >= 2 && buf[0] == 0x1F && buf[1] == 0x8B {
		if gr, err := gzip.NewReader(bytes.NewReader(buf)); err == nil {
			if out, err := io.ReadAll(gr); err == nil && looksLikeXML(out) {
				return out, true
			}
		}
	}

	if looksLikeXML(buf) {
		return buf, true
	}

	if len(buf) >= 2 && buf[0] == 0x78 {
		if zr, err := zlib.NewReader(bytes.NewReader(buf)); err == nil {
			if out, err := io.ReadAll(zr); err == nil && looksLikeXML(out) {
				return out, true
			}
		}
	}

	fr := flate.NewReader(bytes.NewReader(buf))
	out, err := io.ReadAll(fr)
	fr.Close()
	if err == nil && looksLikeXML(out) {
		return out, true
	}

	return nil, false
}

func looksLikeXML(b []byte) bool {
	trimmed := bytes.TrimLeft(b, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<roblox "))
}
