package rbxbin

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/byteio"
)

func readerFor(raw []byte) *byteio.Reader {
	var buf bytes.Buffer
	var lenBytes [4]byte
	binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(raw)))
	buf.Write(lenBytes[:])
	buf.Write(raw)
	return byteio.New(buf.Bytes())
}

func TestReadProtectedStringZlib(t *testing.T) {
	want := "local x = 1 function f() return x end"
	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	zw.Write([]byte(want))
	zw.Close()

	got, err := readProtectedString(readerFor(zbuf.Bytes()))
	if err != nil {
		t.Fatalf("readProtectedString: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadProtectedStringRawDeflate(t *testing.T) {
	want := "local x = 1 function f() return x end"
	var fbuf bytes.Buffer
	fw, err := flate.NewWriter(&fbuf, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate.NewWriter: %v", err)
	}
	fw.Write([]byte(want))
	fw.Close()

	got, err := readProtectedString(readerFor(fbuf.Bytes()))
	if err != nil {
		t.Fatalf("readProtectedString: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadProtectedStringPlainBytes(t *testing.T) {
	want := "not compressed at all"
	got, err := readProtectedString(readerFor([]byte(want)))
	if err != nil {
		t.Fatalf("readProtectedString: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
