package rbxlextract

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/rbxbin"
)

func TestSniffXMLBinaryBypasses(t *testing.T) {
	buf := append(append([]byte{}, rbxbin.Magic...), 0x00)
	if _, ok := sniffXML(buf); ok {
		t.Fatalf("expected binary-magic input to bypass XML sniffing")
	}
}

func TestSniffXMLPlain(t *testing.T) {
	buf := []byte(`<?xml version="1.0"?><roblox></roblox>`)
	out, ok := sniffXML(buf)
	if !ok {
		t.Fatalf("expected plain XML to be recognized")
	}
	if string(out) != string(buf) {
		t.Fatalf("expected passthrough of plain XML bytes")
	}
}

func TestSniffXMLGzipWrapped(t *testing.T) {
	xml := []byte(`<roblox version="4"></roblox>`)
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(xml)
	w.Close()

	out, ok := sniffXML(gz.Bytes())
	if !ok {
		t.Fatalf("expected gzip-wrapped XML to be recognized")
	}
	if string(out) != string(xml) {
		t.Fatalf("got %q, want %q", out, xml)
	}
}

func TestSniffXMLNeitherFormat(t *testing.T) {
	if _, ok := sniffXML([]byte("just some random bytes")); ok {
		t.Fatalf("expected unrecognized bytes to fail XML sniff")
	}
}
