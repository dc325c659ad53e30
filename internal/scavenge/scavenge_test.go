package scavenge

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/admission"
)

func fakePNG(t *testing.T, trailing []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(pngSignature)
	writeChunk(&buf, "IHDR", []byte("0123456789012345"))
	writeChunk(&buf, "IDAT", []byte("some-pixel-data"))
	writeChunk(&buf, "IEND", nil)
	buf.Write(trailing)
	return buf.Bytes()
}

func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf.Write(lenBuf[:])
	buf.WriteString(typ)
	buf.Write(data)
	crc := crc32.ChecksumIEEE(append([]byte(typ), data...))
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc)
	buf.Write(crcBuf[:])
}

func TestFindPNGsBoundary(t *testing.T) {
	png := fakePNG(t, nil)
	buf := append([]byte("junk before..."), png...)
	buf = append(buf, []byte("junk after")...)

	found := findPNGs(buf)
	if len(found) != 1 {
		t.Fatalf("got %d PNGs, want 1", len(found))
	}
	if !bytes.Equal(found[0], png) {
		t.Fatalf("recovered PNG range does not match exactly")
	}
}

func TestFindPNGsSkipsMalformedHit(t *testing.T) {
	buf := append([]byte{}, pngSignature...)
	buf = append(buf, []byte("not a real chunk stream")...)
	found := findPNGs(buf)
	if len(found) != 0 {
		t.Fatalf("expected no PNGs recovered from truncated stream, got %d", len(found))
	}
}

func TestFindJPEGs(t *testing.T) {
	buf := append([]byte("noise"), jpegSOI...)
	buf = append(buf, []byte("payload")...)
	buf = append(buf, jpegEOI...)
	buf = append(buf, []byte("more noise")...)

	found := findJPEGs(buf)
	if len(found) != 1 {
		t.Fatalf("got %d JPEGs, want 1", len(found))
	}
}

func TestFindProtectedStringEnvelopes(t *testing.T) {
	buf := []byte(`garbage <ProtectedString name="Source">print("hi")</ProtectedString> trailer`)
	found := findProtectedStringEnvelopes(buf)
	if len(found) != 1 || found[0] != `print("hi")` {
		t.Fatalf("got %#v", found)
	}
}

func TestFindLuaBlocksRecoversSingleFunction(t *testing.T) {
	src := `function greet(name)
	local message = "hello " .. name
	return message
end`
	buf := []byte("binary junk " + src + " trailing junk")
	found := findLuaBlocks(buf)
	if len(found) != 1 {
		t.Fatalf("got %d blocks, want 1: %#v", len(found), found)
	}
	if found[0] != src {
		t.Fatalf("block mismatch:\ngot:  %q\nwant: %q", found[0], src)
	}
}

func TestFindLuaBlocksHandlesNestedFunctions(t *testing.T) {
	src := `function outer()
	local x = 1
	function inner()
		return x
	end
	return inner
end`
	buf := []byte("binary junk " + src + " trailing junk")
	found := findLuaBlocks(buf)
	if len(found) != 1 {
		t.Fatalf("got %d blocks from nested definitions, want 1 (the inner hit's window starts at the outer function, so it dedups): %#v", len(found), found)
	}
}

func TestFindLuaBlocksDiscardsShort(t *testing.T) {
	buf := []byte("function end")
	found := findLuaBlocks(buf)
	if len(found) != 0 {
		t.Fatalf("expected short candidate discarded, got %#v", found)
	}
}

func TestFindLuaBlocksDedups(t *testing.T) {
	src := `function repeatedBlockBody() return 1 end`
	buf := []byte(src + " ... " + src)
	found := findLuaBlocks(buf)
	if len(found) != 1 {
		t.Fatalf("expected dedup to 1 block, got %d", len(found))
	}
}

func TestFindMergedPrintableRunsBridgesGaps(t *testing.T) {
	run := bytes.Repeat([]byte("a"), 50)
	gap := []byte{0x00, 0x01, 0x02}
	buf := append(append(append([]byte{}, run...), gap...), run...)
	found := findMergedPrintableRuns(buf)
	if len(found) != 1 {
		t.Fatalf("expected gap to be bridged into one run, got %d", len(found))
	}
}

func TestFindMergedPrintableRunsDiscardsShort(t *testing.T) {
	buf := bytes.Repeat([]byte("a"), 10)
	found := findMergedPrintableRuns(buf)
	if len(found) != 0 {
		t.Fatalf("expected short run discarded, got %#v", found)
	}
}

func TestFindPrintableStrings(t *testing.T) {
	buf := append([]byte{0x00, 0x01}, []byte("helloworld")...)
	buf = append(buf, 0x00)
	found := findPrintableStrings(buf)
	if len(found) != 1 || found[0] != "helloworld" {
		t.Fatalf("got %#v", found)
	}
}

func TestClassifyAssetURL(t *testing.T) {
	cases := map[string]string{
		"rbxassetid://123/soundtrack.mp3": "sound",
		"http://example.com/decal.png":    "image",
		"rbxasset://textures/thing":       "image",
		"http://example.com/misc":         "asset",
	}
	for in, want := range cases {
		if got := classifyAssetURL(in); got != want {
			t.Errorf("classifyAssetURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScanAdmissionFilterDedupsAcrossCalls(t *testing.T) {
	png := fakePNG(t, nil)
	f := admission.New(16)

	first := Scan(png, f)
	second := Scan(png, f)

	if len(first.PNGs) != 1 {
		t.Fatalf("first scan expected 1 PNG, got %d", len(first.PNGs))
	}
	if len(second.PNGs) != 0 {
		t.Fatalf("second scan expected admission filter to drop repeat PNG, got %d", len(second.PNGs))
	}
}
