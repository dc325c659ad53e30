package rbxlextract

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/rbxbin"
)

func TestExtractionResultMarshalRoundTrip(t *testing.T) {
	want := ExtractionResult{
		Scripts:   []string{"a.lua", "b.lua"},
		Images:    []string{"c.png"},
		SoundRefs: []string{"rbxasset://sounds/x.mp3"},
	}
	data, err := want.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := UnmarshalResult(data)
	if err != nil {
		t.Fatalf("UnmarshalResult: %v", err)
	}
	if len(got.Scripts) != 2 || got.Scripts[0] != "a.lua" || got.Scripts[1] != "b.lua" {
		t.Fatalf("got Scripts %v", got.Scripts)
	}
	if len(got.Images) != 1 || got.Images[0] != "c.png" {
		t.Fatalf("got Images %v", got.Images)
	}
	if len(got.SoundRefs) != 1 || got.SoundRefs[0] != "rbxasset://sounds/x.mp3" {
		t.Fatalf("got SoundRefs %v", got.SoundRefs)
	}
}

func TestSanitizeName(t *testing.T) {
	got := sanitizeName("weird/name:here*.lua")
	want := "weird_name_here_.lua"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSinkCollisionAvoidance(t *testing.T) {
	dir := t.TempDir()
	s, err := newSink(dir, false)
	if err != nil {
		t.Fatalf("newSink: %v", err)
	}

	p1, err := s.write("Scripts", "thing", ".lua", []byte("one"))
	if err != nil {
		t.Fatalf("write 1: %v", err)
	}
	p2, err := s.write("Scripts", "thing", ".lua", []byte("two"))
	if err != nil {
		t.Fatalf("write 2: %v", err)
	}
	if p1 == p2 {
		t.Fatalf("expected distinct paths, got %q twice", p1)
	}
	if filepath.Base(p2) != "thing_1.lua" {
		t.Fatalf("expected _1 suffix, got %q", filepath.Base(p2))
	}

	// A fresh sink over the same directory must still avoid the
	// files the first sink actually wrote (P7: never overwrite).
	s2, err := newSink(dir, false)
	if err != nil {
		t.Fatalf("newSink 2: %v", err)
	}
	p3, err := s2.write("Scripts", "thing", ".lua", []byte("three"))
	if err != nil {
		t.Fatalf("write 3: %v", err)
	}
	if filepath.Base(p3) != "thing_2.lua" {
		t.Fatalf("expected monotonic _2 suffix across sinks, got %q", filepath.Base(p3))
	}
}

func TestExtractEmptyFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := Extract(nil, dir, DefaultOptions())
	if err == nil {
		t.Fatalf("expected BadMagic error for empty input")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("expected no output directory created, found %v", entries)
	}
}

func TestExtractMagicOnlyReturnsZeroCounts(t *testing.T) {
	dir := t.TempDir()
	buf := append(append([]byte{}, rbxbin.Magic...), 0x00, 0x00, 0x00)

	res, err := Extract(buf, dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for k, v := range res.Counts() {
		if v != 0 {
			t.Fatalf("expected zero count for %q, got %d", k, v)
		}
	}
}

func TestExtractHeuristicOnlyRecoversProtectedString(t *testing.T) {
	dir := t.TempDir()
	buf := []byte(`<ProtectedString name="Source">local x = 1 function f() return x end</ProtectedString>`)

	res, err := Extract(buf, dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Scripts) != 1 {
		t.Fatalf("expected exactly 1 recovered script, got %d: %v", len(res.Scripts), res.Scripts)
	}
	content, err := os.ReadFile(res.Scripts[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "local x = 1 function f() return x end"
	if string(content) != want {
		t.Fatalf("got %q, want %q", content, want)
	}
}

func TestExtractGzipXMLFallsBackToScavenger(t *testing.T) {
	dir := t.TempDir()
	xml := []byte(`<?xml version="1.0"?><roblox><Item class="Script"><ProtectedString name="Source">local x = 1 function f() return x end</ProtectedString></Item></roblox>`)

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(xml)
	w.Close()

	res, err := Extract(gz.Bytes(), dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Scripts) != 1 {
		t.Fatalf("expected 1 script recovered from gzip-wrapped XML, got %d", len(res.Scripts))
	}
}

func TestExtractOptionsGateCategories(t *testing.T) {
	dir := t.TempDir()
	buf := []byte(`<ProtectedString name="Source">local x = 1 function f() return x end</ProtectedString>`)

	opts := DefaultOptions()
	opts.Scripts = false
	res, err := Extract(buf, dir, opts)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Scripts) != 0 {
		t.Fatalf("expected no scripts written when Options.Scripts is false, got %d", len(res.Scripts))
	}
}

func TestExtractDryRunWritesNoFiles(t *testing.T) {
	dir := t.TempDir()
	buf := []byte(`<ProtectedString name="Source">local x = 1 function f() return x end</ProtectedString>`)

	opts := DefaultOptions()
	opts.DryRun = true
	res, err := Extract(buf, dir, opts)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Scripts) != 1 {
		t.Fatalf("expected result to still report 1 script, got %d", len(res.Scripts))
	}
	if _, err := os.Stat(filepath.Join(dir, "extracted")); err == nil {
		t.Fatalf("dry run must not create output directory")
	}
}
