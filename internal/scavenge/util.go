package scavenge

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

func indexBytes(haystack, needle []byte) int {
	return bytes.Index(haystack, needle)
}

// decodeLossy decodes b as UTF-8, falling back to treating each byte
// as its own Latin-1 codepoint when b isn't valid UTF-8.
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

func stripNulls(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func isPrintable(b byte) bool {
	return b == 0x09 || (b >= 0x20 && b <= 0x7E)
}
