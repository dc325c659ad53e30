package scavenge

import "strings"

const (
	luaWindowBefore = 2000
	luaWindowAfter  = 20000
	luaMinLen       = 30
)

// findLuaBlocks looks for every raw occurrence of "function", expands
// a bounded window around it, and balances function/end occurrences
// inside that window to recover a plausible script body even when the
// surrounding structure is unreadable (spec.md §4.4).
func findLuaBlocks(buf []byte) []string {
	needle := []byte("function")
	var out []string
	seen := make(map[string]bool)

	i := 0
	for {
		hit := indexFrom(buf, needle, i)
		if hit < 0 {
			break
		}
		i = hit + 1

		winStart := hit - luaWindowBefore
		if winStart < 0 {
			winStart = 0
		}
		winEnd := hit + luaWindowAfter
		if winEnd > len(buf) {
			winEnd = len(buf)
		}
		text := decodeLossy(buf[winStart:winEnd])

		start := strings.Index(text, "function")
		if start < 0 {
			continue
		}
		block, ok := balanceFunctionEnd(text[start:])
		if !ok {
			continue
		}
		if len(block) < luaMinLen {
			continue
		}
		if seen[block] {
			continue
		}
		seen[block] = true
		out = append(out, block)
	}
	return out
}

// balanceFunctionEnd scans text (which must start with "function")
// counting function/end occurrences until the end count catches up to
// the function count, and returns the substring up to and including
// that terminating "end".
func balanceFunctionEnd(text string) (string, bool) {
	functions, ends := 0, 0
	pos := 0
	for pos < len(text) {
		fi := indexOfAt(text, "function", pos)
		ei := indexOfAt(text, "end", pos)

		switch {
		case fi < 0 && ei < 0:
			return "", false
		case ei < 0 || (fi >= 0 && fi < ei):
			functions++
			pos = fi + len("function")
		default:
			ends++
			pos = ei + len("end")
			if ends >= functions {
				return text[:pos], true
			}
		}
	}
	return "", false
}

func indexOfAt(s, sub string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.Index(s[from:], sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}
