package script

import (
	"fmt"
	"strings"
)

// deriveName implements spec.md §4.5's naming rule: look for
// `"Name">...<` or `Script name="..."` inside the original text;
// fall back to "script". The sort index is always appended to
// guarantee uniqueness across the output set.
func deriveName(original string, index int) string {
	base := "script"
	if name, ok := extractBetween(original, `"Name">`, "<"); ok && name != "" {
		base = name
	} else if name, ok := extractBetween(original, `Script name="`, `"`); ok && name != "" {
		base = name
	}
	return fmt.Sprintf("%s_%d", base, index)
}

func extractBetween(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	if start < 0 {
		return "", false
	}
	start += len(open)
	end := strings.Index(s[start:], close)
	if end < 0 {
		return "", false
	}
	return s[start : start+end], true
}
