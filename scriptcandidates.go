package rbxlextract

import (
	"strings"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/rbxbin"
)

// luaKeywords is the set spec.md §4.5 uses to decide that a string
// property, regardless of its name, is probably Lua source.
var luaKeywords = []string{"function", "local", "end", "return", "--"}

// gatherStructuredScriptCandidates walks every decoded instance and
// collects properties that look like script source: either the
// property's own name matches the heuristic, or its string value
// contains a Lua keyword and is long enough to plausibly be real code
// (spec.md §4.6 step 2).
func gatherStructuredScriptCandidates(tree rbxbin.Tree) []string {
	var out []string
	for _, inst := range tree.Instances {
		for name, v := range inst.Properties {
			text, ok := rbxbin.StringValue(v)
			if !ok {
				continue
			}
			lower := strings.ToLower(name)
			nameMatches := strings.Contains(lower, "source") ||
				strings.Contains(lower, "script") ||
				strings.Contains(lower, "<protected")
			valueMatches := len(text) > 30 && containsAnyKeyword(text)
			if nameMatches || valueMatches {
				out = append(out, text)
			}
		}
	}
	return out
}

func containsAnyKeyword(s string) bool {
	for _, kw := range luaKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
