// Package script implements the canonicalizer (C5): it turns the raw
// candidate strings gathered from both the structured parser and the
// heuristic scavenger into a deduplicated, named set of script bodies
// ready to write to disk (spec.md §4.5).
package script

import (
	"crypto/sha256"
	"sort"
	"strings"
)

// keywords gates a candidate in at the cleaning stage: text with none
// of these substrings is almost certainly not Lua source.
var keywords = []string{
	"function", "local", "end", "print", "--",
	"if", "then", "else", "for", "while",
	"script", "game", "workspace", "require", "module",
}

// Clean applies spec.md §4.5's cleaning rule to a raw candidate: strip
// NULs, require a Lua-ish keyword, trim leading and trailing whitespace
// from each line and drop empty lines, then reject bodies that are too short to be real
// source (or merely short without a strong Lua marker).
func Clean(original string) (cleaned string, ok bool) {
	s := strings.ReplaceAll(original, "\x00", "")
	if !containsAny(s, keywords...) {
		return "", false
	}

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
	}
	cleaned = strings.Join(kept, "\n")

	if len(cleaned) < 10 {
		return "", false
	}
	if len(cleaned) < 120 && !containsAny(cleaned, "function", "return", "local", "require") {
		return "", false
	}
	return cleaned, true
}

// canonicalForm collapses all whitespace runs in cleaned to a single
// space, giving the string that is actually hashed for dedup: two
// script bodies differing only in indentation or line breaks collide.
func canonicalForm(cleaned string) string {
	return strings.Join(strings.Fields(cleaned), " ")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type entry struct {
	original  string
	cleaned   string
	firstSeen int
}

// Table accumulates cleaned candidates, deduplicating by the SHA-256
// of their canonical form and keeping the longer cleaned body on
// collision.
type Table struct {
	entries map[[32]byte]*entry
	next    int
}

// New returns an empty canonicalization table.
func New() *Table {
	return &Table{entries: make(map[[32]byte]*entry)}
}

// Add cleans and folds candidate into the table. It is a no-op if
// candidate fails cleaning.
func (t *Table) Add(candidate string) {
	cleaned, ok := Clean(candidate)
	if !ok {
		return
	}
	key := sha256.Sum256([]byte(canonicalForm(cleaned)))

	if existing, found := t.entries[key]; found {
		if len(cleaned) > len(existing.cleaned) {
			existing.original = candidate
			existing.cleaned = cleaned
		}
		return
	}
	t.entries[key] = &entry{original: candidate, cleaned: cleaned, firstSeen: t.next}
	t.next++
}

// Script is one finalized, named, indexed script body.
type Script struct {
	Name     string
	Original string
	Cleaned  string
	Index    int
}

// Scripts sorts the deduplicated table by cleaned length descending
// (ties broken by insertion order, for determinism), and assigns each
// entry a name and its sort index.
func (t *Table) Scripts() []Script {
	all := make([]*entry, 0, len(t.entries))
	for _, e := range t.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if len(all[i].cleaned) != len(all[j].cleaned) {
			return len(all[i].cleaned) > len(all[j].cleaned)
		}
		return all[i].firstSeen < all[j].firstSeen
	})

	out := make([]Script, len(all))
	for i, e := range all {
		out[i] = Script{
			Name:     deriveName(e.original, i),
			Original: e.original,
			Cleaned:  e.cleaned,
			Index:    i,
		}
	}
	return out
}
