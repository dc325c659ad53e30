package rbxlextract

import "encoding/json"

// ExtractionResult is the per-category mapping of output file paths
// and in-memory reference strings returned by Extract (spec.md §6).
type ExtractionResult struct {
	Scripts []string
	Images  []string
	Sounds  []string
	Models  []string
	Assets  []string

	SoundRefs []string
	ImageRefs []string
}

// Counts returns a convenience per-category count map, derived from
// the path and reference slices (not additional state).
func (r ExtractionResult) Counts() map[string]int {
	return map[string]int{
		"scripts":    len(r.Scripts),
		"images":     len(r.Images),
		"sounds":     len(r.Sounds),
		"models":     len(r.Models),
		"assets":     len(r.Assets),
		"sound_refs": len(r.SoundRefs),
		"image_refs": len(r.ImageRefs),
	}
}

// Marshal serializes r for internal/batchstore: the cached value is
// the full path/reference listing, not just Counts(), so a cache hit
// can report exactly what a fresh extraction would have written.
func (r ExtractionResult) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalResult reverses Marshal, for reading back a batchstore hit.
func UnmarshalResult(data []byte) (ExtractionResult, error) {
	var r ExtractionResult
	err := json.Unmarshal(data, &r)
	return r, err
}
