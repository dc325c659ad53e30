// Package scavenge implements the heuristic recovery pipeline: a set
// of independent byte-pattern scans over the raw input buffer that
// make no assumptions about structured parsing having succeeded
// (spec.md §4.4). Each sub-scan is self-contained and its failures
// are local; a malformed hit is skipped rather than aborting the scan.
package scavenge

import "github.com/pinkythegawd/Roblox-rbxl-extractor/internal/admission"

// Result collects everything the scavenger recovered from one input
// buffer, before the orchestrator (C6) merges it with structured
// parser output and before the canonicalizer (C5) dedups script text.
type Result struct {
	PNGs             [][]byte
	JPEGs            [][]byte
	ProtectedStrings []string
	LuaBlocks        []string
	MergedRegions    []string
	PrintableStrings []string

	SoundRefs []string
	ImageRefs []string
	Assets    []string

	ModelFragments []string
	SoundFragments []string
}

// Scan runs every scavenger sub-pass over buf. admit, if non-nil, is
// an admission.Filter shared across a batch run: candidates already
// admitted in an earlier file of the same batch are dropped here so
// the orchestrator never rewrites the same recovered asset twice.
func Scan(buf []byte, admit *admission.Filter) Result {
	var res Result

	for _, png := range findPNGs(buf) {
		if admit.Seen(png) {
			continue
		}
		res.PNGs = append(res.PNGs, png)
	}

	for _, jpg := range findJPEGs(buf) {
		if admit.Seen(jpg) {
			continue
		}
		res.JPEGs = append(res.JPEGs, jpg)
	}

	for _, ps := range findProtectedStringEnvelopes(buf) {
		if admit.Seen([]byte(ps)) {
			continue
		}
		res.ProtectedStrings = append(res.ProtectedStrings, ps)
	}

	res.LuaBlocks = findLuaBlocks(buf)
	res.MergedRegions = findMergedPrintableRuns(buf)
	strs := findPrintableStrings(buf)
	res.PrintableStrings = strs

	for _, s := range strs {
		if isAssetURLCandidate(s) {
			switch classifyAssetURL(s) {
			case "sound":
				res.SoundRefs = append(res.SoundRefs, s)
			case "image":
				res.ImageRefs = append(res.ImageRefs, s)
			default:
				res.Assets = append(res.Assets, s)
			}
		}
		if looksLikeModelFragment(s) {
			res.ModelFragments = append(res.ModelFragments, s)
		}
		if looksLikeSoundFragment(s) {
			res.SoundFragments = append(res.SoundFragments, s)
		}
	}

	return res
}
