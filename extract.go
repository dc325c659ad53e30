// Package rbxlextract implements the dual-path Roblox place-file
// asset extractor: a structured binary parser paired with a heuristic
// byte-scavenging recovery pipeline, merged by a single orchestrator
// (spec.md §1–§6).
package rbxlextract

import (
	"log/slog"
	"os"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/rbxbin"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/scavenge"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/script"
)

// debugEnabled is read once at process start per spec.md §9's "global
// state" note: the only process-wide state is the debug-trace flag,
// read once from the environment, never mutated.
var debugEnabled = os.Getenv("RBX_PARSER_DEBUG") != ""

func debugLogger() *slog.Logger {
	level := slog.LevelWarn
	if debugEnabled {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Extract runs both extraction paths over buf and writes categorized
// output under outputDir/extracted, per opts. It propagates only
// file-system errors from the sink and rbxbin.ErrBadMagic when no XML
// fallback applies (spec.md §7's propagation policy).
func Extract(buf []byte, outputDir string, opts Options) (ExtractionResult, error) {
	log := debugLogger()

	var candidates []scriptCandidate
	var scav scavenge.Result

	if xmlText, ok := sniffXML(buf); ok {
		log.Debug("sniffed XML-family input, delegating to heuristic scavenger only")
		scav = scavenge.Scan(xmlText, opts.Admit)
	} else {
		parser := rbxbin.New(opts.Cache, log)
		tree, perr := parser.Parse(buf)
		switch {
		case perr != nil && len(buf) == 0:
			// An empty input has no fallback: nothing to scavenge
			// either. BadMagic is fatal here (spec.md §8 scenario 1).
			return ExtractionResult{}, perr
		case perr != nil:
			// Non-empty but unreadable as either format: the
			// structured path yields nothing, but the heuristic
			// scavenger still runs over the raw bytes (spec.md §8
			// scenario 6).
			log.Debug("structured parse failed, falling back to heuristic-only recovery", "error", perr)
		default:
			for _, text := range gatherStructuredScriptCandidates(tree) {
				candidates = append(candidates, scriptCandidate{text: text, fromStructured: true})
			}
		}
		scav = scavenge.Scan(buf, opts.Admit)
	}

	s, err := newSink(outputDir, opts.DryRun)
	if err != nil {
		return ExtractionResult{}, err
	}

	for _, ps := range scav.ProtectedStrings {
		candidates = append(candidates, scriptCandidate{text: ps})
	}
	for _, block := range scav.LuaBlocks {
		candidates = append(candidates, scriptCandidate{text: block})
	}
	for _, region := range scav.MergedRegions {
		if len(region) >= 120 {
			candidates = append(candidates, scriptCandidate{text: region})
		}
	}
	for _, str := range scav.PrintableStrings {
		if len(str) > 30 && containsAnyKeyword(str) {
			candidates = append(candidates, scriptCandidate{text: str})
		}
	}

	var result ExtractionResult
	result.SoundRefs = scav.SoundRefs
	result.ImageRefs = scav.ImageRefs

	if opts.Scripts {
		result.Scripts = writeScripts(s, candidates)
	}
	if opts.Images {
		result.Images = writeImages(s, scav)
	}
	if opts.Sounds {
		result.Sounds = writeSounds(s, scav)
	}
	if opts.Models {
		result.Models = writeModels(s, scav)
	}
	result.Assets = writeAssets(s, scav)

	return result, nil
}

type scriptCandidate struct {
	text           string
	fromStructured bool
}

// writeScripts runs candidates through the canonicalizer and writes
// the deduplicated set in the table's order: cleaned length
// descending. Structured-sourced candidates are added to the table
// before any scavenger candidate, so they come first only among
// scripts of equal cleaned length.
func writeScripts(s *sink, candidates []scriptCandidate) []string {
	table := script.New()
	for _, c := range candidates {
		table.Add(c.text)
	}

	var paths []string
	for _, sc := range table.Scripts() {
		path, err := s.write("Scripts", sc.Name, ".lua", []byte(sc.Cleaned))
		if err != nil {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func writeImages(s *sink, scav scavenge.Result) []string {
	var paths []string
	for _, png := range scav.PNGs {
		if path, err := s.write("Images", "image", ".png", png); err == nil {
			paths = append(paths, path)
		}
	}
	for _, jpg := range scav.JPEGs {
		if path, err := s.write("Images", "image", ".jpg", jpg); err == nil {
			paths = append(paths, path)
		}
	}
	return paths
}

func writeSounds(s *sink, scav scavenge.Result) []string {
	var paths []string
	for _, ref := range scav.SoundRefs {
		if path, err := s.write("Sounds", "sound", ".txt", []byte(ref)); err == nil {
			paths = append(paths, path)
		}
	}
	for _, frag := range scav.SoundFragments {
		if path, err := s.write("Sounds", "sound", ".txt", []byte(frag)); err == nil {
			paths = append(paths, path)
		}
	}
	return paths
}

func writeModels(s *sink, scav scavenge.Result) []string {
	var paths []string
	for _, frag := range scav.ModelFragments {
		if path, err := s.write("Models", "model", ".model", []byte(frag)); err == nil {
			paths = append(paths, path)
		}
	}
	return paths
}

func writeAssets(s *sink, scav scavenge.Result) []string {
	var paths []string
	written := make(map[string]bool)
	for _, a := range scav.Assets {
		if written[a] {
			continue
		}
		written[a] = true
		if path, err := s.write("References", "asset", ".txt", []byte(a)); err == nil {
			paths = append(paths, path)
		}
	}
	return paths
}
