package scavenge

import "strings"

// isAssetURLCandidate reports whether s contains one of the markers
// spec.md §4.4 uses to flag a printable string as a probable asset
// reference.
func isAssetURLCandidate(s string) bool {
	lower := strings.ToLower(s)
	return containsAny(lower, "rbxasset", "http", "www", ".com", "asset", "sound", "image")
}

// classifyAssetURL buckets an asset-URL candidate into sound, image,
// or the generic asset category by substring (spec.md §4.4).
func classifyAssetURL(s string) string {
	lower := strings.ToLower(s)
	switch {
	case containsAny(lower, "sound", ".mp3", ".ogg", ".wav"):
		return "sound"
	case containsAny(lower, "image", "texture", "decal", ".png", ".jpg", ".jpeg"):
		return "image"
	default:
		return "asset"
	}
}

// looksLikeModelFragment reports whether s contains markers typical of
// a scavenged model/instance XML-ish fragment.
func looksLikeModelFragment(s string) bool {
	return containsAny(s, "<Model", "<Part")
}

// looksLikeSoundFragment reports whether s contains markers typical of
// a scavenged sound reference.
func looksLikeSoundFragment(s string) bool {
	return containsAny(s, "SoundId", "sound", "wav")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
