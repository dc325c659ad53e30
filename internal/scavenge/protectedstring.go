package scavenge

const (
	protectedStringOpen  = `<ProtectedString name="Source">`
	protectedStringClose = `</ProtectedString>`
)

// findProtectedStringEnvelopes does a direct byte-level search for the
// literal ProtectedString envelope tags and decodes the payload between
// them (spec.md §4.4). This recovers intact script bodies even when an
// enclosing XML fragment is otherwise unreadable.
func findProtectedStringEnvelopes(buf []byte) []string {
	open := []byte(protectedStringOpen)
	close_ := []byte(protectedStringClose)

	var out []string
	i := 0
	for {
		start := indexFrom(buf, open, i)
		if start < 0 {
			break
		}
		payloadStart := start + len(open)
		end := indexFrom(buf, close_, payloadStart)
		if end < 0 {
			break
		}
		text := stripNulls(decodeLossy(buf[payloadStart:end]))
		out = append(out, text)
		i = end + len(close_)
	}
	return out
}
