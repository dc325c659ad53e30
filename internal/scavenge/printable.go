package scavenge

const (
	printableGapTolerance = 64
	printableMergedMin    = 80
	printableMergedLong   = 120
	printableStringMin    = 8
)

// findMergedPrintableRuns scans buf for runs of printable bytes,
// bridging gaps of up to printableGapTolerance non-printable bytes so
// that short binary interruptions (padding, a length field) don't
// split one logical text region into many. Runs shorter than
// printableMergedMin are discarded; runs at or past printableMergedLong
// are the ones most likely to be genuine recovered text (spec.md
// §4.4).
func findMergedPrintableRuns(buf []byte) []string {
	var out []string

	i := 0
	for i < len(buf) {
		if !isPrintable(buf[i]) {
			i++
			continue
		}
		start := i
		end := i
		for i < len(buf) {
			if isPrintable(buf[i]) {
				end = i + 1
				i++
				continue
			}
			gapStart := i
			for i < len(buf) && !isPrintable(buf[i]) && i-gapStart < printableGapTolerance {
				i++
			}
			if i >= len(buf) || !isPrintable(buf[i]) {
				break
			}
		}
		if end-start >= printableMergedMin {
			out = append(out, decodeLossy(buf[start:end]))
		}
	}
	return out
}

// findPrintableStrings extracts strictly contiguous printable-ASCII
// runs of at least printableStringMin bytes, without the gap-bridging
// findMergedPrintableRuns applies.
func findPrintableStrings(buf []byte) []string {
	var out []string

	i := 0
	for i < len(buf) {
		if !isPrintable(buf[i]) {
			i++
			continue
		}
		start := i
		for i < len(buf) && isPrintable(buf[i]) {
			i++
		}
		if i-start >= printableStringMin {
			out = append(out, string(buf[start:i]))
		}
	}
	return out
}
