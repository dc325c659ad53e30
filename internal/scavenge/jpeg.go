package scavenge

var jpegSOI = []byte{0xFF, 0xD8}
var jpegEOI = []byte{0xFF, 0xD9}

// findJPEGs scans for FF D8 followed eventually by FF D9 and emits the
// inclusive range. No internal structure is validated (spec.md §4.4).
func findJPEGs(buf []byte) [][]byte {
	var out [][]byte
	i := 0
	for {
		start := indexFrom(buf, jpegSOI, i)
		if start < 0 {
			break
		}
		end := indexFrom(buf, jpegEOI, start+len(jpegSOI))
		if end < 0 {
			break
		}
		out = append(out, buf[start:end+len(jpegEOI)])
		i = end + len(jpegEOI)
	}
	return out
}
