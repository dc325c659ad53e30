package scavenge

import "encoding/binary"

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// findPNGs scans buf for the PNG signature and, from each hit, walks
// PNG chunks (4-byte big-endian length, 4-byte type, length bytes,
// 4-byte CRC) until an IEND chunk is seen, emitting the exact byte
// range from the signature through the end of IEND's CRC. A malformed
// chunk walk skips that hit and resumes scanning one byte past the
// signature (spec.md §4.4).
func findPNGs(buf []byte) [][]byte {
	var out [][]byte
	i := 0
	for {
		hit := indexFrom(buf, pngSignature, i)
		if hit < 0 {
			break
		}
		if end, ok := walkPNGChunks(buf, hit+len(pngSignature)); ok {
			out = append(out, buf[hit:end])
			i = end
		} else {
			i = hit + 1
		}
	}
	return out
}

func walkPNGChunks(buf []byte, pos int) (int, bool) {
	for {
		if pos+8 > len(buf) {
			return 0, false
		}
		length := binary.BigEndian.Uint32(buf[pos:])
		typ := buf[pos+4 : pos+8]
		chunkEnd := pos + 8 + int(length) + 4
		if chunkEnd > len(buf) || chunkEnd < pos {
			return 0, false
		}
		if string(typ) == "IEND" {
			return chunkEnd, true
		}
		pos = chunkEnd
	}
}

func indexFrom(buf, sig []byte, from int) int {
	if from >= len(buf) {
		return -1
	}
	idx := indexBytes(buf[from:], sig)
	if idx < 0 {
		return -1
	}
	return from + idx
}
