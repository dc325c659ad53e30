package rbxlextract

import (
	"math"
	"os"
	"strconv"
)

// admissionCapacity is the default size of the cross-file scavenger
// admission filter, overridable for large batch runs. Read once at
// process start, matching spec.md §9's "the only process-wide state
// is ... read-once, never mutated" rule.
var admissionCapacity int = calcAdmissionCapacity()

func calcAdmissionCapacity() int {
	const defaultCapacity = 4096
	e := os.Getenv("RBX_EXTRACT_ADMISSION_CAPACITY")
	if e == "" {
		return defaultCapacity
	}
	f, err := strconv.ParseFloat(e, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		panic("malformed RBX_EXTRACT_ADMISSION_CAPACITY environment variable, should be a nonnegative entry count: " + e)
	}
	return int(f)
}
