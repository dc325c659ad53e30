package rbxlextract

import (
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/admission"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/chunkcache"
)

// Options gates which categories the orchestrator produces. When a
// category's flag is false, neither the structured path nor the
// heuristic path writes anything for it (spec.md §6).
type Options struct {
	Scripts bool
	Models  bool
	Sounds  bool
	Images  bool

	// DryRun runs both extraction passes and populates the result
	// without touching the filesystem sink.
	DryRun bool

	// Cache, if non-nil, memoizes chunk decompression within this
	// parse. Optional.
	Cache *chunkcache.Cache

	// Admit, if non-nil, memoizes scavenger candidates across a batch
	// of Extract calls sharing the same Options value.
	Admit *admission.Filter
}

// DefaultOptions enables every category with no cache and no dry run.
func DefaultOptions() Options {
	return Options{Scripts: true, Models: true, Sounds: true, Images: true}
}

// NewBatchAdmission builds an admission filter sized by
// admissionCapacity (overridable via RBX_EXTRACT_ADMISSION_CAPACITY),
// for sharing across a batch of Extract calls via Options.Admit.
func NewBatchAdmission() *admission.Filter {
	return admission.New(admissionCapacity)
}
