package diff

import (
	"time"

	"github.com/google/uuid"
)

// Metadata records the provenance and parameters of one diff run. It is
// echoed back unmodified on the resulting Result.
type Metadata struct {
	// Identifier is the diff run's unique identifier.
	Identifier string `json:"identifier"`
	// GeneratedAt is the time at which the diff was generated.
	GeneratedAt time.Time `json:"generatedAt"`
	// SnapshotSource identifies the source of the previous snapshot (usually
	// a snapshot file path).
	SnapshotSource string `json:"snapshotSource,omitempty"`
	// SnapshotDate is the time at which the previous snapshot was captured,
	// if known.
	SnapshotDate *time.Time `json:"snapshotDate,omitempty"`
	// ComparisonRoot is the root path against which both snapshots' paths are
	// normalized.
	ComparisonRoot string `json:"comparisonRoot"`
	// FiltersApplied describes any filters applied to the inputs.
	FiltersApplied []string `json:"filtersApplied,omitempty"`
	// Options are the options applied during the diff.
	Options *Options `json:"options"`
}

// NewMetadata creates metadata for a diff run with a fresh identifier and the
// current time.
func NewMetadata(snapshotSource, comparisonRoot string, filters []string, options *Options) *Metadata {
	// Use default options if none were provided.
	if options == nil {
		options = DefaultOptions()
	}

	// Create the metadata.
	return &Metadata{
		Identifier:     uuid.NewString(),
		GeneratedAt:    time.Now(),
		SnapshotSource: snapshotSource,
		ComparisonRoot: comparisonRoot,
		FiltersApplied: filters,
		Options:        options,
	}
}
