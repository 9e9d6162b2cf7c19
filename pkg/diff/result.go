package diff

// Result is the complete output of one comparison. It is constructed once per
// Compare call and immutable afterward; renderers consume it read-only.
type Result struct {
	// Changes is the change forest, sorted by normalized path.
	Changes []*Change `json:"changes"`
	// Summary holds aggregate statistics for the comparison.
	Summary *Summary `json:"summary"`
	// Metadata is the metadata supplied to the comparison, echoed back
	// unmodified.
	Metadata *Metadata `json:"metadata"`
}
