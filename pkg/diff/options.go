package diff

import (
	"errors"
)

const (
	// DefaultMoveThreshold is the default minimum similarity score required
	// to classify an addition/removal pair as a move.
	DefaultMoveThreshold = 0.8
)

// Options control diff engine behavior.
type Options struct {
	// MaxDepth is the maximum depth considered during comparison. A value of
	// 0 indicates no limit. It is recorded for provenance; depth limiting is
	// applied at scan time.
	MaxDepth uint `json:"maxDepth,omitempty" yaml:"maxDepth"`
	// ShowSize indicates whether or not renderers should display sizes.
	ShowSize bool `json:"showSize" yaml:"showSize"`
	// SortKey is the label of the sort key applied to the input, if any.
	SortKey string `json:"sortKey,omitempty" yaml:"sortKey"`
	// DetectMoves indicates whether or not move detection should be
	// performed.
	DetectMoves bool `json:"detectMoves" yaml:"detectMoves"`
	// MoveThreshold is the minimum similarity score (between 0 and 1)
	// required to accept a move match.
	MoveThreshold float64 `json:"moveThreshold" yaml:"moveThreshold"`
	// ShowUnchanged indicates whether or not renderers should display
	// unchanged entries.
	ShowUnchanged bool `json:"showUnchanged" yaml:"showUnchanged"`
	// IgnoreMoves suppresses move detection entirely, overriding
	// DetectMoves.
	IgnoreMoves bool `json:"ignoreMoves" yaml:"ignoreMoves"`
}

// DefaultOptions returns the default diff options.
func DefaultOptions() *Options {
	return &Options{
		ShowSize:      true,
		DetectMoves:   true,
		MoveThreshold: DefaultMoveThreshold,
	}
}

// EnsureValid ensures that Options' invariants are respected.
func (o *Options) EnsureValid() error {
	// A nil options value is not valid.
	if o == nil {
		return errors.New("nil options")
	}

	// Verify that the move threshold is a valid similarity score.
	if o.MoveThreshold < 0 || o.MoveThreshold > 1 {
		return errors.New("move threshold outside [0, 1]")
	}

	// Success.
	return nil
}
