package identifier

import (
	"github.com/treediff-io/treediff/pkg/encoding"
	"github.com/treediff-io/treediff/pkg/random"
)

const (
	// PrefixSnapshot is the prefix used for snapshot identifiers.
	PrefixSnapshot = "snap_"
	// PrefixDiff is the prefix used for diff run identifiers.
	PrefixDiff = "diff_"
)

// New generates a new collision-resistant identifier with the specified
// prefix.
func New(prefix string) (string, error) {
	// Create the random value.
	value, err := random.New(random.CollisionResistantLength)
	if err != nil {
		return "", err
	}

	// Encode the random value.
	return prefix + encoding.EncodeBase62(value), nil
}
