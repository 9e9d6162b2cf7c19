package treediff

import (
	"os"
)

// DebugEnabled controls whether or not debugging is enabled for treediff. It
// is set automatically based on the TREEDIFF_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("TREEDIFF_DEBUG") == "1"
}
