package snapshot

import (
	"encoding/json"

	"github.com/pkg/errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/treediff-io/treediff/pkg/encoding"
)

// Save writes the snapshot to the specified path as JSON. The write is
// performed atomically.
func Save(s *Snapshot, path string) error {
	// Validate the snapshot before persisting it.
	if err := s.EnsureValid(); err != nil {
		return errors.Wrap(err, "invalid snapshot")
	}

	// Perform the save.
	return encoding.MarshalAndSaveJSON(path, s)
}

// Load reads a snapshot from the specified path. Snapshot files written by
// other tooling may carry a byte order mark or use a UTF-16 text encoding, so
// the raw bytes are transcoded to UTF-8 before decoding.
func Load(path string) (*Snapshot, error) {
	// Load and decode.
	result := &Snapshot{}
	decoder := unicode.UTF8.NewDecoder()
	if err := encoding.LoadAndUnmarshal(path, func(data []byte) error {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(decoder), data)
		if err != nil {
			return errors.Wrap(err, "unable to transcode snapshot data")
		}
		return json.Unmarshal(decoded, result)
	}); err != nil {
		return nil, err
	}

	// Validate the result.
	if err := result.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid snapshot")
	}

	// Success.
	return result, nil
}
