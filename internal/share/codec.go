// Package share encodes and decodes the portable .pscore package: players,
// games, and the source device label.
//
// The format is JSON with a stable field layout. Unknown fields are ignored
// and missing fields fall back to type defaults, so older readers can open
// packages written by newer versions.
package share

import (
	"encoding/json"
	"fmt"

	"github.com/pocketscore/pocketscore/internal/model"
)

const (
	// FileExt is the file extension convention for share packages.
	FileExt = ".pscore"

	// MIMEType is the content type used when transporting packages.
	MIMEType = "application/octet-stream"

	// SchemaVersion is the current share package schema version.
	SchemaVersion = 1
)

// Encode serializes a share package. The output is stable: encoding the same
// value twice yields identical bytes.
func Encode(s model.Share) ([]byte, error) {
	s.SchemaVersion = SchemaVersion
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode share: %w", err)
	}
	return data, nil
}

// Decode parses a share package. Malformed text yields an error wrapping
// ErrInvalidShare.
func Decode(data []byte) (model.Share, error) {
	var s model.Share
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Share{}, fmt.Errorf("%w: %v", ErrInvalidShare, err)
	}
	return s, nil
}
