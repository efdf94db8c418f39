// AngelaMos | 2026
// objectid.go

package core

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewObjectID returns a 24 character lowercase hex identifier. The leading
// bytes come from a UUIDv7, so ids sort roughly by creation time.
func NewObjectID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return hex.EncodeToString(id[:12])
}
