package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/channel-descriptions-api/internal/constants"
)

// EncodeCursor builds an opaque pagination cursor from the composite
// sort key of the last row on a page. The payload is
// "<RFC3339 timestamp>_<id>" encoded as base64.
func EncodeCursor(createdAt time.Time, id string) string {
	payload := fmt.Sprintf("%s_%s", createdAt.UTC().Format(time.RFC3339Nano), id)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// DecodeCursor reverses EncodeCursor. It fails open: malformed base64,
// a missing separator, an unparseable timestamp, or an oversized cursor
// all yield ok=false so pagination silently restarts from the first
// page instead of erroring on garbage client input.
func DecodeCursor(cursor string) (time.Time, string, bool) {
	if cursor == "" || len(cursor) > constants.MaxCursorLength {
		return time.Time{}, "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", false
	}

	// The timestamp never contains an underscore, so split on the first one.
	parts := strings.SplitN(string(decoded), "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return time.Time{}, "", false
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", false
	}

	return createdAt, parts[1], true
}
