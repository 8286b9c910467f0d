package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const syncKeyLength = 32

// Key derives the stable tracker identity of a block from its activity and start time.
// The same block always maps to the same key, so repeated syncs upsert instead of duplicating.
func Key(activity string, start time.Time) string {
	sum := sha256.Sum256([]byte(activity + "\x1f" + start.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(sum[:])[:syncKeyLength]
}
