package conversion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// eventIDLength keeps ids short enough for log lines while leaving 64 bits of
// collision resistance per hex quartet beyond what dedup needs.
const eventIDLength = 32

const noOrderPlaceholder = "noorder"

// EventID derives the deduplication identifier for a logical conversion.
// The timestamp is floored to the second, so a browser-side and a server-side
// delivery of the same order within the same window collapse to one event on
// the receiving end. The hash is an identifier, not a security boundary.
func EventID(storeID uuid.UUID, orderID string, name CanonicalEvent, ts time.Time) string {
	if orderID == "" {
		orderID = noOrderPlaceholder
	}
	composite := fmt.Sprintf("%s|%s|%s|%d", storeID, orderID, name, ts.Unix())
	sum := sha256.Sum256([]byte(composite))
	return hex.EncodeToString(sum[:])[:eventIDLength]
}
