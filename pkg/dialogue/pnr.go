package dialogue

import (
	"encoding/base32"

	"github.com/zeebo/blake3"
)

// pnrEncoding drops I and O so codes cannot be misread as 1 and 0.
var pnrEncoding = base32.NewEncoding("ABCDEFGHJKLMNPQRSTUVWXYZ23456789").WithPadding(base32.NoPadding)

// PNRLength is the number of characters in a derived booking reference.
const PNRLength = 6

// DerivePNR maps a session identifier to a stable booking reference.
// It is a deterministic digest, not an allocator: the same session always yields the same code.
func DerivePNR(sessionID string) string {
	sum := blake3.Sum256([]byte(sessionID))
	return pnrEncoding.EncodeToString(sum[:])[:PNRLength]
}
