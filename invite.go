package captable

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// inviteTokenApp is mixed into every invite digest so tokens from other
// deployments of the same schema can never be replayed here.
const inviteTokenApp = "Ishu"

// InviteTokenConsumed replaces a shareholder's invite token once the
// invitation has been accepted; a consumed token can never match a fresh
// digest again.
const InviteTokenConsumed = "Invited"

// NewInviteToken builds a single-use opaque token for a shareholder email
// invitation. Uniqueness rests on digest collision resistance over the
// (timestamp, email) pair, not on a lookup against stored tokens.
func NewInviteToken(email string, at time.Time) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(at.UnixNano(), 10) + email + inviteTokenApp))
	return hex.EncodeToString(sum[:])
}
