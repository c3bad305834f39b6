package captable

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestNewInviteToken(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC)
	token := NewInviteToken("holder@example.com", at)

	assert.Regexp(t, hexToken, token)
	assert.NotEqual(t, InviteTokenConsumed, token)
}

func TestNewInviteTokenDeterministic(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC)

	assert.Equal(t,
		NewInviteToken("holder@example.com", at),
		NewInviteToken("holder@example.com", at),
	)
}

func TestNewInviteTokenDistinctInputs(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC)

	assert.NotEqual(t,
		NewInviteToken("holder@example.com", at),
		NewInviteToken("other@example.com", at),
	)

	assert.NotEqual(t,
		NewInviteToken("holder@example.com", at),
		NewInviteToken("holder@example.com", at.Add(time.Nanosecond)),
	)
}

func TestShareholderInvited(t *testing.T) {
	t.Parallel()

	var none *Shareholder
	assert.False(t, none.Invited())

	assert.False(t, (&Shareholder{}).Invited())
	assert.True(t, (&Shareholder{InviteToken: "abc123"}).Invited())
	assert.True(t, (&Shareholder{InviteToken: InviteTokenConsumed}).Invited())
}
