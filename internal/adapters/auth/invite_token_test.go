package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteTokenCodec_Mint(t *testing.T) {
	c := NewInviteTokenCodec()
	tokenRe := regexp.MustCompile(`^[A-Za-z0-9_-]{43}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		secret, err := c.Mint()
		require.NoError(t, err)
		assert.Regexp(t, tokenRe, secret, "secret should be 43 base64url characters")
		_, dup := seen[secret]
		require.False(t, dup, "minted a duplicate secret")
		seen[secret] = struct{}{}
	}
}

func TestInviteTokenCodec_Digest(t *testing.T) {
	c := NewInviteTokenCodec()
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	secret, err := c.Mint()
	require.NoError(t, err)

	d1 := c.Digest(secret)
	d2 := c.Digest(secret)
	assert.Equal(t, d1, d2, "digest must be deterministic")
	assert.Regexp(t, hexRe, d1)
	assert.NotContains(t, d1, secret)

	other, err := c.Mint()
	require.NoError(t, err)
	assert.NotEqual(t, d1, c.Digest(other))
}

func TestInviteTokenCodec_Digest_knownValue(t *testing.T) {
	c := NewInviteTokenCodec()
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", c.Digest(""))
}
