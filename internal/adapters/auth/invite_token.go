package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"prodroster/internal/domain"
)

// inviteTokenBytes is the entropy of a minted secret (256 bits).
const inviteTokenBytes = 32

type inviteTokenCodec struct{}

// NewInviteTokenCodec returns a TokenCodec minting base64url secrets from crypto/rand
// and storing their SHA-256 hex digest.
func NewInviteTokenCodec() domain.TokenCodec {
	return inviteTokenCodec{}
}

func (inviteTokenCodec) Mint() (string, error) {
	b := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (inviteTokenCodec) Digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
