package domain

import (
	"context"
	"time"
)

// InviteKind tags the two invite variants.
type InviteKind string

const (
	InviteKindEphemeral  InviteKind = "ephemeral"
	InviteKindPersistent InviteKind = "persistent"
)

// EphemeralInvite is a single-use invitation that expires a fixed time after creation.
// swagger:model EphemeralInvite
type EphemeralInvite struct {
	ID          string     `json:"id"`
	ProID       string     `json:"proId"`
	Role        Role       `json:"role"`
	Email       string     `json:"email,omitempty"`
	TokenDigest string     `json:"-"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	Claimed     bool       `json:"claimed"`
	ClaimedBy   string     `json:"claimedBy,omitempty"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ExpiredAt reports whether the invite is past its expiry at now.
func (i *EphemeralInvite) ExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Clone returns a deep copy.
func (i *EphemeralInvite) Clone() *EphemeralInvite {
	if i == nil {
		return nil
	}
	c := *i
	if i.ClaimedAt != nil {
		t := *i.ClaimedAt
		c.ClaimedAt = &t
	}
	return &c
}

// Public returns a copy safe to show to anyone holding the token: it drops
// who claimed the invite.
func (i *EphemeralInvite) Public() *EphemeralInvite {
	c := i.Clone()
	if c != nil {
		c.ClaimedBy = ""
	}
	return c
}

// Redemption is one entry of a persistent invite's append-only log.
type Redemption struct {
	AccountID  string    `json:"accountId"`
	RedeemedAt time.Time `json:"redeemedAt"`
}

// PersistentInvite is the reusable, capacity-capped invite link for one (proId, role) pair.
// swagger:model PersistentInvite
type PersistentInvite struct {
	ID             string       `json:"id"`
	ProID          string       `json:"proId"`
	Role           Role         `json:"role"`
	TokenDigest    string       `json:"-"`
	MaxRedemptions int          `json:"maxRedemptions"`
	RedeemedCount  int          `json:"redeemedCount"`
	Active         bool         `json:"active"`
	Redemptions    []Redemption `json:"redemptions,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Exhausted reports whether every redemption has been used.
func (i *PersistentInvite) Exhausted() bool {
	return i.RedeemedCount >= i.MaxRedemptions
}

// Clone returns a deep copy.
func (i *PersistentInvite) Clone() *PersistentInvite {
	if i == nil {
		return nil
	}
	c := *i
	c.Redemptions = append([]Redemption(nil), i.Redemptions...)
	return &c
}

// Public returns a copy without the redemption log, for callers that only hold the code.
func (i *PersistentInvite) Public() *PersistentInvite {
	if i == nil {
		return nil
	}
	c := *i
	c.Redemptions = nil
	return &c
}

// Invite is the tagged union returned when a secret is resolved without knowing its kind.
// Exactly one of Ephemeral and Persistent is set, as indicated by Kind.
// swagger:model Invite
type Invite struct {
	Kind       InviteKind        `json:"kind"`
	Ephemeral  *EphemeralInvite  `json:"ephemeral,omitempty"`
	Persistent *PersistentInvite `json:"persistent,omitempty"`
}

// Public returns the invite with each variant reduced to its Public view.
func (i *Invite) Public() *Invite {
	if i == nil {
		return nil
	}
	return &Invite{Kind: i.Kind, Ephemeral: i.Ephemeral.Public(), Persistent: i.Persistent.Public()}
}

// ProID returns the owning PRO of either variant.
func (i *Invite) ProID() string {
	switch i.Kind {
	case InviteKindEphemeral:
		return i.Ephemeral.ProID
	case InviteKindPersistent:
		return i.Persistent.ProID
	}
	return ""
}

// Role returns the granted role of either variant.
func (i *Invite) Role() Role {
	switch i.Kind {
	case InviteKindEphemeral:
		return i.Ephemeral.Role
	case InviteKindPersistent:
		return i.Persistent.Role
	}
	return ""
}

// IssuedEphemeralInvite is returned once at creation; Token is never stored.
type IssuedEphemeralInvite struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IssuedPersistentInvite carries the plaintext code only when it was just minted.
type IssuedPersistentInvite struct {
	Invite     *PersistentInvite `json:"invite"`
	InviteCode string            `json:"inviteCode,omitempty"`
}

// Membership is the outcome of a successful redemption.
type Membership struct {
	AccountID string `json:"uid"`
	Role      Role   `json:"role"`
	ProID     string `json:"proId"`
}

// TokenCodec mints invite secrets and derives their stored digest.
type TokenCodec interface {
	Mint() (string, error)
	Digest(secret string) string
}

// EphemeralInviteRepository defines storage operations for single-use invites.
type EphemeralInviteRepository interface {
	Create(ctx context.Context, inv *EphemeralInvite) error
	GetByDigest(ctx context.Context, digest string) (*EphemeralInvite, error)
	// MarkClaimed persists Claimed, ClaimedBy and ClaimedAt.
	MarkClaimed(ctx context.Context, inv *EphemeralInvite) error
	ListByProID(ctx context.Context, proID string) ([]*EphemeralInvite, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PersistentInviteRepository defines storage operations for reusable invites.
type PersistentInviteRepository interface {
	// Create returns ErrDuplicate if an invite already exists for (ProID, Role).
	Create(ctx context.Context, inv *PersistentInvite) error
	GetByProAndRole(ctx context.Context, proID string, role Role) (*PersistentInvite, error)
	GetByDigest(ctx context.Context, digest string) (*PersistentInvite, error)
	// Update persists digest, counters and the active flag.
	Update(ctx context.Context, inv *PersistentInvite) error
	AppendRedemption(ctx context.Context, inviteID string, r Redemption) error
	ClearRedemptions(ctx context.Context, inviteID string) error
}

// InviteService is the invite lifecycle.
type InviteService interface {
	CreateEphemeral(ctx context.Context, callerID string, role Role, email string) (*IssuedEphemeralInvite, error)
	ValidateEphemeral(ctx context.Context, secret string) (*EphemeralInvite, error)
	RedeemEphemeral(ctx context.Context, secret, accountID string, profile Profile) (*Membership, error)

	GetOrCreatePersistent(ctx context.Context, callerID string, role Role) (*IssuedPersistentInvite, error)
	ValidatePersistent(ctx context.Context, secret string) (*PersistentInvite, error)
	RedeemPersistent(ctx context.Context, secret, accountID string, profile Profile) (*Membership, error)
	Regenerate(ctx context.Context, callerID string, role Role) (*IssuedPersistentInvite, error)
	SetActive(ctx context.Context, callerID string, role Role, active bool) (*PersistentInvite, error)

	Inspect(ctx context.Context, secret string) (*Invite, error)
}
