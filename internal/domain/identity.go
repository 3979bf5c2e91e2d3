package domain

import (
	"context"
	"errors"
	"time"
)

// ErrQueueClosed is returned by a RepairQueue after Close.
var ErrQueueClosed = errors.New("repair queue closed")

// Claims is the identity provider's mirror of an account's role and team.
type Claims struct {
	Role  Role   `json:"role"`
	ProID string `json:"proId,omitempty"`
	Email string `json:"email,omitempty"`
}

// ClaimsFor derives the claims an account should carry.
func ClaimsFor(a *Account) Claims {
	return Claims{Role: a.Role, ProID: a.ProID, Email: a.Email}
}

// IdentityProvider is the external identity service contract.
type IdentityProvider interface {
	// Verify returns the account id for a bearer token or ErrUnauthenticated.
	Verify(ctx context.Context, bearerToken string) (string, error)
	// Claims returns the mirrored claims; a missing mirror yields zero Claims.
	Claims(ctx context.Context, accountID string) (Claims, error)
	SetClaims(ctx context.Context, accountID string, claims Claims) error
	LookupByEmail(ctx context.Context, email string) (string, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// TokenIssuer issues bearer tokens embedding the current claims.
type TokenIssuer interface {
	Issue(accountID, email string, claims Claims, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the authenticated account id.
type TokenVerifier interface {
	Verify(token string) (accountID string, err error)
}

// IdentityStore persists the identity provider's claim records.
type IdentityStore interface {
	// GetClaims returns ErrNotFound when no record exists.
	GetClaims(ctx context.Context, accountID string) (Claims, error)
	PutClaims(ctx context.Context, accountID string, claims Claims) error
	// FindByEmail returns ErrNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, accountID string) error
}

// RepairQueue carries account ids whose identity invariants must be re-derived.
type RepairQueue interface {
	Enqueue(ctx context.Context, accountID string) error
	// Dequeue blocks until an id is available or ctx is done.
	Dequeue(ctx context.Context) (string, error)
	Close() error
}

// ConsistencyGuardian keeps PRO self-reference and the claim mirror in sync.
type ConsistencyGuardian interface {
	// Repair re-derives the invariants for one account. It is idempotent and
	// reports whether anything was written.
	Repair(ctx context.Context, accountID string) (bool, error)
	// Observe inspects an account mutation and schedules a repair when it can
	// affect PRO identity or the claim mirror.
	Observe(ctx context.Context, before, after *Account)
	// MirrorClaims pushes the account's claims to the identity provider,
	// retrying the idempotent call a bounded number of times.
	MirrorClaims(ctx context.Context, account *Account) error
	// RepairAll runs Repair over every PRO account.
	RepairAll(ctx context.Context) (int, error)
	// Run drains the repair queue until ctx is done.
	Run(ctx context.Context) error
}
