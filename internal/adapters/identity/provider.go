package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prodroster/internal/domain"
)

// ErrIdentityNotFound is returned by LookupByEmail when no identity matches.
var ErrIdentityNotFound = &domain.ReasonError{Kind: domain.ErrNotFound, Reason: "identity not found"}

type provider struct {
	verifier domain.TokenVerifier
	store    domain.IdentityStore
}

// NewProvider returns an IdentityProvider that verifies bearer tokens with verifier
// and keeps the claim mirror in store.
func NewProvider(verifier domain.TokenVerifier, store domain.IdentityStore) domain.IdentityProvider {
	return &provider{verifier: verifier, store: store}
}

func (p *provider) Verify(ctx context.Context, bearerToken string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.Upstream("verify token", err)
	}
	accountID, err := p.verifier.Verify(bearerToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return accountID, nil
}

func (p *provider) Claims(ctx context.Context, accountID string) (domain.Claims, error) {
	claims, err := p.store.GetClaims(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Claims{}, nil
		}
		return domain.Claims{}, domain.Upstream("get claims", err)
	}
	return claims, nil
}

func (p *provider) SetClaims(ctx context.Context, accountID string, claims domain.Claims) error {
	claims.Email = strings.ToLower(strings.TrimSpace(claims.Email))
	if err := p.store.PutClaims(ctx, accountID, claims); err != nil {
		return domain.Upstream("set claims", err)
	}
	return nil
}

func (p *provider) LookupByEmail(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrIdentityNotFound
	}
	id, err := p.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrIdentityNotFound
		}
		return "", domain.Upstream("lookup identity by email", err)
	}
	return id, nil
}

func (p *provider) DeleteAccount(ctx context.Context, accountID string) error {
	if err := p.store.Delete(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return domain.Upstream("delete identity", err)
	}
	return nil
}
