package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodroster/internal/domain"
)

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		uid     string
		role    domain.Role
		profile domain.Profile
		wantErr error
		check   func(t *testing.T, h *harness, a *domain.Account)
	}{
		{
			name:    "pro owns its namespace and starts inactive",
			uid:     "p1",
			role:    domain.RolePro,
			profile: domain.Profile{Email: " P1@Pro.Test ", FirstName: "Pat"},
			check: func(t *testing.T, h *harness, a *domain.Account) {
				assert.Equal(t, "p1", a.ProID)
				assert.Equal(t, domain.ProStatusInactive, a.ProStatus)
				assert.Equal(t, "p1@pro.test", a.Email)
				claims, err := h.ids.GetClaims(ctx, "p1")
				require.NoError(t, err)
				assert.Equal(t, domain.Claims{Role: domain.RolePro, ProID: "p1", Email: "p1@pro.test"}, claims)
			},
		},
		{
			name:    "athlete without team",
			uid:     "a1",
			role:    domain.RoleAthlete,
			profile: domain.Profile{Email: "a1@member.test"},
			check: func(t *testing.T, h *harness, a *domain.Account) {
				assert.Empty(t, a.ProID)
				assert.Equal(t, h.clock.Now(), a.CreatedAt)
			},
		},
		{name: "missing uid", uid: "", role: domain.RolePro, profile: domain.Profile{Email: "x@y.z"}, wantErr: domain.ErrUnauthenticated},
		{name: "invalid role", uid: "u1", role: "COACH", profile: domain.Profile{Email: "x@y.z"}, wantErr: domain.ErrInvalidInput},
		{name: "missing email", uid: "u1", role: domain.RoleStaff, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			a, err := h.accounts.Register(ctx, tt.uid, tt.role, tt.profile)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, h, a)
		})
	}
}

func TestAccountService_RegisterTwice(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	_, err := h.accounts.Register(ctx, "u1", domain.RoleStaff, domain.Profile{Email: "u1@member.test"})
	require.NoError(t, err)

	_, err = h.accounts.Register(ctx, "u1", domain.RolePro, domain.Profile{Email: "u1@member.test"})
	require.ErrorIs(t, err, domain.ErrAccountExists)
	assert.Equal(t, domain.RoleStaff, h.account(t, "u1").Role)
}

func TestAccountService_GetMeRepairs(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	seedAccount(t, h, &domain.Account{ID: "u1", Role: domain.RolePro, ProID: "u2", ProStatus: domain.ProStatusActive})

	a, err := h.accounts.GetMe(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", a.ProID)

	_, err = h.accounts.GetMe(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
