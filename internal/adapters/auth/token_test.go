package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodroster/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("user-123", "u@example.com", domain.Claims{Role: domain.RolePro, ProID: "user-123"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, domain.RolePro, claims.Role)
	assert.Equal(t, "user-123", claims.ProID)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("s3cret")
	valid, err := issuer.Issue("acc-1", "a@example.com", domain.Claims{Role: domain.RoleStaff, ProID: "pro-1"}, time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue("acc-1", "a@example.com", domain.Claims{}, -time.Minute)
	require.NoError(t, err)
	foreign, err := NewJWTIssuer("other").Issue("acc-1", "a@example.com", domain.Claims{}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantID  string
		wantErr bool
	}{
		{name: "valid", token: valid, wantID: "acc-1"},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong secret", token: foreign, wantErr: true},
		{name: "garbage", token: "not-a-jwt", wantErr: true},
	}

	v := NewJWTVerifier("s3cret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Verify(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnauthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
