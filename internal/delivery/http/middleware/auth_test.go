package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/domain"
)

// fakeIdentityProvider implements domain.IdentityProvider; only Verify is exercised.
type fakeIdentityProvider struct {
	domain.IdentityProvider
	accountID string
	err       error
}

func (f *fakeIdentityProvider) Verify(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.accountID, nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name          string
		authHeader    string
		idp           domain.IdentityProvider
		wantStatus    int
		wantBodyCode  string
		nextCalled    bool
		wantContextID string
	}{
		{
			name:          "valid token sets context and calls next",
			authHeader:    "Bearer valid-token",
			idp:           &fakeIdentityProvider{accountID: "acct-123"},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "acct-123",
		},
		{
			name:         "missing authorization header",
			idp:          &fakeIdentityProvider{accountID: "acct-123"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "no Bearer prefix",
			authHeader:   "Basic abc",
			idp:          &fakeIdentityProvider{accountID: "acct-123"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "empty token after Bearer",
			authHeader:   "Bearer ",
			idp:          &fakeIdentityProvider{accountID: "acct-123"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "provider rejects token",
			authHeader:   "Bearer bad-token",
			idp:          &fakeIdentityProvider{err: domain.ErrUnauthenticated},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "provider unavailable",
			authHeader:   "Bearer token",
			idp:          &fakeIdentityProvider{err: domain.Upstream("verify token", errors.New("timeout"))},
			wantStatus:   http.StatusBadGateway,
			wantBodyCode: helpers.ErrCodeUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var captured string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				captured, _ = AccountIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAuth(tt.idp, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/accounts/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantContextID, captured)
			}
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestAccountIDFromContext_Empty(t *testing.T) {
	_, ok := AccountIDFromContext(context.Background())
	assert.False(t, ok)
	_, ok = AccountIDFromContext(SetAccountID(context.Background(), ""))
	assert.False(t, ok)
}
