package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		wantStatus  int
		wantAllowed bool
		wantCreds   bool
	}{
		{"allowed origin", []string{"https://app.example.com/"}, http.MethodGet, "https://app.example.com", http.StatusOK, true, true},
		{"unknown origin", []string{"https://app.example.com"}, http.MethodGet, "https://evil.example.com", http.StatusOK, false, false},
		{"wildcard", []string{"*"}, http.MethodGet, "https://any.example.com", http.StatusOK, true, false},
		{"wildcard with listed origin", []string{"*", "https://app.example.com"}, http.MethodGet, "https://app.example.com", http.StatusOK, true, true},
		{"wildcard preflight", []string{"*"}, http.MethodOptions, "https://any.example.com", http.StatusNoContent, true, false},
		{"preflight allowed", []string{"https://app.example.com"}, http.MethodOptions, "https://app.example.com", http.StatusNoContent, true, true},
		{"preflight unknown", []string{"https://app.example.com"}, http.MethodOptions, "https://evil.example.com", http.StatusNoContent, false, false},
		{"no origin header", []string{"*"}, http.MethodGet, "", http.StatusOK, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := CORS(tt.origins, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(tt.method, "/accounts/me", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.method != http.MethodOptions, called)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, rr.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
			}
			if tt.wantCreds {
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
			}
			if tt.method == http.MethodOptions && tt.wantAllowed {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "X-Webhook-Secret")
			}
		})
	}
}
