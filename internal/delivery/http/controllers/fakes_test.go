package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/delivery/http/middleware"
	"prodroster/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// newRequest builds a JSON request, optionally authenticated as uid.
func newRequest(method, target, uid string, body any) *http.Request {
	var rdr io.Reader = http.NoBody
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, "http://test"+target, rdr)
	req.Header.Set("Content-Type", "application/json")
	if uid != "" {
		req = req.WithContext(middleware.SetAccountID(req.Context(), uid))
	}
	return req
}

// decodeEnvelope decodes the response envelope, unmarshalling data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if dest != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env.Error
}

// fakeInviteService implements domain.InviteService for handler tests.
type fakeInviteService struct {
	err error

	lastCaller  string
	lastRole    domain.Role
	lastEmail   string
	lastSecret  string
	lastProfile domain.Profile
	lastActive  bool

	issued     *domain.IssuedEphemeralInvite
	ephemeral  *domain.EphemeralInvite
	membership *domain.Membership
	issuedCode *domain.IssuedPersistentInvite
	persistent *domain.PersistentInvite
	invite     *domain.Invite
}

func (f *fakeInviteService) CreateEphemeral(_ context.Context, callerID string, role domain.Role, email string) (*domain.IssuedEphemeralInvite, error) {
	f.lastCaller, f.lastRole, f.lastEmail = callerID, role, email
	return f.issued, f.err
}

func (f *fakeInviteService) ValidateEphemeral(_ context.Context, secret string) (*domain.EphemeralInvite, error) {
	f.lastSecret = secret
	return f.ephemeral, f.err
}

func (f *fakeInviteService) RedeemEphemeral(_ context.Context, secret, accountID string, profile domain.Profile) (*domain.Membership, error) {
	f.lastSecret, f.lastCaller, f.lastProfile = secret, accountID, profile
	return f.membership, f.err
}

func (f *fakeInviteService) GetOrCreatePersistent(_ context.Context, callerID string, role domain.Role) (*domain.IssuedPersistentInvite, error) {
	f.lastCaller, f.lastRole = callerID, role
	return f.issuedCode, f.err
}

func (f *fakeInviteService) ValidatePersistent(_ context.Context, secret string) (*domain.PersistentInvite, error) {
	f.lastSecret = secret
	return f.persistent, f.err
}

func (f *fakeInviteService) RedeemPersistent(_ context.Context, secret, accountID string, profile domain.Profile) (*domain.Membership, error) {
	f.lastSecret, f.lastCaller, f.lastProfile = secret, accountID, profile
	return f.membership, f.err
}

func (f *fakeInviteService) Regenerate(_ context.Context, callerID string, role domain.Role) (*domain.IssuedPersistentInvite, error) {
	f.lastCaller, f.lastRole = callerID, role
	return f.issuedCode, f.err
}

func (f *fakeInviteService) SetActive(_ context.Context, callerID string, role domain.Role, active bool) (*domain.PersistentInvite, error) {
	f.lastCaller, f.lastRole, f.lastActive = callerID, role, active
	return f.persistent, f.err
}

func (f *fakeInviteService) Inspect(_ context.Context, secret string) (*domain.Invite, error) {
	f.lastSecret = secret
	return f.invite, f.err
}

// fakeAccountService implements domain.AccountService for handler tests.
type fakeAccountService struct {
	account     *domain.Account
	err         error
	lastRole    domain.Role
	lastProfile domain.Profile
}

func (f *fakeAccountService) Register(_ context.Context, uid string, role domain.Role, profile domain.Profile) (*domain.Account, error) {
	f.lastRole, f.lastProfile = role, profile
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Account{ID: uid, Role: role, Email: profile.Email}, nil
}

func (f *fakeAccountService) GetMe(_ context.Context, _ string) (*domain.Account, error) {
	return f.account, f.err
}

// fakeTeamService implements domain.TeamService for handler tests.
type fakeTeamService struct {
	team        *domain.Team
	err         error
	removedID   string
	removedFrom string
}

func (f *fakeTeamService) GetTeam(_ context.Context, _ string) (*domain.Team, error) {
	return f.team, f.err
}

func (f *fakeTeamService) RemoveMember(_ context.Context, callerID, memberID string) error {
	f.removedFrom, f.removedID = callerID, memberID
	return f.err
}

// fakeActivationService implements domain.ActivationService for handler tests.
type fakeActivationService struct {
	account *domain.Account
	err     error
	calls   int
	last    domain.PaymentEvent
}

func (f *fakeActivationService) HandlePaymentEvent(_ context.Context, evt domain.PaymentEvent) (*domain.Account, error) {
	f.calls++
	f.last = evt
	return f.account, f.err
}
