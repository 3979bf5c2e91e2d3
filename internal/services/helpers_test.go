package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prodroster/internal/adapters/auth"
	"prodroster/internal/adapters/identity"
	"prodroster/internal/domain"
	"prodroster/internal/repository/memory"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// flakyIdentity fails SetClaims while fail is set, hangs until the caller's
// context ends while stall is set, and counts every call.
type flakyIdentity struct {
	domain.IdentityProvider
	mu    sync.Mutex
	fail  bool
	stall bool
	calls int
}

func (f *flakyIdentity) SetClaims(ctx context.Context, id string, c domain.Claims) error {
	f.mu.Lock()
	f.calls++
	fail, stall := f.fail, f.stall
	f.mu.Unlock()
	if stall {
		<-ctx.Done()
		return domain.Upstream("set claims", ctx.Err())
	}
	if fail {
		return domain.Upstream("set claims", context.DeadlineExceeded)
	}
	return f.IdentityProvider.SetClaims(ctx, id, c)
}

func (f *flakyIdentity) setFail(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = v
}

func (f *flakyIdentity) setStall(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stall = v
}

func (f *flakyIdentity) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type harness struct {
	clock      *fakeClock
	store      *memory.Store
	ids        *memory.IdentityStore
	idp        *flakyIdentity
	codec      domain.TokenCodec
	policy     domain.SeatPolicy
	ledger     *seatLedger
	guardian   *guardian
	invites    *inviteService
	accounts   *accountService
	activation *activationService
	teams      *teamService
}

func newHarness(t *testing.T, queue domain.RepairQueue) *harness {
	t.Helper()
	h := &harness{
		clock:  newFakeClock(),
		store:  memory.NewStore(3),
		ids:    memory.NewIdentityStore(),
		codec:  auth.NewInviteTokenCodec(),
		policy: NewSeatPolicy(DefaultStaffLimit, DefaultAthleteLimit),
	}
	h.idp = &flakyIdentity{IdentityProvider: identity.NewProvider(auth.NewJWTVerifier("test-secret"), h.ids)}

	h.ledger = NewSeatLedger(h.store, h.policy, time.Second).(*seatLedger)
	h.ledger.now = h.clock.Now

	h.guardian = NewConsistencyGuardian(h.store, h.idp, queue, nil, 2, time.Second).(*guardian)
	h.guardian.now = h.clock.Now
	h.guardian.mirrorInterval = time.Millisecond

	h.invites = NewInviteService(h.store, h.ledger, h.policy, h.codec, h.idp, h.guardian, nil, DefaultEphemeralTTL, time.Second).(*inviteService)
	h.invites.now = h.clock.Now

	h.accounts = NewAccountService(h.store, h.guardian, nil, time.Second).(*accountService)
	h.accounts.now = h.clock.Now

	h.activation = NewActivationService(h.store, h.ledger, h.guardian, nil, time.Second).(*activationService)
	h.activation.now = h.clock.Now

	h.teams = NewTeamService(h.store, h.ledger, h.policy, h.guardian, nil, time.Second).(*teamService)
	h.teams.now = h.clock.Now
	return h
}

// activePro registers id as a PRO and activates it through a payment event.
func (h *harness) activePro(t *testing.T, id string) *domain.Account {
	t.Helper()
	ctx := context.Background()
	_, err := h.accounts.Register(ctx, id, domain.RolePro, domain.Profile{Email: id + "@pro.test", FirstName: "Pro"})
	require.NoError(t, err)
	a, err := h.activation.HandlePaymentEvent(ctx, domain.PaymentEvent{AccountID: id, PaymentKind: domain.PaymentKindProSubscription})
	require.NoError(t, err)
	require.True(t, a.IsActivePro())
	return a
}

func (h *harness) account(t *testing.T, id string) *domain.Account {
	t.Helper()
	a, err := h.store.Accounts().GetByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

func profile(id string) domain.Profile {
	return domain.Profile{Email: id + "@member.test", FirstName: "Member", LastName: id}
}
