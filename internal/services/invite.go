package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"prodroster/internal/domain"
)

// DefaultEphemeralTTL is how long a single-use invite stays redeemable.
const DefaultEphemeralTTL = time.Hour

type inviteService struct {
	store          domain.Store
	ledger         domain.SeatLedger
	policy         domain.SeatPolicy
	codec          domain.TokenCodec
	idp            domain.IdentityProvider
	guardian       domain.ConsistencyGuardian
	logger         *slog.Logger
	ttl            time.Duration
	contextTimeout time.Duration
	now            func() time.Time
}

// NewInviteService wires the invite lifecycle.
func NewInviteService(
	store domain.Store,
	ledger domain.SeatLedger,
	policy domain.SeatPolicy,
	codec domain.TokenCodec,
	idp domain.IdentityProvider,
	guardian domain.ConsistencyGuardian,
	logger *slog.Logger,
	ttl time.Duration,
	timeout time.Duration,
) domain.InviteService {
	if ttl <= 0 {
		ttl = DefaultEphemeralTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &inviteService{
		store:          store,
		ledger:         ledger,
		policy:         policy,
		codec:          codec,
		idp:            idp,
		guardian:       guardian,
		logger:         logger,
		ttl:            ttl,
		contextTimeout: withDefaultTimeout(timeout),
		now:            utcNow,
	}
}

// requirePro loads the caller and checks it owns a team. active additionally
// requires proStatus == active.
func requirePro(ctx context.Context, repos domain.Repositories, callerID string, active bool) (*domain.Account, error) {
	a, err := repos.Accounts().GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrNotPro
		}
		return nil, domain.Upstream("get caller account", err)
	}
	if a.Role != domain.RolePro {
		return nil, domain.ErrNotPro
	}
	if active && a.ProStatus != domain.ProStatusActive {
		return nil, domain.ErrProInactive
	}
	return a, nil
}

func (s *inviteService) CreateEphemeral(ctx context.Context, callerID string, role domain.Role, email string) (*domain.IssuedEphemeralInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !role.IsMemberRole() {
		return nil, domain.ErrInvalidRole
	}
	pro, err := requirePro(ctx, s.store, callerID, true)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.CheckCapacity(ctx, s.store, pro.ID, role); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := s.rejectExistingMember(ctx, pro.ID, email); err != nil {
			return nil, err
		}
	}

	secret, err := s.codec.Mint()
	if err != nil {
		return nil, fmt.Errorf("mint invite token: %w", err)
	}
	now := s.now()
	inv := &domain.EphemeralInvite{
		ID:          uuid.NewString(),
		ProID:       pro.ID,
		Role:        role,
		Email:       email,
		TokenDigest: s.codec.Digest(secret),
		ExpiresAt:   now.Add(s.ttl),
		CreatedAt:   now,
	}
	if err := s.store.EphemeralInvites().Create(ctx, inv); err != nil {
		return nil, domain.Upstream("create ephemeral invite", err)
	}
	return &domain.IssuedEphemeralInvite{ID: inv.ID, Token: secret, ExpiresAt: inv.ExpiresAt}, nil
}

func (s *inviteService) rejectExistingMember(ctx context.Context, proID, email string) error {
	id, err := s.idp.LookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	a, err := s.store.Accounts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return domain.Upstream("get invitee account", err)
	}
	if a.ProID == proID {
		return domain.ErrAlreadyMember
	}
	return nil
}

func (s *inviteService) checkEphemeral(ctx context.Context, repos domain.Repositories, inv *domain.EphemeralInvite, now time.Time) error {
	if inv.Claimed {
		return domain.ErrInviteClaimed
	}
	if inv.ExpiredAt(now) {
		return domain.ErrInviteExpired
	}
	return s.ledger.CheckCapacity(ctx, repos, inv.ProID, inv.Role)
}

func (s *inviteService) getEphemeral(ctx context.Context, repos domain.Repositories, secret string) (*domain.EphemeralInvite, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, domain.ErrInviteNotFound
	}
	inv, err := repos.EphemeralInvites().GetByDigest(ctx, s.codec.Digest(secret))
	if err != nil {
		return nil, domain.Upstream("get ephemeral invite", err)
	}
	return inv, nil
}

func (s *inviteService) ValidateEphemeral(ctx context.Context, secret string) (*domain.EphemeralInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.getEphemeral(ctx, s.store, secret)
	if err != nil {
		return nil, err
	}
	if err := s.checkEphemeral(ctx, s.store, inv, s.now()); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *inviteService) RedeemEphemeral(ctx context.Context, secret, accountID string, profile domain.Profile) (*domain.Membership, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if accountID == "" {
		return nil, domain.ErrUnauthenticated
	}
	now := s.now()
	var before, after *domain.Account
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		inv, err := s.getEphemeral(ctx, tx, secret)
		if err != nil {
			return err
		}
		if inv.Claimed {
			return domain.ErrInviteClaimed
		}
		if inv.ExpiredAt(now) {
			return domain.ErrInviteExpired
		}
		before, after, err = s.joinTeam(ctx, tx, accountID, inv.ProID, inv.Role, profile, now)
		if err != nil {
			return err
		}
		inv.Claimed = true
		inv.ClaimedBy = accountID
		inv.ClaimedAt = &now
		if err := tx.EphemeralInvites().MarkClaimed(ctx, inv); err != nil {
			return domain.Upstream("mark invite claimed", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Upstream("redeem ephemeral invite", err)
	}

	settleClaims(ctx, s.guardian, s.logger, before, after)
	return &domain.Membership{AccountID: after.ID, Role: after.Role, ProID: after.ProID}, nil
}

// joinTeam reserves a seat and writes the account as a member of proID.
// A member moving from another team gives up the old seat.
func (s *inviteService) joinTeam(ctx context.Context, tx domain.Repositories, accountID, proID string, role domain.Role, profile domain.Profile, now time.Time) (before, after *domain.Account, err error) {
	existing, err := tx.Accounts().GetByID(ctx, accountID)
	switch {
	case err == nil:
		if existing.Role == domain.RolePro {
			return nil, nil, domain.ErrProCannotJoin
		}
		if existing.ProID == proID {
			return nil, nil, domain.ErrAlreadyMember
		}
		before = existing.Clone()
		after = existing
		if err := s.ledger.ReleaseSeat(ctx, tx, existing.ProID, existing.Role); err != nil {
			return nil, nil, err
		}
	case errors.Is(err, domain.ErrAccountNotFound):
		after = &domain.Account{ID: accountID, ProStatus: domain.ProStatusInactive, CreatedAt: now}
	default:
		return nil, nil, domain.Upstream("get redeeming account", err)
	}

	if err := s.ledger.TryReserveSeat(ctx, tx, proID, role); err != nil {
		return nil, nil, err
	}

	profile.Apply(after)
	after.Role = role
	after.ProID = proID
	after.UpdatedAt = now
	if err := tx.Accounts().Upsert(ctx, after); err != nil {
		return nil, nil, domain.Upstream("upsert account", err)
	}
	return before, after, nil
}

func (s *inviteService) GetOrCreatePersistent(ctx context.Context, callerID string, role domain.Role) (*domain.IssuedPersistentInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !role.IsMemberRole() {
		return nil, domain.ErrInvalidRole
	}
	pro, err := requirePro(ctx, s.store, callerID, false)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.PersistentInvites().GetByProAndRole(ctx, pro.ID, role)
	if err == nil {
		return &domain.IssuedPersistentInvite{Invite: existing}, nil
	}
	if !errors.Is(err, domain.ErrInviteNotFound) {
		return nil, domain.Upstream("get persistent invite", err)
	}
	if pro.ProStatus != domain.ProStatusActive {
		return nil, domain.ErrProInactive
	}

	secret, err := s.codec.Mint()
	if err != nil {
		return nil, fmt.Errorf("mint invite code: %w", err)
	}
	now := s.now()
	inv := &domain.PersistentInvite{
		ID:             uuid.NewString(),
		ProID:          pro.ID,
		Role:           role,
		TokenDigest:    s.codec.Digest(secret),
		MaxRedemptions: s.policy.Limit(ctx, pro.ID, role),
		Active:         true,
		Redemptions:    []domain.Redemption{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.PersistentInvites().Create(ctx, inv); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Upstream("create persistent invite", err)
		}
		// Lost a creation race; the winner's invite is the one.
		existing, err := s.store.PersistentInvites().GetByProAndRole(ctx, pro.ID, role)
		if err != nil {
			return nil, domain.Upstream("get persistent invite", err)
		}
		return &domain.IssuedPersistentInvite{Invite: existing}, nil
	}
	return &domain.IssuedPersistentInvite{Invite: inv, InviteCode: secret}, nil
}

func (s *inviteService) getPersistent(ctx context.Context, repos domain.Repositories, secret string) (*domain.PersistentInvite, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, domain.ErrInviteNotFound
	}
	inv, err := repos.PersistentInvites().GetByDigest(ctx, s.codec.Digest(secret))
	if err != nil {
		return nil, domain.Upstream("get persistent invite", err)
	}
	return inv, nil
}

func checkPersistent(inv *domain.PersistentInvite) error {
	if !inv.Active {
		return domain.ErrInviteInactive
	}
	if inv.Exhausted() {
		return domain.SeatLimitError(inv.Role)
	}
	return nil
}

func (s *inviteService) ValidatePersistent(ctx context.Context, secret string) (*domain.PersistentInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.getPersistent(ctx, s.store, secret)
	if err != nil {
		return nil, err
	}
	if err := checkPersistent(inv); err != nil {
		return nil, err
	}
	if err := s.ledger.CheckCapacity(ctx, s.store, inv.ProID, inv.Role); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *inviteService) RedeemPersistent(ctx context.Context, secret, accountID string, profile domain.Profile) (*domain.Membership, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if accountID == "" {
		return nil, domain.ErrUnauthenticated
	}
	now := s.now()
	var before, after *domain.Account
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		inv, err := s.getPersistent(ctx, tx, secret)
		if err != nil {
			return err
		}
		if err := checkPersistent(inv); err != nil {
			return err
		}
		before, after, err = s.joinTeam(ctx, tx, accountID, inv.ProID, inv.Role, profile, now)
		if err != nil {
			return err
		}
		inv.RedeemedCount++
		inv.UpdatedAt = now
		if err := tx.PersistentInvites().Update(ctx, inv); err != nil {
			return domain.Upstream("update persistent invite", err)
		}
		if err := tx.PersistentInvites().AppendRedemption(ctx, inv.ID, domain.Redemption{AccountID: accountID, RedeemedAt: now}); err != nil {
			return domain.Upstream("append redemption", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Upstream("redeem persistent invite", err)
	}

	settleClaims(ctx, s.guardian, s.logger, before, after)
	return &domain.Membership{AccountID: after.ID, Role: after.Role, ProID: after.ProID}, nil
}

// Regenerate replaces the secret and clears counters and the redemption log.
// The previous code stops resolving as soon as the transaction commits.
func (s *inviteService) Regenerate(ctx context.Context, callerID string, role domain.Role) (*domain.IssuedPersistentInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !role.IsMemberRole() {
		return nil, domain.ErrInvalidRole
	}
	pro, err := requirePro(ctx, s.store, callerID, true)
	if err != nil {
		return nil, err
	}
	secret, err := s.codec.Mint()
	if err != nil {
		return nil, fmt.Errorf("mint invite code: %w", err)
	}
	digest := s.codec.Digest(secret)
	now := s.now()

	var out *domain.PersistentInvite
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		inv, err := tx.PersistentInvites().GetByProAndRole(ctx, pro.ID, role)
		if errors.Is(err, domain.ErrInviteNotFound) {
			out = &domain.PersistentInvite{
				ID:             uuid.NewString(),
				ProID:          pro.ID,
				Role:           role,
				TokenDigest:    digest,
				MaxRedemptions: s.policy.Limit(ctx, pro.ID, role),
				Active:         true,
				Redemptions:    []domain.Redemption{},
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			return tx.PersistentInvites().Create(ctx, out)
		}
		if err != nil {
			return err
		}
		inv.TokenDigest = digest
		inv.RedeemedCount = 0
		inv.Redemptions = []domain.Redemption{}
		inv.UpdatedAt = now
		if err := tx.PersistentInvites().Update(ctx, inv); err != nil {
			return err
		}
		if err := tx.PersistentInvites().ClearRedemptions(ctx, inv.ID); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, domain.Upstream("regenerate persistent invite", err)
	}
	return &domain.IssuedPersistentInvite{Invite: out, InviteCode: secret}, nil
}

func (s *inviteService) SetActive(ctx context.Context, callerID string, role domain.Role, active bool) (*domain.PersistentInvite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !role.IsMemberRole() {
		return nil, domain.ErrInvalidRole
	}
	pro, err := requirePro(ctx, s.store, callerID, false)
	if err != nil {
		return nil, err
	}

	var out *domain.PersistentInvite
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		inv, err := tx.PersistentInvites().GetByProAndRole(ctx, pro.ID, role)
		if err != nil {
			return err
		}
		if inv.Active != active {
			inv.Active = active
			inv.UpdatedAt = s.now()
			if err := tx.PersistentInvites().Update(ctx, inv); err != nil {
				return err
			}
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, domain.Upstream("set persistent invite active", err)
	}
	return out, nil
}

// Inspect resolves a secret of either kind without validating it.
func (s *inviteService) Inspect(ctx context.Context, secret string) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eph, err := s.getEphemeral(ctx, s.store, secret)
	if err == nil {
		return &domain.Invite{Kind: domain.InviteKindEphemeral, Ephemeral: eph}, nil
	}
	if !errors.Is(err, domain.ErrInviteNotFound) {
		return nil, err
	}
	per, err := s.getPersistent(ctx, s.store, secret)
	if err != nil {
		return nil, err
	}
	return &domain.Invite{Kind: domain.InviteKindPersistent, Persistent: per}, nil
}
