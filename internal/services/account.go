package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"prodroster/internal/domain"
)

type accountService struct {
	store          domain.Store
	guardian       domain.ConsistencyGuardian
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAccountService creates an AccountService.
func NewAccountService(store domain.Store, guardian domain.ConsistencyGuardian, logger *slog.Logger, timeout time.Duration) domain.AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &accountService{
		store:          store,
		guardian:       guardian,
		logger:         logger,
		contextTimeout: withDefaultTimeout(timeout),
		now:            utcNow,
	}
}

// Register creates the caller's account. PRO accounts start inactive and own
// their team namespace from the start.
func (s *accountService) Register(ctx context.Context, uid string, role domain.Role, profile domain.Profile) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if uid == "" {
		return nil, domain.ErrUnauthenticated
	}
	switch role {
	case domain.RolePro, domain.RoleStaff, domain.RoleAthlete:
	default:
		return nil, domain.Invalid("role must be PRO, STAFF or ATHLETE")
	}
	if strings.TrimSpace(profile.Email) == "" {
		return nil, domain.Invalid("email is required")
	}

	now := s.now()
	account := &domain.Account{
		ID:        uid,
		Role:      role,
		ProStatus: domain.ProStatusInactive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role == domain.RolePro {
		account.ProID = uid
	}
	profile.Apply(account)

	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		_, err := tx.Accounts().GetByID(ctx, uid)
		if err == nil {
			return domain.ErrAccountExists
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		return tx.Accounts().Upsert(ctx, account)
	})
	if err != nil {
		return nil, domain.Upstream("register account", err)
	}

	settleClaims(ctx, s.guardian, s.logger, nil, account)
	return account, nil
}

// GetMe repairs the account before reading it, so a mirror lost after an
// earlier commit converges on the next read.
func (s *accountService) GetMe(ctx context.Context, uid string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.guardian.Repair(ctx, uid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		s.logger.Warn("repair on read failed", "account_id", uid, "error", err)
	}
	a, err := s.store.Accounts().GetByID(ctx, uid)
	if err != nil {
		return nil, domain.Upstream("get account", err)
	}
	return a, nil
}
