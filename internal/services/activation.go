package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"prodroster/internal/domain"
)

type activationService struct {
	store          domain.Store
	ledger         domain.SeatLedger
	guardian       domain.ConsistencyGuardian
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewActivationService creates the service that applies PRO entitlement events.
func NewActivationService(store domain.Store, ledger domain.SeatLedger, guardian domain.ConsistencyGuardian, logger *slog.Logger, timeout time.Duration) domain.ActivationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &activationService{
		store:          store,
		ledger:         ledger,
		guardian:       guardian,
		logger:         logger,
		contextTimeout: withDefaultTimeout(timeout),
		now:            utcNow,
	}
}

func (s *activationService) HandlePaymentEvent(ctx context.Context, evt domain.PaymentEvent) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if evt.AccountID == "" {
		return nil, domain.Invalid("accountId is required")
	}
	switch evt.PaymentKind {
	case domain.PaymentKindProSubscription:
		return s.activate(ctx, evt.AccountID)
	case domain.PaymentKindProCancellation:
		return s.deactivate(ctx, evt.AccountID)
	default:
		s.logger.Info("ignoring payment event", "account_id", evt.AccountID, "payment_kind", evt.PaymentKind)
		return nil, nil
	}
}

func (s *activationService) activate(ctx context.Context, accountID string) (*domain.Account, error) {
	now := s.now()
	var before, after *domain.Account
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		a, err := tx.Accounts().GetByID(ctx, accountID)
		switch {
		case err == nil:
			before = a.Clone()
			if a.Role != domain.RolePro {
				if err := s.ledger.ReleaseSeat(ctx, tx, a.ProID, a.Role); err != nil {
					return err
				}
			}
		case errors.Is(err, domain.ErrAccountNotFound):
			a = &domain.Account{ID: accountID, CreatedAt: now}
		default:
			return err
		}
		a.Role = domain.RolePro
		a.ProStatus = domain.ProStatusActive
		a.ProID = a.ID
		a.UpdatedAt = now
		if err := tx.Accounts().Upsert(ctx, a); err != nil {
			return err
		}
		if _, err := tx.Seats().Get(ctx, a.ID); errors.Is(err, domain.ErrTeamNotFound) {
			if err := tx.Seats().Put(ctx, &domain.SeatCount{ProID: a.ID, UpdatedAt: now}); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		after = a
		return nil
	})
	if err != nil {
		return nil, domain.Upstream("activate pro", err)
	}
	s.logger.Info("pro activated", "account_id", accountID)
	settleClaims(ctx, s.guardian, s.logger, before, after)
	return after, nil
}

func (s *activationService) deactivate(ctx context.Context, accountID string) (*domain.Account, error) {
	var before, after *domain.Account
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		a, err := tx.Accounts().GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if a.Role != domain.RolePro {
			return nil
		}
		before = a.Clone()
		a.ProStatus = domain.ProStatusInactive
		a.UpdatedAt = s.now()
		if err := tx.Accounts().Upsert(ctx, a); err != nil {
			return err
		}
		after = a
		return nil
	})
	if err != nil {
		return nil, domain.Upstream("deactivate pro", err)
	}
	if after == nil {
		s.logger.Info("ignoring cancellation for non-pro account", "account_id", accountID)
		return nil, nil
	}
	s.logger.Info("pro deactivated", "account_id", accountID)
	settleClaims(ctx, s.guardian, s.logger, before, after)
	return after, nil
}
