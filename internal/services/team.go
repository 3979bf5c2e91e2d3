package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"prodroster/internal/domain"
)

type teamService struct {
	store          domain.Store
	ledger         domain.SeatLedger
	policy         domain.SeatPolicy
	guardian       domain.ConsistencyGuardian
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewTeamService(store domain.Store, ledger domain.SeatLedger, policy domain.SeatPolicy, guardian domain.ConsistencyGuardian, logger *slog.Logger, timeout time.Duration) domain.TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &teamService{
		store:          store,
		ledger:         ledger,
		policy:         policy,
		guardian:       guardian,
		logger:         logger,
		contextTimeout: withDefaultTimeout(timeout),
		now:            utcNow,
	}
}

func (s *teamService) GetTeam(ctx context.Context, callerID string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pro, err := requirePro(ctx, s.store, callerID, false)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.Accounts().ListByProID(ctx, pro.ID)
	if err != nil {
		return nil, domain.Upstream("list team members", err)
	}
	members := make([]*domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.ID != pro.ID {
			members = append(members, a)
		}
	}
	seats, err := loadSeatCount(ctx, s.store, pro.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Team{
		ProID:        pro.ID,
		Members:      members,
		Seats:        seats,
		StaffLimit:   s.policy.Limit(ctx, pro.ID, domain.RoleStaff),
		AthleteLimit: s.policy.Limit(ctx, pro.ID, domain.RoleAthlete),
	}, nil
}

// RemoveMember detaches memberID from the caller's team and frees its seat.
func (s *teamService) RemoveMember(ctx context.Context, callerID, memberID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pro, err := requirePro(ctx, s.store, callerID, false)
	if err != nil {
		return err
	}
	if memberID == pro.ID {
		return domain.Invalid("a PRO cannot remove themselves from their own team")
	}

	var before, after *domain.Account
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		m, err := tx.Accounts().GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return domain.ErrNotTeamMember
			}
			return err
		}
		if m.ProID != pro.ID {
			return domain.ErrNotTeamMember
		}
		before = m.Clone()
		m.ProID = ""
		m.UpdatedAt = s.now()
		if err := tx.Accounts().Upsert(ctx, m); err != nil {
			return err
		}
		if err := s.ledger.ReleaseSeat(ctx, tx, pro.ID, m.Role); err != nil {
			return err
		}
		after = m
		return nil
	})
	if err != nil {
		return domain.Upstream("remove team member", err)
	}
	s.logger.Info("team member removed", "pro_id", pro.ID, "account_id", memberID)
	settleClaims(ctx, s.guardian, s.logger, before, after)
	return nil
}
