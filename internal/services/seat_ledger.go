package services

import (
	"context"
	"errors"
	"time"

	"prodroster/internal/domain"
)

type seatLedger struct {
	store          domain.Store
	policy         domain.SeatPolicy
	contextTimeout time.Duration
	now            func() time.Time
}

// NewSeatLedger returns a SeatLedger that keeps one counter document per team.
// timeout bounds the calls that open their own store access.
func NewSeatLedger(store domain.Store, policy domain.SeatPolicy, timeout time.Duration) domain.SeatLedger {
	return &seatLedger{store: store, policy: policy, contextTimeout: withDefaultTimeout(timeout), now: utcNow}
}

func (l *seatLedger) CurrentCount(ctx context.Context, proID string, role domain.Role) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, l.contextTimeout)
	defer cancel()

	c, err := loadSeatCount(ctx, l.store, proID)
	if err != nil {
		return 0, err
	}
	return c.For(role), nil
}

// CheckCapacity denies when the owning PRO is not active or the role is full.
func (l *seatLedger) CheckCapacity(ctx context.Context, repos domain.Repositories, proID string, role domain.Role) error {
	if !role.IsMemberRole() {
		return domain.ErrInvalidRole
	}
	pro, err := repos.Accounts().GetByID(ctx, proID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrTeamNotFound
		}
		return domain.Upstream("get pro account", err)
	}
	if !pro.IsActivePro() {
		return domain.ErrProInactive
	}
	c, err := loadSeatCount(ctx, repos, proID)
	if err != nil {
		return err
	}
	if c.For(role) >= l.policy.Limit(ctx, proID, role) {
		return domain.SeatLimitError(role)
	}
	return nil
}

func (l *seatLedger) TryReserveSeat(ctx context.Context, tx domain.Repositories, proID string, role domain.Role) error {
	if err := l.CheckCapacity(ctx, tx, proID, role); err != nil {
		return err
	}
	c, err := loadSeatCount(ctx, tx, proID)
	if err != nil {
		return err
	}
	c.Add(role, 1)
	c.UpdatedAt = l.now()
	if err := tx.Seats().Put(ctx, c); err != nil {
		return domain.Upstream("put seat count", err)
	}
	return nil
}

func (l *seatLedger) ReleaseSeat(ctx context.Context, tx domain.Repositories, proID string, role domain.Role) error {
	if proID == "" || !role.IsMemberRole() {
		return nil
	}
	c, err := tx.Seats().Get(ctx, proID)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			return nil
		}
		return domain.Upstream("get seat count", err)
	}
	c.Add(role, -1)
	c.UpdatedAt = l.now()
	if err := tx.Seats().Put(ctx, c); err != nil {
		return domain.Upstream("put seat count", err)
	}
	return nil
}

// Reconcile rewrites the team counter from the live member accounts.
func (l *seatLedger) Reconcile(ctx context.Context, proID string) (*domain.SeatCount, error) {
	ctx, cancel := context.WithTimeout(ctx, l.contextTimeout)
	defer cancel()

	var out *domain.SeatCount
	err := l.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		staff, err := tx.Accounts().CountMembers(ctx, proID, domain.RoleStaff)
		if err != nil {
			return domain.Upstream("count staff", err)
		}
		athletes, err := tx.Accounts().CountMembers(ctx, proID, domain.RoleAthlete)
		if err != nil {
			return domain.Upstream("count athletes", err)
		}
		c, err := loadSeatCount(ctx, tx, proID)
		if err != nil {
			return err
		}
		if c.StaffCount == staff && c.AthleteCount == athletes && !c.UpdatedAt.IsZero() {
			out = c
			return nil
		}
		c.StaffCount = staff
		c.AthleteCount = athletes
		c.UpdatedAt = l.now()
		if err := tx.Seats().Put(ctx, c); err != nil {
			return domain.Upstream("put seat count", err)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, domain.Upstream("reconcile seats", err)
	}
	return out, nil
}

// loadSeatCount returns the team counter, or a zero counter when none exists yet.
func loadSeatCount(ctx context.Context, repos domain.Repositories, proID string) (*domain.SeatCount, error) {
	c, err := repos.Seats().Get(ctx, proID)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			return &domain.SeatCount{ProID: proID}, nil
		}
		return nil, domain.Upstream("get seat count", err)
	}
	return c, nil
}

func utcNow() time.Time { return time.Now().UTC() }
