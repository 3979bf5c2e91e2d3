package domain

import (
	"context"
	"time"
)

// SeatCount is the per-team occupancy counter kept in lock-step with redemptions.
// swagger:model SeatCount
type SeatCount struct {
	ProID        string    `json:"proId"`
	StaffCount   int       `json:"staffCount"`
	AthleteCount int       `json:"athleteCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// For returns the counter for role.
func (c *SeatCount) For(role Role) int {
	switch role {
	case RoleStaff:
		return c.StaffCount
	case RoleAthlete:
		return c.AthleteCount
	}
	return 0
}

// Add adjusts the counter for role by delta, never going below zero.
func (c *SeatCount) Add(role Role, delta int) {
	switch role {
	case RoleStaff:
		c.StaffCount = max(c.StaffCount+delta, 0)
	case RoleAthlete:
		c.AthleteCount = max(c.AthleteCount+delta, 0)
	}
}

// SeatCountRepository stores team counters.
type SeatCountRepository interface {
	// Get returns ErrTeamNotFound when the team has no counter yet.
	Get(ctx context.Context, proID string) (*SeatCount, error)
	Put(ctx context.Context, count *SeatCount) error
	ListProIDs(ctx context.Context) ([]string, error)
}

// SeatPolicy maps a role to its capacity. proID allows per-PRO overrides.
type SeatPolicy interface {
	Limit(ctx context.Context, proID string, role Role) int
}

// SeatLedger enforces capacity against the team counters.
type SeatLedger interface {
	CurrentCount(ctx context.Context, proID string, role Role) (int, error)
	// CheckCapacity is the read-only admission check used outside transactions.
	CheckCapacity(ctx context.Context, repos Repositories, proID string, role Role) error
	// TryReserveSeat checks and increments inside the caller's transaction.
	TryReserveSeat(ctx context.Context, tx Repositories, proID string, role Role) error
	// ReleaseSeat decrements inside the caller's transaction.
	ReleaseSeat(ctx context.Context, tx Repositories, proID string, role Role) error
	// Reconcile rewrites the counter from live accounts.
	Reconcile(ctx context.Context, proID string) (*SeatCount, error)
}
