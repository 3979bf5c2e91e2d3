package services

import (
	"context"

	"prodroster/internal/domain"
)

// Default role capacities per team.
const (
	DefaultStaffLimit   = 5
	DefaultAthleteLimit = 20
)

type seatPolicy struct {
	staff   int
	athlete int
}

// NewSeatPolicy returns a SeatPolicy with fixed limits. Non-positive values fall back to the defaults.
func NewSeatPolicy(staff, athlete int) domain.SeatPolicy {
	if staff <= 0 {
		staff = DefaultStaffLimit
	}
	if athlete <= 0 {
		athlete = DefaultAthleteLimit
	}
	return &seatPolicy{staff: staff, athlete: athlete}
}

// Limit ignores proID for now; every team gets the same capacities.
func (p *seatPolicy) Limit(_ context.Context, _ string, role domain.Role) int {
	switch role {
	case domain.RoleStaff:
		return p.staff
	case domain.RoleAthlete:
		return p.athlete
	}
	return 0
}
