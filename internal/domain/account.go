package domain

import (
	"context"
	"strings"
	"time"
)

// Role is the account type. Values are part of the wire contract.
type Role string

const (
	RolePro     Role = "PRO"
	RoleStaff   Role = "STAFF"
	RoleAthlete Role = "ATHLETE"
)

// ParseRole normalizes s and returns the matching role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RolePro, RoleStaff, RoleAthlete:
		return r, true
	}
	return "", false
}

// IsMemberRole reports whether r can be granted through an invite.
func (r Role) IsMemberRole() bool {
	return r == RoleStaff || r == RoleAthlete
}

// ProStatus is the activation state of a PRO account.
type ProStatus string

const (
	ProStatusInactive ProStatus = "inactive"
	ProStatusActive   ProStatus = "active"
)

// Account is a registered identity and its team membership.
// For PRO accounts ProID always equals ID once the guardian has run.
// swagger:model Account
type Account struct {
	ID               string     `json:"uid"`
	Email            string     `json:"email"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Role             Role       `json:"role"`
	ProID            string     `json:"proId,omitempty"`
	ProStatus        ProStatus  `json:"proStatus"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	ClaimsRepairedAt *time.Time `json:"claimsRepairedAt,omitempty"`
}

// IsActivePro reports whether the account can own a team.
func (a *Account) IsActivePro() bool {
	return a != nil && a.Role == RolePro && a.ProStatus == ProStatusActive
}

// Clone returns a copy that shares no pointers with a.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.ClaimsRepairedAt != nil {
		t := *a.ClaimsRepairedAt
		c.ClaimsRepairedAt = &t
	}
	return &c
}

// Profile holds the fields a redeemer supplies when joining a team.
type Profile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Apply copies non-empty profile fields onto a.
func (p Profile) Apply(a *Account) {
	if v := strings.TrimSpace(p.Email); v != "" {
		a.Email = strings.ToLower(v)
	}
	if v := strings.TrimSpace(p.FirstName); v != "" {
		a.FirstName = v
	}
	if v := strings.TrimSpace(p.LastName); v != "" {
		a.LastName = v
	}
}

// AccountRepository defines the interface for account storage.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*Account, error)
	// Upsert inserts or fully replaces the account row.
	Upsert(ctx context.Context, account *Account) error
	ListByProID(ctx context.Context, proID string) ([]*Account, error)
	ListByRole(ctx context.Context, role Role) ([]*Account, error)
	CountMembers(ctx context.Context, proID string, role Role) (int, error)
}

// AccountService covers registration and profile reads.
type AccountService interface {
	Register(ctx context.Context, uid string, role Role, profile Profile) (*Account, error)
	// GetMe returns the caller's account after running a guardian pass on it.
	GetMe(ctx context.Context, uid string) (*Account, error)
}
