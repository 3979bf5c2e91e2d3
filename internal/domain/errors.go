package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service unwraps to exactly one of these.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
	ErrInvalidInput    = errors.New("invalid input")
)

// ReasonError is a terminal validation failure with a caller-facing reason.
type ReasonError struct {
	Kind   error
	Reason string
	cause  error
}

func (e *ReasonError) Error() string { return e.Reason }

func (e *ReasonError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

func reason(kind error, msg string) *ReasonError {
	return &ReasonError{Kind: kind, Reason: msg}
}

// Fixed reason vocabulary.
var (
	ErrInviteNotFound   = reason(ErrNotFound, "invite not found")
	ErrAccountNotFound  = reason(ErrNotFound, "account not found")
	ErrTeamNotFound     = reason(ErrNotFound, "team not found")
	ErrInviteClaimed    = reason(ErrInvalidState, "invite already claimed")
	ErrInviteExpired    = reason(ErrInvalidState, "invite expired")
	ErrInviteInactive   = reason(ErrInvalidState, "invite is not active")
	ErrSeatLimitReached = reason(ErrInvalidState, "seat limit reached")
	ErrProInactive      = reason(ErrInvalidState, "PRO account is not active")
	ErrAlreadyMember    = reason(ErrInvalidState, "account already belongs to this team")
	ErrAccountExists    = reason(ErrInvalidState, "account already registered")
	ErrProCannotJoin    = reason(ErrInvalidState, "PRO accounts cannot join a team")
	ErrNotPro           = reason(ErrForbidden, "only PRO accounts can manage invites")
	ErrNotTeamMember    = reason(ErrForbidden, "account does not belong to this team")
	ErrInvalidRole      = reason(ErrInvalidInput, "role must be STAFF or ATHLETE")
	ErrDuplicate        = reason(ErrConflict, "document already exists")
	ErrTxConflict       = reason(ErrConflict, "too much contention, please retry")
)

// Invalid returns an ErrInvalidInput failure with a caller-facing reason.
func Invalid(msg string) error {
	return reason(ErrInvalidInput, msg)
}

// SeatLimitError reports an exhausted role capacity, e.g. "STAFF invite limit reached".
// It matches both ErrInvalidState and ErrSeatLimitReached.
func SeatLimitError(role Role) error {
	return &ReasonError{
		Kind:   ErrInvalidState,
		Reason: fmt.Sprintf("%s invite limit reached", role),
		cause:  ErrSeatLimitReached,
	}
}

// UpstreamError wraps a failed or timed-out store / identity provider call.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() []error { return []error{ErrUpstream, e.Err} }

// Upstream wraps err unless it already carries a domain kind.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}

// IsKnown reports whether err already unwraps to one of the error kinds.
func IsKnown(err error) bool {
	for _, kind := range []error{ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrInvalidState, ErrConflict, ErrUpstream, ErrInvalidInput} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
