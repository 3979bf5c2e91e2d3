package domain

import "context"

// Repositories groups the document repositories that may take part in one transaction.
type Repositories interface {
	Accounts() AccountRepository
	EphemeralInvites() EphemeralInviteRepository
	PersistentInvites() PersistentInviteRepository
	Seats() SeatCountRepository
}

// Store is the document store. Its repositories operate outside any transaction.
type Store interface {
	Repositories
	// WithTransaction runs fn against a consistent snapshot and commits its writes
	// atomically. Conflicting concurrent writers cause fn to be re-run a bounded
	// number of times before ErrTxConflict is returned. fn must not have side
	// effects outside tx.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
}
