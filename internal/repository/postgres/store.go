package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"prodroster/internal/domain"
)

// Store is a domain.Store backed by Postgres. Transactions run at serializable
// isolation and are retried when Postgres reports a serialization failure.
type Store struct {
	db         *sql.DB
	maxRetries int
	logger     *slog.Logger

	accounts   domain.AccountRepository
	ephemeral  domain.EphemeralInviteRepository
	persistent domain.PersistentInviteRepository
	seats      domain.SeatCountRepository
}

// NewStore returns a Store over db. maxRetries bounds re-runs after a conflict.
func NewStore(db *sql.DB, maxRetries int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:         db,
		maxRetries: maxRetries,
		logger:     logger,
		accounts:   NewAccountRepository(db),
		ephemeral:  NewEphemeralInviteRepository(db),
		persistent: NewPersistentInviteRepository(db),
		seats:      NewSeatCountRepository(db),
	}
}

func (s *Store) Accounts() domain.AccountRepository                   { return s.accounts }
func (s *Store) EphemeralInvites() domain.EphemeralInviteRepository   { return s.ephemeral }
func (s *Store) PersistentInvites() domain.PersistentInviteRepository { return s.persistent }
func (s *Store) Seats() domain.SeatCountRepository                    { return s.seats }

type txRepos struct {
	tx *sql.Tx
}

func (t txRepos) Accounts() domain.AccountRepository { return &accountRepository{DB: t.tx} }
func (t txRepos) EphemeralInvites() domain.EphemeralInviteRepository {
	return &ephemeralInviteRepository{DB: t.tx}
}
func (t txRepos) PersistentInvites() domain.PersistentInviteRepository {
	return &persistentInviteRepository{DB: t.tx}
}
func (t txRepos) Seats() domain.SeatCountRepository { return &seatCountRepository{DB: t.tx} }

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx domain.Repositories) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := s.withTx(ctx, fn)
		if err == nil {
			return struct{}{}, nil
		}
		if isRetryable(err) {
			s.logger.Debug("transaction conflict, retrying", "attempt", attempt, "error", err)
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(s.maxRetries+1)))
	if err == nil {
		return nil
	}
	if isRetryable(err) {
		return domain.ErrTxConflict
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.Upstream("transaction", err)
	}
	return err
}

func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx domain.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(ctx, txRepos{tx: tx}); err != nil {
		return rollbackWith(tx, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rollbackWith(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
	}
	return err
}
