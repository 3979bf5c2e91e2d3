package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"prodroster/internal/domain"
)

const (
	defaultMirrorTries = 5
	enqueueTimeout     = 2 * time.Second
)

type guardian struct {
	store          domain.Store
	idp            domain.IdentityProvider
	queue          domain.RepairQueue
	logger         *slog.Logger
	mirrorTries    uint
	mirrorInterval time.Duration
	contextTimeout time.Duration
	now            func() time.Time
}

// NewConsistencyGuardian returns a guardian that repairs accounts read from store and
// mirrors claims into idp. With a nil queue, observed mutations are repaired inline.
func NewConsistencyGuardian(store domain.Store, idp domain.IdentityProvider, queue domain.RepairQueue, logger *slog.Logger, mirrorTries int, timeout time.Duration) domain.ConsistencyGuardian {
	if mirrorTries <= 0 {
		mirrorTries = defaultMirrorTries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &guardian{
		store:          store,
		idp:            idp,
		queue:          queue,
		logger:         logger,
		mirrorTries:    uint(mirrorTries),
		mirrorInterval: 50 * time.Millisecond,
		contextTimeout: withDefaultTimeout(timeout),
		now:            utcNow,
	}
}

func (g *guardian) Repair(ctx context.Context, accountID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.contextTimeout)
	defer cancel()

	var account *domain.Account
	drifted := false
	err := g.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		a, err := tx.Accounts().GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		drifted = a.Role == domain.RolePro && a.ProID != a.ID
		if drifted {
			now := g.now()
			a.ProID = a.ID
			a.UpdatedAt = now
			a.ClaimsRepairedAt = &now
			if err := tx.Accounts().Upsert(ctx, a); err != nil {
				return err
			}
		}
		account = a
		return nil
	})
	if err != nil {
		return false, domain.Upstream("repair account", err)
	}
	if drifted {
		g.logger.Info("repaired pro identity", "account_id", accountID)
	}

	current, err := g.idp.Claims(ctx, accountID)
	if err != nil {
		return drifted, err
	}
	if current == domain.ClaimsFor(account) {
		return drifted, nil
	}
	if err := g.MirrorClaims(ctx, account); err != nil {
		return drifted, err
	}
	g.logger.Info("repaired claim mirror", "account_id", accountID, "role", account.Role, "pro_id", account.ProID)
	if drifted {
		return true, nil
	}

	err = g.store.WithTransaction(ctx, func(ctx context.Context, tx domain.Repositories) error {
		a, err := tx.Accounts().GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		now := g.now()
		a.ClaimsRepairedAt = &now
		return tx.Accounts().Upsert(ctx, a)
	})
	if err != nil {
		return true, domain.Upstream("stamp claims repair", err)
	}
	return true, nil
}

// Observe schedules a repair when a mutation can break PRO self-reference or leave
// the claim mirror stale. Failures are logged only.
func (g *guardian) Observe(ctx context.Context, before, after *domain.Account) {
	if !needsRepair(before, after) {
		return
	}
	if g.queue != nil {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
		err := g.queue.Enqueue(qctx, after.ID)
		cancel()
		if err == nil {
			return
		}
		g.logger.Warn("enqueue repair failed, repairing inline", "account_id", after.ID, "error", err)
	}
	if _, err := g.Repair(context.WithoutCancel(ctx), after.ID); err != nil {
		g.logger.Error("repair failed", "account_id", after.ID, "error", err)
	}
}

func needsRepair(before, after *domain.Account) bool {
	if after == nil {
		return false
	}
	if after.Role == domain.RolePro {
		if after.ProID != after.ID {
			return true
		}
		if before == nil || before.Role != domain.RolePro {
			return true
		}
		if before.ProStatus != domain.ProStatusActive && after.ProStatus == domain.ProStatusActive {
			return true
		}
	}
	return before == nil || domain.ClaimsFor(before) != domain.ClaimsFor(after)
}

// MirrorClaims writes the account's claims to the identity provider, retrying
// upstream failures. All attempts share one contextTimeout budget.
func (g *guardian) MirrorClaims(ctx context.Context, account *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, g.contextTimeout)
	defer cancel()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.mirrorInterval
	claims := domain.ClaimsFor(account)

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := g.idp.SetClaims(ctx, account.ID, claims)
		if err != nil && !errors.Is(err, domain.ErrUpstream) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(g.mirrorTries))
	if err != nil {
		return domain.Upstream("mirror claims", err)
	}
	return nil
}

func (g *guardian) RepairAll(ctx context.Context) (int, error) {
	lctx, cancel := context.WithTimeout(ctx, g.contextTimeout)
	pros, err := g.store.Accounts().ListByRole(lctx, domain.RolePro)
	cancel()
	if err != nil {
		return 0, domain.Upstream("list pro accounts", err)
	}
	repaired := 0
	var errs []error
	for _, a := range pros {
		changed, err := g.Repair(ctx, a.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("repair %s: %w", a.ID, err))
			continue
		}
		if changed {
			repaired++
		}
	}
	return repaired, errors.Join(errs...)
}

// Run drains the repair queue until ctx is done or the queue is closed.
func (g *guardian) Run(ctx context.Context) error {
	if g.queue == nil {
		return nil
	}
	for {
		id, err := g.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, domain.ErrQueueClosed) {
				return nil
			}
			g.logger.Error("dequeue repair", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		if _, err := g.Repair(ctx, id); err != nil {
			g.logger.Error("repair failed", "account_id", id, "error", err)
		}
	}
}

// settleClaims mirrors claims after a committed account mutation and hands the
// mutation to the guardian. It outlives the caller's cancellation but each step
// is bounded by the guardian's own timeout. Mirror failures never fail the caller.
func settleClaims(ctx context.Context, g domain.ConsistencyGuardian, logger *slog.Logger, before, after *domain.Account) {
	if after == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := g.MirrorClaims(ctx, after); err != nil {
		logger.Warn("claim mirror failed, left to guardian", "account_id", after.ID, "error", err)
	}
	g.Observe(ctx, before, after)
}

const defaultContextTimeout = 10 * time.Second

func withDefaultTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultContextTimeout
	}
	return d
}
