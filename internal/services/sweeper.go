package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"prodroster/internal/domain"
)

// DefaultSweepInterval is how often the maintenance pass runs.
const DefaultSweepInterval = 15 * time.Minute

// SweepReport summarizes one maintenance pass.
type SweepReport struct {
	ExpiredInvites   int64
	TeamsReconciled  int
	AccountsRepaired int
}

// Sweeper runs the periodic corrective passes: expired invite cleanup, seat
// counter reconciliation and a guardian pass over PRO accounts. Every step is
// idempotent.
type Sweeper struct {
	store    domain.Store
	ledger   domain.SeatLedger
	guardian domain.ConsistencyGuardian
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	// contextTimeout bounds each store step of a pass.
	contextTimeout time.Duration
}

func NewSweeper(store domain.Store, ledger domain.SeatLedger, guardian domain.ConsistencyGuardian, logger *slog.Logger, interval, timeout time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		store:          store,
		ledger:         ledger,
		guardian:       guardian,
		logger:         logger,
		interval:       interval,
		now:            utcNow,
		contextTimeout: withDefaultTimeout(timeout),
	}
}

// SweepOnce runs every step even if an earlier one fails and joins the errors.
func (s *Sweeper) SweepOnce(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	var errs []error

	n, err := s.deleteExpired(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete expired invites: %w", err))
	}
	report.ExpiredInvites = n

	proIDs, err := s.listTeams(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("list teams: %w", err))
	}
	for _, id := range proIDs {
		if _, err := s.ledger.Reconcile(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("reconcile %s: %w", id, err))
			continue
		}
		report.TeamsReconciled++
	}

	repaired, err := s.guardian.RepairAll(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	report.AccountsRepaired = repaired

	return report, errors.Join(errs...)
}

func (s *Sweeper) deleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.store.EphemeralInvites().DeleteExpired(ctx, s.now())
}

func (s *Sweeper) listTeams(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.store.Seats().ListProIDs(ctx)
}

// Run sweeps on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := s.SweepOnce(ctx)
			if err != nil {
				s.logger.Error("maintenance sweep failed", "error", err)
			}
			s.logger.Info("maintenance sweep",
				"expired_invites", report.ExpiredInvites,
				"teams_reconciled", report.TeamsReconciled,
				"accounts_repaired", report.AccountsRepaired,
			)
		}
	}
}
