// @title PRO Roster API
// @version 1.0
// @description Team invites, reusable invite codes and seat allocation for PRO accounts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity token.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"prodroster/config"
	_ "prodroster/docs"
	"prodroster/internal/adapters/auth"
	"prodroster/internal/adapters/identity"
	"prodroster/internal/adapters/queue"
	httpdelivery "prodroster/internal/delivery/http"
	"prodroster/internal/delivery/http/controllers"
	"prodroster/internal/delivery/http/middleware"
	"prodroster/internal/domain"
	"prodroster/internal/repository/memory"
	"prodroster/internal/repository/postgres"
	"prodroster/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, identities, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	repairQueue, err := openQueue(ctx, cfg)
	if err != nil {
		return err
	}

	idp := identity.NewProvider(auth.NewJWTVerifier(cfg.JWTSecret), identities)
	policy := services.NewSeatPolicy(cfg.SeatLimitStaff, cfg.SeatLimitAthlete)
	ledger := services.NewSeatLedger(store, policy, cfg.ContextTimeout)
	guardian := services.NewConsistencyGuardian(store, idp, repairQueue, logger, cfg.ClaimMirrorMaxTries, cfg.ContextTimeout)

	inviteService := services.NewInviteService(store, ledger, policy, auth.NewInviteTokenCodec(), idp, guardian, logger, cfg.EphemeralInviteTTL, cfg.ContextTimeout)
	accountService := services.NewAccountService(store, guardian, logger, cfg.ContextTimeout)
	activationService := services.NewActivationService(store, ledger, guardian, logger, cfg.ContextTimeout)
	teamService := services.NewTeamService(store, ledger, policy, guardian, logger, cfg.ContextTimeout)
	sweeper := services.NewSweeper(store, ledger, guardian, logger, cfg.SweepInterval, cfg.ContextTimeout)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Account:    controllers.NewAccountController(logger, accountService),
		Invite:     controllers.NewInviteController(logger, inviteService),
		InviteCode: controllers.NewInviteCodeController(logger, inviteService),
		Team:       controllers.NewTeamController(logger, teamService),
		Webhook:    controllers.NewWebhookController(logger, activationService, cfg.PaymentWebhookSecret),
	}, middleware.RequireAuth(idp, logger), limiter.Limit)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           httpdelivery.Chain(mux, logger, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := guardian.Run(workerCtx); err != nil {
			logger.Error("repair worker stopped", "err", err)
		}
	}()
	go func() {
		defer wg.Done()
		sweeper.Run(workerCtx)
	}()
	go func() {
		defer wg.Done()
		limiter.RunCleanup(workerCtx.Done())
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "store", cfg.StoreBackend, "repair_queue", cfg.RepairQueue)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("server shutdown error", "err", shutdownErr)
	}
	cancelWorkers()
	if repairQueue != nil {
		if closeErr := repairQueue.Close(); closeErr != nil {
			logger.Error("repair queue close error", "err", closeErr)
		}
	}
	wg.Wait()
	return err
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.Store, domain.IdentityStore, func(), error) {
	if cfg.StoreBackend == config.BackendMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(cfg.TxMaxRetries), memory.NewIdentityStore(), func() {}, nil
	}
	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		closeDB(db, logger)
		return nil, nil, nil, err
	}
	return postgres.NewStore(db, cfg.TxMaxRetries, logger), postgres.NewIdentityRepository(db), func() { closeDB(db, logger) }, nil
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("database close error", "err", err)
	}
}

func openQueue(ctx context.Context, cfg *config.Config) (domain.RepairQueue, error) {
	switch cfg.RepairQueue {
	case config.BackendMemory:
		return queue.NewMemoryQueue(cfg.RepairQueueSize), nil
	case config.QueueRedis:
		client, err := queue.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect repair queue: %w", err)
		}
		return queue.NewRedisQueue(client, cfg.RedisQueueKey), nil
	}
	return nil, nil
}
