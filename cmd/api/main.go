package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/coopera/savings-backend/internal/api"
	"github.com/coopera/savings-backend/internal/api/handlers"
	"github.com/coopera/savings-backend/internal/config"
	"github.com/coopera/savings-backend/internal/db"
	"github.com/coopera/savings-backend/internal/identity"
	"github.com/coopera/savings-backend/internal/logger"
	"github.com/coopera/savings-backend/internal/metrics"
	"github.com/coopera/savings-backend/internal/middleware"
	"github.com/coopera/savings-backend/internal/repository/postgres"
	"github.com/coopera/savings-backend/internal/services"
	"github.com/coopera/savings-backend/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}

	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	identitySvc := services.NewIdentityService(repos.Users)
	goalSvc := services.NewGoalService(repos.Goals, repos.Transactions)
	ledgerSvc := services.NewLedgerService(repos.Goals, repos.Transactions, repos.PersonalSavings, repos.AuditLogs, repos.Notifications, wp)
	profileSvc := services.NewProfileService(repos.PersonalSavings, repos.Notifications)

	metrics.Init()

	verifier := identity.NewVerifier(cfg.AuthSecret, cfg.AuthIssuer)
	auth := middleware.NewAuthMiddleware(verifier)
	h := handlers.NewAPI(identitySvc, goalSvc, ledgerSvc, profileSvc)
	r := api.NewRouter(cfg, h, auth)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
