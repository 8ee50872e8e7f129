package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	authhandler "bizcore/internal/auth/handler"
	"bizcore/internal/auth/password"
	authservice "bizcore/internal/auth/service"
	userstore "bizcore/internal/auth/store/user"
	"bizcore/internal/auth/token"
	dashboardhandler "bizcore/internal/dashboard/handler"
	dashboardservice "bizcore/internal/dashboard/service"
	inventoryhandler "bizcore/internal/inventory/handler"
	inventoryservice "bizcore/internal/inventory/service"
	itemstore "bizcore/internal/inventory/store/item"
	"bizcore/internal/platform/config"
	"bizcore/internal/platform/database"
	"bizcore/internal/platform/logger"
	"bizcore/internal/platform/metrics"
	tenantstore "bizcore/internal/tenant/store/tenant"
	httptransport "bizcore/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing bizcore", "addr", cfg.Addr, "token_ttl", cfg.TokenTTL.String())

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close() //nolint:errcheck // process exiting

	tokens, err := token.New(cfg.JWTSigningKey, cfg.TokenTTL)
	if err != nil {
		log.Error("invalid token configuration", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	hasher := password.New(bcrypt.DefaultCost)

	users := userstore.NewPostgres(pool.DB())
	tenants := tenantstore.NewPostgres(pool.DB())
	items := itemstore.NewPostgres(pool.DB())

	authSvc := authservice.New(users, tenants, hasher, tokens,
		authservice.WithLogger(log),
		authservice.WithMetrics(m),
		authservice.WithStoreTx(newRegisterPostgresTx(pool.DB())),
	)
	inventorySvc := inventoryservice.New(items, log)
	dashboardSvc := dashboardservice.New(users, items, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:      authhandler.New(authSvc, log),
		Inventory: inventoryhandler.New(inventorySvc, log),
		Dashboard: dashboardhandler.New(dashboardSvc, log),
		Verifier:  tokens,
		Identity:  authSvc,
		Health:    pool,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
