// Command server runs the pingmap HTTP service: account registration and
// login, cookie sessions, and the owner-scoped ping API behind them.
//
// Store selection is driven by configuration: DATABASE_URL and REDIS_URL
// pick PostgreSQL and Redis, and when absent the process runs fully
// in-memory for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	accountmetrics "pingmap/internal/account/metrics"
	"pingmap/internal/account/password"
	accountservice "pingmap/internal/account/service"
	accountstore "pingmap/internal/account/store"
	pinghandler "pingmap/internal/ping/handler"
	pingmetrics "pingmap/internal/ping/metrics"
	pingservice "pingmap/internal/ping/service"
	pingstore "pingmap/internal/ping/store"
	"pingmap/internal/platform/config"
	"pingmap/internal/platform/httpserver"
	"pingmap/internal/platform/logger"
	"pingmap/internal/platform/postgres"
	"pingmap/internal/platform/redis"
	"pingmap/internal/session"
	sessionstore "pingmap/internal/session/store"
	httptransport "pingmap/internal/transport/http"
	"pingmap/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}

	var (
		users accountstore.UserStore
		pings pingstore.PingStore
	)
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		users = accountstore.NewPostgres(db)
		pings = pingstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		users = accountstore.NewInMemory()
		pings = pingstore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	redisClient, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	var sessions session.SessionStore
	if redisClient != nil {
		defer redisClient.Close()
		sessions = sessionstore.NewRedis(redisClient.Client)
		log.Info("using redis session store")
	} else {
		sessions = sessionstore.NewInMemory()
		log.Warn("REDIS_URL not set, using in-memory session store")
	}

	accounts := accountservice.New(users, password.NewHasher(cfg.BcryptCost), accountmetrics.New())
	pingSvc := pingservice.New(pings, pingmetrics.New())
	manager := session.NewManager(sessions, cfg.SessionTTL)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Web:      web.New(accounts, manager, log),
		Pings:    pinghandler.New(pingSvc, log),
		Sessions: manager,
		DB:       db,
		Redis:    redisClient,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
