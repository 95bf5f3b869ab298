package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lifeplan/internal/audit"
	"lifeplan/internal/db"
	"lifeplan/internal/middleware"
	"lifeplan/internal/recommendation"
	"lifeplan/internal/router"
	"lifeplan/internal/session"
	"lifeplan/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── AUDIT ─────────────────────────
	var recorder audit.Recorder = audit.NopRecorder{}
	if cfg.DatabaseURL != "" {
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		recorder = audit.NewPostgresRecorder(pool)
		logger.Info("submission audit enabled")
	}

	// ───────────────────────── SESSIONS ─────────────────────────
	var store session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rs := session.NewRedisStore(cfg.RedisAddr)
		if err := rs.Ping(ctx); err != nil {
			return err
		}
		defer rs.Close()
		store = rs
		logger.Info("redis session store enabled", zap.String("addr", cfg.RedisAddr))
	}

	// ───────────────────────── RECOMMENDATIONS ─────────────────────────
	upstream := recommendation.NewHTTPClient(cfg.APIURL, cfg.APIKey, cfg.RequestTimeout)
	client := audit.NewClient(upstream, recorder, logger)

	registry := session.NewRegistry(store, client, logger, cfg.SessionTTL)
	defer registry.Stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	defer limiter.Stop()

	handler := web.NewHandler(registry, client, logger)
	engine := router.NewRouter(handler, limiter, logger, router.Options{
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening",
			zap.String("addr", cfg.Addr),
			zap.String("upstream", upstream.Endpoint()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if werr := handler.Shutdown(shutdownCtx); err == nil {
			err = werr
		}
		return err
	})

	return g.Wait()
}
