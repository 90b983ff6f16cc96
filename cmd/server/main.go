package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Simplici0/housecost/internal/advice"
	"github.com/Simplici0/housecost/internal/config"
	"github.com/Simplici0/housecost/internal/db"
	"github.com/Simplici0/housecost/internal/logging"
	"github.com/Simplici0/housecost/internal/migrations"
	"github.com/Simplici0/housecost/internal/seed"
)

type server struct {
	auth          *authService
	db            *sql.DB
	log           *zap.Logger
	validate      *validator.Validate
	advisor       advice.Advisor
	adviceTimeout time.Duration
}

func main() {
	cfg := config.Load()

	logger := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.IsDev(),
	})
	defer logging.Sync(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database, logger); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int("inserts", stats.Inserts))

	srv := newServer(database, cfg.SessionSecret, logger)
	srv.adviceTimeout = cfg.AdviceTimeout
	if cfg.AdviceEnabled() {
		advisor, err := advice.NewGeminiAdvisor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("failed to create advisor", zap.Error(err))
		}
		srv.advisor = advisor
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", httpServer.Addr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newServer(database *sql.DB, sessionSecret string, logger *zap.Logger) *server {
	return &server{
		auth:          newAuthService(database, sessionSecret),
		db:            database,
		log:           logger,
		validate:      validator.New(),
		adviceTimeout: 30 * time.Second,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Post("/estimate", s.handleEstimate)
		r.Get("/prices", s.handleGetPrices)
		r.Post("/advice", s.handleAdvice)

		r.Post("/estimates", s.handleEstimateCreate)
		r.Get("/estimates", s.handleEstimatesList)
		r.Get("/estimates/{id}", s.handleEstimateDetail)
		r.Get("/estimates/{id}/text", s.handleEstimateText)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Put("/prices", s.handleAdminPricesUpdate)
		r.Post("/prices/{tier}/step", s.handleAdminPriceStep)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
