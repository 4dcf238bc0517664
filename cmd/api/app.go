package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-formrelay-backend/config"
	v1 "go-formrelay-backend/internal/delivery/http/v1"
	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/internal/repository/postgres"
	sqliterepo "go-formrelay-backend/internal/repository/sqlite"
	"go-formrelay-backend/internal/usecase"
	"go-formrelay-backend/pkg/database"
	"go-formrelay-backend/pkg/email"
	"go-formrelay-backend/pkg/logger"
	"go-formrelay-backend/pkg/ratelimit"
	"go-formrelay-backend/pkg/redis"
	"go-formrelay-backend/pkg/security"
	"go-formrelay-backend/pkg/submissionlog"
)

const serviceName = "formrelay"

// app holds the wired service and everything that must be released on exit.
type app struct {
	handler http.Handler
	secLog  *security.SecurityLogger
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.secLog.Sync()
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{secLog: security.NewSecurityLogger(serviceName, cfg.Environment)}

	// 1. Cooldown store
	store, storeName, closeStore := openCooldownStore(ctx, cfg)
	a.closers = append(a.closers, closeStore)
	limiter := ratelimit.NewLimiter(store)

	// 2. Mail transport
	transport, err := email.NewTransport(cfg, logger.Log)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Log.Info("Mail transport ready", "transport", transport.Name())

	// 3. Subscriber storage (optional)
	var repo domain.SubscriberRepository
	if cfg.Newsletter.UseDatabase {
		r, closeRepo, err := openSubscriberRepository(ctx, cfg)
		if err != nil {
			// Subscriptions still work without storage; duplicates go undetected
			logger.Log.Error("Subscriber storage unavailable", "driver", cfg.Database.Driver, "error", err)
		} else {
			a.closers = append(a.closers, closeRepo)
			if err := r.EnsureSchema(ctx); err != nil {
				logger.Log.Warn("Failed to ensure subscriber table", "error", err)
			}
			repo = r
		}
	}

	// 4. UseCases
	sink := submissionlog.New(cfg.SubmissionLogDir)
	company := email.MetaFromConfig(cfg)

	contactUC := usecase.NewContactUsecase(limiter, transport, a.secLog, sink, usecase.ContactConfig{
		ReceivingEmail:   cfg.Contact.ReceivingEmail,
		Cooldown:         time.Duration(cfg.Contact.CooldownSeconds) * time.Second,
		MaxMessageLength: cfg.Contact.MaxMessageLength,
		Company:          company,
	})
	newsletterUC := usecase.NewNewsletterUsecase(limiter, repo, transport, a.secLog, sink, usecase.NewsletterConfig{
		ReceivingEmail:     cfg.Newsletter.ReceivingEmail,
		Cooldown:           time.Duration(cfg.Newsletter.CooldownSeconds) * time.Second,
		AdminNotification:  cfg.Newsletter.AdminNotification,
		SendConfirmation:   cfg.Newsletter.SendConfirmation,
		RequireDoubleOptIn: cfg.Newsletter.RequireDoubleOptIn,
		PublicBaseURL:      cfg.PublicBaseURL,
		Company:            company,
	})

	// 5. Router
	a.handler = v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		NewsletterUC:   newsletterUC,
		HealthUC:       usecase.NewHealthUsecase(transport.Name(), storeName),
		SecurityLogger: a.secLog,
		Config:         cfg,
	})
	return a, nil
}

// openCooldownStore prefers Redis and falls back to process memory.
func openCooldownStore(ctx context.Context, cfg *config.Config) (ratelimit.Store, string, func()) {
	ttl := time.Duration(cfg.Session.MaxAgeSecs) * time.Second

	client, err := redis.Connect(ctx, redis.Config{URL: cfg.Redis.URL, Password: cfg.Redis.Password})
	if err == nil {
		logger.Log.Info("Cooldowns stored in Redis")
		return ratelimit.NewRedisStore(client, ttl), "redis", func() { _ = client.Close() }
	}
	if !errors.Is(err, redis.ErrNotConfigured) {
		logger.Log.Warn("Redis unavailable, falling back to in-memory cooldowns", "error", err)
	}

	sweepCtx, cancel := context.WithCancel(context.Background())
	return ratelimit.NewMemoryStore(sweepCtx, ttl), "memory", cancel
}

func openSubscriberRepository(ctx context.Context, cfg *config.Config) (domain.SubscriberRepository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if cfg.Database.URL == "" {
			return nil, nil, errors.New("DB_URL is not set")
		}
		pool, err := database.NewPostgresConnection(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSubscriberRepository(pool, cfg.Newsletter.Table), pool.Close, nil
	case config.DriverSQLite:
		db, err := database.NewSQLiteConnection(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return sqliterepo.NewSubscriberRepository(db, cfg.Newsletter.Table), closeDB, nil
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
	}
}
