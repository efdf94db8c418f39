// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/advotec/advotec-api/internal/account"
	"github.com/advotec/advotec-api/internal/admin"
	"github.com/advotec/advotec-api/internal/appointment"
	"github.com/advotec/advotec-api/internal/audit"
	"github.com/advotec/advotec-api/internal/auth"
	"github.com/advotec/advotec-api/internal/casefile"
	"github.com/advotec/advotec-api/internal/client"
	"github.com/advotec/advotec-api/internal/config"
	"github.com/advotec/advotec-api/internal/core"
	"github.com/advotec/advotec-api/internal/dashboard"
	"github.com/advotec/advotec-api/internal/health"
	"github.com/advotec/advotec-api/internal/metrics"
	"github.com/advotec/advotec-api/internal/middleware"
	"github.com/advotec/advotec-api/internal/progress"
	"github.com/advotec/advotec-api/internal/server"
)

const (
	drainDelay = 5 * time.Second

	loginRequests = 10
	loginBurst    = 5
	loginWindow   = time.Minute
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(logger); err != nil {
			return err
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB.DB, "postgres"),
	)
	m := metrics.New(registry, cfg.Metrics.Prefix)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}

	svc := newServices(cfg, db, redis, jwtManager, m, logger)

	if cfg.Bootstrap.MasterEmail != "" {
		if err := svc.accounts.EnsureMaster(
			ctx,
			cfg.Bootstrap.MasterName,
			cfg.Bootstrap.MasterEmail,
			cfg.Bootstrap.MasterPassword,
		); err != nil {
			return err
		}
		logger.Info("master account ensured", "email", cfg.Bootstrap.MasterEmail)
	}

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()
	useMiddleware(router, cfg, redis, m, logger)
	healthHandler.RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, m.Handler())
	}
	mountRoutes(router, svc, db, redis, m)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// services is the object graph behind the HTTP handlers.
type services struct {
	audit        audit.Repository
	accounts     *account.Service
	auth         *auth.Service
	clients      *client.Service
	caseFiles    *casefile.Service
	progress     *progress.Service
	appointments *appointment.Service
	dashboard    *dashboard.Service
}

func newServices(
	cfg *config.Config,
	db *core.Database,
	redis *core.Redis,
	jwtManager *auth.JWTManager,
	m *metrics.Metrics,
	logger *slog.Logger,
) *services {
	auditRepo := audit.NewRepository(db.DB)
	recorder := audit.NewRecorder(auditRepo, logger, m)

	accounts := account.NewService(account.NewRepository(db.DB), recorder)
	caseFileRepo := casefile.NewRepository(db.DB)
	clients := client.NewService(client.NewRepository(db.DB), caseFileRepo, recorder)

	return &services{
		audit:    auditRepo,
		accounts: accounts,
		auth: auth.NewService(auth.ServiceConfig{
			JWT:               jwtManager,
			Users:             accounts,
			Blacklist:         auth.NewRedisBlacklist(redis.Client),
			Auditor:           recorder,
			AllowRegistration: cfg.Auth.AllowRegistration,
		}),
		clients:      clients,
		caseFiles:    casefile.NewService(caseFileRepo, clients, recorder),
		progress:     progress.NewService(progress.NewRepository(db.DB), recorder),
		appointments: appointment.NewService(appointment.NewRepository(db.DB), recorder),
		dashboard:    dashboard.NewService(dashboard.NewRepository(db.DB)),
	}
}

func useMiddleware(
	router chi.Router,
	cfg *config.Config,
	redis *core.Redis,
	m *metrics.Metrics,
	logger *slog.Logger,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Name: "global",
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
			Metrics:  m,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
}

func mountRoutes(
	router chi.Router,
	svc *services,
	db *core.Database,
	redis *core.Redis,
	m *metrics.Metrics,
) {
	authenticator := middleware.Authenticator(svc.auth, svc.accounts, m)
	masterOnly := middleware.RequireMaster
	loginLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Name:     "login",
		Limit:    middleware.PerWindow(loginRequests, loginBurst, loginWindow),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
		Metrics:  m,
	}).Handler

	auth.NewHandler(svc.auth).RegisterRoutes(router, authenticator, loginLimiter)
	account.NewHandler(svc.accounts).RegisterRoutes(router, authenticator, masterOnly)
	client.NewHandler(svc.clients).RegisterRoutes(router, authenticator)
	casefile.NewHandler(svc.caseFiles).RegisterRoutes(router, authenticator)
	progress.NewHandler(svc.progress).RegisterRoutes(router, authenticator)
	appointment.NewHandler(svc.appointments).RegisterRoutes(router, authenticator)
	dashboard.NewHandler(svc.dashboard).RegisterRoutes(router, authenticator)
	audit.NewHandler(svc.audit).RegisterRoutes(router, authenticator, masterOnly)

	admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Records:    admin.NewRepository(db.DB),
	}).RegisterRoutes(router, authenticator, masterOnly)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
