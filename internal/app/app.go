package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turn_queue/internal/auth"
	"turn_queue/internal/cache"
	"turn_queue/internal/clock"
	"turn_queue/internal/config"
	"turn_queue/internal/handlers"
	"turn_queue/internal/notify"
	"turn_queue/internal/rollover"
	"turn_queue/internal/storage"
	"turn_queue/internal/turns"
	"turn_queue/internal/windows"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the wired services. The HTTP server and scheduler are only
// started by Run; turnctl builds an App and calls the services directly.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	redis  *redis.Client
	hub    *notify.Hub

	Windows  *windows.Manager
	Turns    *turns.Service
	Rollover *rollover.Coordinator
	guard    rollover.Guard
}

// NewApp connects storage and builds the services. A nil publisher means
// events go to the websocket hub.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, pub notify.Publisher) (*App, error) {
	db, err := storage.ConnectDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		return nil, err
	}

	rdb, err := storage.InitRedis(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("redis init failed: %w", err)
	}

	a := &App{cfg: cfg, logger: logger, db: db, redis: rdb}

	clk := clock.Real()
	var (
		cacher cache.Cacher
		guard  rollover.Guard
	)
	if rdb != nil {
		logger.Info("redis connected", zap.String("addr", cfg.RedisAddr))
		cacher = cache.NewRedisCache(rdb, "turns:")
		guard = rollover.NewRedisGuard(rdb, "turns:")
	} else {
		logger.Warn("REDIS_ADDR not set, using in-process cache and cooldown")
		cacher = cache.NewMemoryCache(clk)
		guard = rollover.NewMemoryGuard(clk)
	}
	a.guard = guard

	if pub == nil {
		a.hub = notify.NewHub(logger.Named("hub"))
		pub = a.hub
	}

	locks := storage.NewKeyLock()
	a.Windows = windows.NewManager(db, windows.Options{
		Locks:     locks,
		Clock:     clk,
		Location:  cfg.Location,
		Publisher: pub,
		Cache:     cacher,
		CacheTTL:  cfg.OverviewCacheTTL,
		Logger:    logger.Named("windows"),
	})
	a.Turns = turns.NewService(db, a.Windows, turns.Options{
		Locks:        locks,
		Clock:        clk,
		Location:     cfg.Location,
		StartDefault: cfg.StartNumberDefault,
		Publisher:    pub,
		Logger:       logger.Named("turns"),
	})
	a.Rollover = rollover.NewCoordinator(db, rollover.Options{
		Locks:         locks,
		Clock:         clk,
		Location:      cfg.Location,
		StartDefault:  cfg.StartNumberDefault,
		RetentionDays: cfg.FactRetentionDays,
		Confirmation:  cfg.ResetConfirmation,
		Publisher:     pub,
		Overview:      a.Windows,
		Logger:        logger.Named("rollover"),
	})
	return a, nil
}

// Run serves HTTP and runs the daily scheduler until SIGINT or SIGTERM.
func (a *App) Run() error {
	a.logger.Info("application starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.hub != nil {
		go a.hub.Run(ctx)
	}

	scheduler, err := rollover.NewScheduler(a.Rollover, a.guard, a.cfg.DailyResetAt, a.cfg.Location, a.cfg.RolloverCooldown, a.logger.Named("scheduler"))
	if err != nil {
		return err
	}
	scheduler.Start(ctx)

	h := &handlers.Handler{
		Turns:    a.Turns,
		Windows:  a.Windows,
		Rollover: a.Rollover,
		Logger:   a.logger.Named("http"),
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTPPort),
		Handler:           handlers.NewRouter(h, a.hub, auth.AuthMiddleware([]byte(a.cfg.JWTAccessSecret))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		a.logger.Error("http server failed", zap.Error(err))
	}

	a.logger.Info("application shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
	cancel()
	return a.Close()
}

// Close releases the database and redis connections.
func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis shutdown error", zap.Error(err))
		}
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}
	_ = a.logger.Sync()
	return nil
}
