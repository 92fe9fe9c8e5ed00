package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"wellness-events/config"
	"wellness-events/internal/cache"
	"wellness-events/internal/calendar"
	"wellness-events/internal/database"
	"wellness-events/internal/handler"
	"wellness-events/internal/middleware"
	"wellness-events/internal/repository"
	"wellness-events/internal/service"
	"wellness-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.LogLevel)
	defer logger.Sync()
	log := logger.WithComponent("main")

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := initStore(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize event store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closeStore()

	listCache := cache.NewNoopEventListCache()
	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()
		listCache = cache.NewRedisEventListCache(rdb, cfg.Redis.ListTTL)
		log.Info("event list cache enabled", zap.Duration("ttl", cfg.Redis.ListTTL))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	limiter.StartSweeper(ctx.Done())

	generator := calendar.NewGenerator(calendar.Options{
		Location:       cfg.Calendar.VenueLocation(),
		Venue:          cfg.Calendar.Location,
		OrganizerName:  cfg.Calendar.OrganizerName,
		OrganizerEmail: cfg.Calendar.OrganizerEmail,
		UIDDomain:      cfg.Calendar.UIDDomain,
	})

	router := handler.NewRouter(handler.RouterDeps{
		Config:   cfg,
		Events:   service.NewEventService(repo, listCache),
		Exporter: generator,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// initStore opens the configured backend and returns the repository with its closer.
func initStore(ctx context.Context, cfg *config.DatabaseConfig) (repository.EventRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := database.InitSQLite(cfg)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewEventRepositoryBun(db)
		if err := repo.CreateSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil

	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := database.Migrate(cfg); err != nil {
				return nil, nil, err
			}
		}
		pool, err := database.InitDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewEventRepository(pool), pool.Close, nil
	}
	return nil, nil, errors.New("unknown STORE_DRIVER " + cfg.Driver)
}
