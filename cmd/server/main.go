package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"zonedispatch/internal/config"
	"zonedispatch/internal/domain"
	"zonedispatch/internal/metrics"
	"zonedispatch/internal/repositories/mongodb"
	"zonedispatch/internal/services"
	"zonedispatch/pkg/cache"
	"zonedispatch/pkg/database"
	"zonedispatch/pkg/logger"
	"zonedispatch/pkg/maps"
	"zonedispatch/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
		Caller:     cfg.Log.Caller,
		Colors:     cfg.Log.Colors,
		AppName:    cfg.App.Name,
		Version:    cfg.App.Version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		log.Debug(".env file not found, using process environment")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		if err := database.NewMigrator(db.Database, log).Up(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	healthChecks := map[string]routes.HealthCheck{
		"mongodb": func() error { return db.Ping(context.Background()) },
	}

	var zoneCache cache.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			KeyPrefix:    cfg.Redis.KeyPrefix,
		})
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, zone cache disabled")
		} else {
			defer redisCache.Close()
			zoneCache = redisCache
			healthChecks["redis"] = func() error { return redisCache.Ping(context.Background()) }
		}
	}

	distance, err := newDistanceProvider(cfg.Maps, log)
	if err != nil {
		return err
	}

	collector, err := metrics.NewZoneCollector(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	zoneService := services.NewZoneService(services.ZoneServiceConfig{
		ZoneRepository:       mongodb.NewZoneRepository(db.Database),
		AssignmentRepository: mongodb.NewZoneAssignmentRepository(db.Database),
		Engine:               domain.NewZoneDomainService(cfg.Zone.Policy()),
		DistanceProvider:     distance,
		Cache:                zoneCache,
		CacheTTL:             cfg.Zone.CacheTTL,
		Metrics:              collector,
		Logger:               log,
	})

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.NewRouter(routes.RouterConfig{
		ZoneService:    zoneService,
		Logger:         log,
		Metrics:        collector,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		HealthChecks:   healthChecks,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newDistanceProvider prefers Google road distance when a key is configured
// and always falls back to straight-line distance.
func newDistanceProvider(cfg *config.MapsConfig, log *logger.Logger) (maps.DistanceProvider, error) {
	haversine := maps.NewHaversineProvider()
	if cfg.Provider != "google" {
		return haversine, nil
	}
	if cfg.GoogleMaps.APIKey == "" {
		log.Warn("MAPS_PROVIDER=google without GOOGLE_MAPS_API_KEY, using straight-line distance")
		return haversine, nil
	}

	google, err := maps.NewGoogleMapsProvider(cfg.GoogleMaps.APIKey, cfg.GoogleMaps.Mode, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return maps.NewFallbackProvider(google, haversine), nil
}
