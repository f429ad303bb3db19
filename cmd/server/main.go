package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"

	"rideshare/internal/app"
	"rideshare/internal/config"
	"rideshare/internal/handler"
	internalRedis "rideshare/internal/redis"
	"rideshare/internal/repository"
	"rideshare/internal/repository/memory"
	"rideshare/internal/repository/postgres"
	"rideshare/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	repos, closeRepos, err := newRepositories(ctx, cfg, nrApp)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	defer closeRepos()

	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	// Wire dependencies.
	server := wireServer(repos, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// repositories groups the persistence layer behind one struct so main can
// swap backends by configuration.
type repositories struct {
	users          repository.UserRepository
	drivers        repository.DriverRepository
	rides          repository.RideRepository
	payments       repository.PaymentRepository
	paymentMethods repository.PaymentMethodRepository
}

// newRepositories builds the configured storage backend. The memory backend
// seeds a small driver fleet for development.
func newRepositories(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application) (*repositories, func(), error) {
	if cfg.Storage.Driver == "memory" {
		driverRepo := memory.NewDriverRepository()
		if err := memory.SeedDrivers(ctx, driverRepo); err != nil {
			return nil, nil, err
		}
		log.Println("Using in-memory storage with seeded drivers")
		return &repositories{
			users:          memory.NewUserRepository(),
			drivers:        driverRepo,
			rides:          memory.NewRideRepository(),
			payments:       memory.NewPaymentRepository(),
			paymentMethods: memory.NewPaymentMethodRepository(),
		}, func() {}, nil
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		return nil, nil, err
	}
	log.Println("Connected to PostgreSQL")
	return &repositories{
		users:          postgres.NewUserRepository(db),
		drivers:        postgres.NewDriverRepository(db),
		rides:          postgres.NewRideRepository(db),
		payments:       postgres.NewPaymentRepository(db),
		paymentMethods: postgres.NewPaymentMethodRepository(db),
	}, func() { db.Close() }, nil
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(repos *repositories, redisClient *goredis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Redis-backed stores are optional; without them locking, caching, and
	// nearest matching degrade gracefully.
	var (
		locationStore internalRedis.LocationStoreInterface
		lockStore     internalRedis.LockStoreInterface
		cacheStore    *internalRedis.CacheStore
	)
	if redisClient != nil {
		locationStore = internalRedis.NewLocationStore(redisClient)
		lockStore = internalRedis.NewLockStore(redisClient)
		cacheStore = internalRedis.NewCacheStore(redisClient)
	}

	var matcher service.DriverMatcher
	if cfg.Matching.Strategy == "nearest" && locationStore != nil {
		matcher = service.NewNearestMatcher(locationStore, repos.drivers, cfg.Matching.RadiusKm)
	} else {
		matcher = service.NewRandomMatcher(repos.drivers)
	}

	// Initialize services.
	notificationService := service.NewNotificationService()
	rideService := service.NewRideService(repos.rides, repos.drivers, matcher, lockStore, cacheStore, notificationService, cfg.Rating.PriorWeight)
	driverService := service.NewDriverService(repos.drivers, locationStore, cacheStore)
	psp := service.NewMockPSP()
	paymentService := service.NewPaymentService(repos.payments, repos.paymentMethods, repos.rides, psp, notificationService, lockStore)
	authService := service.NewAuthService(repos.users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	locationService := service.NewLocationService()

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	rideHandler := handler.NewRideHandler(rideService)
	driverHandler := handler.NewDriverHandler(driverService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	locationHandler := handler.NewLocationHandler(locationService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:     authHandler,
		RideHandler:     rideHandler,
		DriverHandler:   driverHandler,
		PaymentHandler:  paymentHandler,
		LocationHandler: locationHandler,
		TokenVerifier:   authService,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
