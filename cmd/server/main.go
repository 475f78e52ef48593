package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/config"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/database"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/handler"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/middleware"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/queue"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/repository"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/router"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/service"
)

const serviceName = "tablebooking"

func main() {
	cfg := config.Load()
	lg := logger.NewLogger(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	if len(applied) > 0 {
		lg.Info("db_migrate", "", "migrations applied", slog.Any("files", applied))
	}
	seeded, err := database.Seed(ctx, db)
	if err != nil {
		log.Fatalf("db seed: %v", err)
	}
	if seeded {
		lg.Info("db_seed", "", "sample restaurants inserted")
	}

	policy, err := service.NewCapacityPolicy(cfg.CapacityPolicy, cfg.SeatsPerTable)
	if err != nil {
		log.Fatalf("capacity policy: %v", err)
	}

	publisher, err := queue.NewPublisher(cfg.EventsBackend, cfg.RabbitMQURL, cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	defer publisher.Close()
	if cfg.EventsBackend == "rabbitmq" {
		consumer := queue.NewBookingLogConsumer(cfg.RabbitMQURL, filepath.Join("logs", "booking.log"), lg)
		go func() { _ = consumer.Run(ctx) }()
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		lg.Warn("redis_connect", "", "redis unreachable, cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	restaurantRepo := repository.NewRestaurantRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	slotRepo := repository.NewSlotRepo(db)

	querySvc := service.NewQueryService(restaurantRepo, bookingRepo, cfg.RequestTimeout)
	availabilitySvc := service.NewAvailabilityService(restaurantRepo, bookingRepo, policy, cfg.RequestTimeout)
	bookingSvc := service.NewBookingService(db, restaurantRepo, bookingRepo, slotRepo, policy, publisher, lg,
		service.BookingOptions{Timeout: cfg.RequestTimeout, MaxRetries: cfg.BookingMaxRetries})

	e := router.New(router.Deps{
		Restaurants:  handler.NewRestaurantHandler(querySvc, lg),
		Availability: handler.NewAvailabilityHandler(availabilitySvc, lg),
		Bookings:     handler.NewBookingHandler(bookingSvc, querySvc, cfg.PublicBaseURL, lg),
		DB:           db,
		Session: middleware.SessionConfig{
			Secret:     cfg.SessionSecret,
			CookieName: cfg.SessionCookie,
			TTL:        cfg.SessionTTL,
			Secure:     cfg.Env == "prod",
		},
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb, lg),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, lg),
		PublicDir: cfg.PublicDir,
		Log:       lg,
	})

	anyOrigin := len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*"
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Cache", "Retry-After"},
		AllowCredentials: !anyOrigin, // session cookie crosses origins only for listed origins
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(e),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		lg.Info("server_start", "", "listening", slog.String("addr", srv.Addr), slog.String("env", cfg.Env),
			slog.String("capacity_policy", policy.Name()), slog.String("events_backend", cfg.EventsBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	lg.Info("server_stop", "", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server_stop", "", "graceful shutdown failed", err)
	}
}
