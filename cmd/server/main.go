package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/train-ticket-booking/internal/booking"
	"github.com/iliyamo/train-ticket-booking/internal/config"
	"github.com/iliyamo/train-ticket-booking/internal/database"
	"github.com/iliyamo/train-ticket-booking/internal/handler"
	"github.com/iliyamo/train-ticket-booking/internal/middleware"
	"github.com/iliyamo/train-ticket-booking/internal/queue"
	"github.com/iliyamo/train-ticket-booking/internal/repository"
	"github.com/iliyamo/train-ticket-booking/internal/router"
	"github.com/iliyamo/train-ticket-booking/internal/seating"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	var events booking.EventPublisher
	if cfg.EventsEnabled {
		async := queue.NewAsyncPublisher(queue.NewPublisher(cfg.AMQPURL), 256, 5*time.Second)
		defer async.Close()
		events = async
		go func() {
			if err := queue.StartTicketConsumer(ctx, cfg.AMQPURL, cfg.EventLogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("ticket-consumer: stopped: %v", err)
			}
		}()
	}

	seats := seating.NewAllocator(cfg.SeatsPerSection)
	svc := booking.NewService(seats, store, events)
	restored, err := svc.Restore(ctx)
	if err != nil {
		log.Fatalf("restore seat occupancy: %v", err)
	}
	log.Printf("seats: %d of %d occupied after restore", restored, seats.Capacity())

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()
	purge := func(ctx context.Context) error { return middleware.PurgeCache(ctx, rdb, cacheCfg.Prefix) }

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("http: %s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	router.RegisterRoutes(e)
	router.RegisterTickets(e, handler.NewTicketHandler(svc, purge), router.Options{
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     cacheCfg,
		JWTSecret: cfg.JWTSecret,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.TicketStore)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openStore returns the ticket store selected by cfg and a function that
// releases it.
func openStore(ctx context.Context, cfg config.Config) (booking.TicketStore, func()) {
	if cfg.TicketStore == config.StoreMemory {
		return repository.NewMemoryTicketRepo(), func() {}
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database: migrate: %v", err)
	}
	return repository.NewTicketRepo(db), func() { _ = db.Close() }
}
