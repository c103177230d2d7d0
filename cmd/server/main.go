package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/router"
	"github.com/iliyamo/restaurant-table-reservation/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	loc := cfg.Location()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	// Redis is optional: without it the availability cache and the rate
	// limiter are simply skipped.
	rdb := config.NewRedisClient()

	accounts := repository.NewAccountRepo(db)
	tables := repository.NewTableRepo(db)
	reservations := repository.NewReservationRepo(db)

	window := service.ServiceWindow{
		Open:     cfg.WindowOpen,
		Close:    cfg.WindowClose,
		SlotSize: time.Duration(cfg.SlotMinutes) * time.Minute,
		Location: loc,
	}
	resolver := service.NewPartyResolver(accounts)
	conflicts := service.NewConflictChecker(reservations)
	engine := service.NewAvailabilityEngine(tables, conflicts, window)
	lifecycle := service.NewReservationService(
		resolver, conflicts, accounts, tables, reservations, window, &queue.Notifier{})

	authH := handler.NewAuthHandler(cfg, accounts)
	availH := handler.NewAvailabilityHandler(engine, loc)
	resH := handler.NewReservationHandler(lifecycle)
	mgrH := handler.NewManagerHandler(lifecycle, tables, loc)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, availH, resH, rdb)
	router.RegisterCustomer(e, resH, cfg.JWTSecret)
	router.RegisterManager(e, mgrH, cfg.JWTSecret)

	// Confirmation events are drained into logs/ by a background consumer.
	go func() {
		if err := queue.StartConfirmationConsumer(); err != nil {
			log.Printf("confirmation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.Timezone)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
