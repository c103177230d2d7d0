package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring systems to verify the service
	// is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes and the /v1/me profile
// endpoint. Login lives under /v1/auth and requires no session; /v1/me sits
// behind the JWT middleware and accepts any known role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleCustomer, model.RoleManager))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated endpoints: availability
// queries and reservation creation. Availability responses are served from
// the Redis cache when one is configured; reservation creation is guarded by
// the token-bucket rate limiter so walk-in guests cannot flood the book.
func RegisterPublic(e *echo.Echo, avail *handler.AvailabilityHandler, res *handler.ReservationHandler, rdb *redis.Client) {
	cacheCfg := config.LoadCacheConfig()
	limitCfg := config.LoadRateLimitConfig()

	g := e.Group("/v1")
	if rdb != nil && cacheCfg.Enabled {
		g.Use(middleware.NewRedisCache(cacheCfg, rdb))
	}
	if rdb != nil && limitCfg.Enabled {
		g.Use(middleware.NewTokenBucket(limitCfg, rdb))
	}

	// Full-day slot grid and the single-instant table query.
	g.GET("/availability", avail.Slots)
	g.GET("/availability/tables", avail.Tables)

	// Reservation requests are open to guests: the body carries either an
	// account id or a guest contact tuple.
	g.POST("/reservations", res.Create)
}

// RegisterCustomer registers the customer-facing reservation endpoints.
// Managers may use them too, for example to look up a booking on a
// customer's behalf.
func RegisterCustomer(e *echo.Echo, res *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCustomer, model.RoleManager))

	g.GET("/reservations/:id", res.Get)
	g.GET("/my-reservations", res.ListMine)
	g.DELETE("/reservations/:id", res.Cancel)
}

// RegisterManager registers the staff endpoints: reservation listings with
// status and date filters, the decision and visit transitions, the
// administrative delete and the table catalog view. All routes require the
// MANAGER role.
func RegisterManager(e *echo.Echo, m *handler.ManagerHandler, jwtSecret string) {
	g := e.Group("/v1/manager")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleManager))

	g.GET("/reservations", m.List)
	g.GET("/reservations/:id", m.Get)
	g.POST("/reservations/:id/approve", m.Approve)
	g.POST("/reservations/:id/deny", m.Deny)
	g.POST("/reservations/:id/seat", m.Seat)
	g.POST("/reservations/:id/complete", m.Complete)
	g.POST("/reservations/:id/no-show", m.NoShow)
	g.DELETE("/reservations/:id", m.Delete)

	g.GET("/tables", m.ListTables)
}
