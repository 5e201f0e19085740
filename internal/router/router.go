package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/train-ticket-booking/internal/config"
	"github.com/iliyamo/train-ticket-booking/internal/handler"
	"github.com/iliyamo/train-ticket-booking/internal/middleware"
	"github.com/iliyamo/train-ticket-booking/internal/utils"
)

// RegisterRoutes registers routes that need no dependencies.  Currently it
// exposes only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// Options carries the optional infrastructure the ticket routes use.  A
// nil Redis client disables caching and rate limiting; an empty JWTSecret
// leaves the seat chart public.
type Options struct {
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
	JWTSecret string
}

// RegisterTickets registers the ticket API under /v1/tickets.
//
//	POST   /v1/tickets/purchase
//	GET    /v1/tickets/receipt/:pnr
//	GET    /v1/tickets/availability
//	GET    /v1/tickets/seatchart             (operator only when JWT is on)
//	GET    /v1/tickets/seatchart/:section    (operator only when JWT is on)
//	DELETE /v1/tickets/remove/:pnr
//	PUT    /v1/tickets/modify/:pnr
func RegisterTickets(e *echo.Echo, h *handler.TicketHandler, opts Options) {
	cache := middleware.ResponseCache(opts.Cache, opts.Redis)

	g := e.Group("/v1/tickets", middleware.RateLimit(opts.RateLimit, opts.Redis))
	g.POST("/purchase", h.Purchase)
	g.GET("/receipt/:pnr", h.Receipt, cache)
	g.GET("/availability", h.Availability, cache)
	g.DELETE("/remove/:pnr", h.Remove)
	g.PUT("/modify/:pnr", h.ModifySeat)

	chart := g.Group("/seatchart",
		middleware.JWTAuth(opts.JWTSecret),
		middleware.RequireRole(opts.JWTSecret != "", utils.RoleOperator),
	)
	chart.GET("", h.SeatChart, cache)
	chart.GET("/:section", h.SeatChartBySection, cache)
}
