package handler

import (
	"wellness-events/config"
	"wellness-events/internal/calendar"
	"wellness-events/internal/middleware"
	"wellness-events/internal/service"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Config   *config.Config
	Events   service.EventService
	Exporter calendar.Exporter
	Limiter  *middleware.RateLimiter
}

// NewRouter wires every handler; writes go through rate limiting and the admin gate.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	loc := deps.Config.Calendar.VenueLocation()

	admin := []gin.HandlerFunc{
		middleware.RequireAdmin(deps.Config.Auth.JWTSecret, deps.Config.Auth.AdminEmails),
	}
	if deps.Limiter != nil {
		admin = append([]gin.HandlerFunc{middleware.RateLimit(deps.Limiter)}, admin...)
	}

	NewHealthHandler(deps.Events).RegisterRoutes(router)
	NewEventHandler(deps.Events, loc, deps.Config.Server.PlaceholderImage).RegisterRoutes(router, admin...)
	NewCalendarHandler(deps.Events, deps.Exporter, loc, deps.Config.Server.PublicURL).RegisterRoutes(router)

	return router
}
