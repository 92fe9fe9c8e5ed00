package handler

import (
	"context"
	"net/http"
	"time"

	"wellness-events/internal/service"
	"wellness-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	service service.EventService
}

func NewHealthHandler(service service.EventService) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ping", h.Ping)
}

func (h *HealthHandler) Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		logger.WithComponent("handler").Warn("store unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "pong", "store": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pong", "store": "ok"})
}
