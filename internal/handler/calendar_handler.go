package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wellness-events/internal/calendar"
	"wellness-events/internal/model"
	"wellness-events/internal/service"
	apperrors "wellness-events/pkg/app_errors"
	"wellness-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	service   service.EventService
	exporter  calendar.Exporter
	location  *time.Location
	publicURL string
}

func NewCalendarHandler(service service.EventService, exporter calendar.Exporter, location *time.Location, publicURL string) *CalendarHandler {
	if location == nil {
		location = time.UTC
	}
	return &CalendarHandler{service: service, exporter: exporter, location: location, publicURL: publicURL}
}

func (h *CalendarHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events/:id/calendar.ics", h.ExportByID)
		router.POST("calendar/export", h.Export)
	}
}

// ExportEventRequest is an event held by the caller; it is exported without touching the store.
type ExportEventRequest struct {
	ID uuid.UUID `json:"id"`
	CreateEventRequest
}

func (h *CalendarHandler) ExportByID(c *gin.Context) {
	id, ok := BindEventID(c)
	if !ok {
		return
	}
	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, "ExportByID")
		return
	}
	h.send(c, event, "ExportByID")
}

func (h *CalendarHandler) Export(c *gin.Context) {
	var req ExportEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event, err := req.ToEvent(h.location)
	if err != nil {
		handleError(c, err, "Export")
		return
	}
	event.ID = req.ID
	event.WhatToBring = model.NormalizeWhatToBring(event.WhatToBring)
	h.send(c, event, "Export")
}

// pageURL is the page the export was triggered from, or the public events page.
func (h *CalendarHandler) pageURL(c *gin.Context) string {
	if ref := c.GetHeader("Referer"); ref != "" {
		return ref
	}
	if h.publicURL == "" {
		return ""
	}
	return h.publicURL + "/events"
}

// send writes nothing until the file is fully serialized, so a failure never
// leaves a partial download behind.
func (h *CalendarHandler) send(c *gin.Context, event *model.Event, operation string) {
	file, err := h.exporter.Export(event, h.pageURL(c))
	if err != nil {
		handleError(c, err, operation)
		return
	}

	c.Header("Content-Type", file.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Header("Content-Length", strconv.Itoa(len(file.Data)))
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(file.Data); err != nil {
		logger.WithComponent("handler").Error("calendar download interrupted",
			zap.String("operation", operation),
			zap.String("file", file.Name),
			zap.Error(fmt.Errorf("%w: %w", apperrors.ErrDownloadFailed, err)))
	}
}
