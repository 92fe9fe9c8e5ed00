package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wellness-events/internal/model"
	"wellness-events/internal/service"
	apperrors "wellness-events/pkg/app_errors"
	"wellness-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service          service.EventService
	location         *time.Location
	placeholderImage string
}

func NewEventHandler(service service.EventService, location *time.Location, placeholderImage string) *EventHandler {
	if location == nil {
		location = time.UTC
	}
	return &EventHandler{service: service, location: location, placeholderImage: placeholderImage}
}

// RegisterRoutes mounts the public reads and, behind admin, the writes.
func (h *EventHandler) RegisterRoutes(r *gin.Engine, admin ...gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/:id", h.GetByID)
		router.GET("categories", h.Categories)
	}

	protected := r.Group("/api/v1", admin...)
	{
		protected.POST("events", h.Create)
		protected.PUT("events/:id", h.Update)
		protected.DELETE("events/:id", h.Delete)
	}
}

// PriceInput is "free", a decimal string, or a bare JSON number.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = PriceInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return apperrors.ErrInvalidPrice
	}
	*p = PriceInput(n.String())
	return nil
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Date        string     `json:"date" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category" binding:"required"`
	Price       PriceInput `json:"price" binding:"required"`
	Image       *string    `json:"image"`
	WhatToBring []string   `json:"what_to_bring"`
}

// UpdateEventRequest only touches the fields present in the body.
type UpdateEventRequest struct {
	Title       *string     `json:"title"`
	Date        *string     `json:"date"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Price       *PriceInput `json:"price"`
	Image       *string     `json:"image"`
	WhatToBring *[]string   `json:"what_to_bring"`
}

type ListEventsQuery struct {
	Category string `form:"category"`
	Limit    int    `form:"limit" binding:"omitempty,min=0,max=100"`
}

// EventResponse always carries an image, falling back to the placeholder.
type EventResponse struct {
	*model.Event
	Image string `json:"image"`
}

func (h *EventHandler) toResponse(event *model.Event) EventResponse {
	return EventResponse{Event: event, Image: event.ImageOrPlaceholder(h.placeholderImage)}
}

func (h *EventHandler) toResponses(events []*model.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, h.toResponse(e))
	}
	return out
}

// ToEvent converts the request into a model, validating category, price and date.
func (req *CreateEventRequest) ToEvent(loc *time.Location) (*model.Event, error) {
	date, err := model.ParseEventDate(req.Date, loc)
	if err != nil {
		return nil, err
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	price, err := model.ParsePrice(string(req.Price))
	if err != nil {
		return nil, err
	}
	return &model.Event{
		Title:       req.Title,
		Date:        date,
		Description: req.Description,
		Category:    category,
		Price:       price,
		Image:       req.Image,
		WhatToBring: req.WhatToBring,
	}, nil
}

func (req *UpdateEventRequest) ToParams(loc *time.Location) (model.UpdateEventParams, error) {
	params := model.UpdateEventParams{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		WhatToBring: req.WhatToBring,
	}
	if req.Date != nil {
		date, err := model.ParseEventDate(*req.Date, loc)
		if err != nil {
			return params, err
		}
		params.Date = &date
	}
	if req.Category != nil {
		category, err := model.ParseCategory(*req.Category)
		if err != nil {
			return params, err
		}
		params.Category = &category
	}
	if req.Price != nil {
		price, err := model.ParsePrice(string(*req.Price))
		if err != nil {
			return params, err
		}
		params.Price = &price
	}
	return params, nil
}

func (h *EventHandler) List(c *gin.Context) {
	var q ListEventsQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	filter := model.ListEventsFilter{Limit: q.Limit}
	if q.Category != "" && q.Category != "All" {
		category, err := model.ParseCategory(q.Category)
		if err != nil {
			h.handleError(c, err, "List")
			return
		}
		filter.Category = &category
	}

	events, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, h.toResponses(events))
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := BindEventID(c)
	if !ok {
		return
	}
	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(event))
}

func (h *EventHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, model.Categories)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event, err := req.ToEvent(h.location)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	created, err := h.service.Create(c.Request.Context(), event)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(created))
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := BindEventID(c)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params, err := req.ToParams(h.location)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	if params.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field is required"})
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, params)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(updated))
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := BindEventID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	handleError(c, err, operation)
}

// handleError maps service errors to a status and a human readable message.
// Validation and not-found are checked before the failure kinds they may be wrapped in.
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrInvalidCategory):
		log.Warn("Invalid category")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
	case errors.Is(err, apperrors.ErrInvalidPrice):
		log.Warn("Invalid price")
		c.JSON(http.StatusBadRequest, gin.H{"error": `Price must be "free" or a non-negative amount with at most two decimals`})
	case errors.Is(err, apperrors.ErrInvalidDate):
		log.Warn("Invalid date")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, apperrors.ErrFetchFailed):
		log.Error("Fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
	case errors.Is(err, apperrors.ErrCreateFailed):
		log.Error("Create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
	case errors.Is(err, apperrors.ErrUpdateFailed):
		log.Error("Update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
	case errors.Is(err, apperrors.ErrDeleteFailed):
		log.Error("Delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
	case errors.Is(err, apperrors.ErrSerializationFailed):
		log.Error("Calendar serialization failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate calendar file"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
