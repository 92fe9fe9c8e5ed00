package model

import (
	"strings"
	"time"

	apperrors "wellness-events/pkg/app_errors"

	"github.com/google/uuid"
)

// EventDuration is the fixed length assumed for every event; no end time is stored.
const EventDuration = time.Hour

type Event struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Price       Price     `json:"price"`
	Image       *string   `json:"image,omitempty"`
	WhatToBring []string  `json:"what_to_bring"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateEventParams carries a partial update; nil fields are left untouched.
// An empty Image clears the stored image.
type UpdateEventParams struct {
	Title       *string
	Date        *time.Time
	Description *string
	Category    *Category
	Price       *Price
	Image       *string
	WhatToBring *[]string
}

func (p UpdateEventParams) IsEmpty() bool {
	return p.Title == nil && p.Date == nil && p.Description == nil && p.Category == nil &&
		p.Price == nil && p.Image == nil && p.WhatToBring == nil
}

// ListEventsFilter narrows List. Zero value returns every event.
type ListEventsFilter struct {
	Category *Category
	Limit    int
}

// EndDate is Date plus the fixed event duration.
func (e *Event) EndDate() time.Time {
	return e.Date.Add(EventDuration)
}

func (e *Event) ImageOrPlaceholder(placeholder string) string {
	if e.Image == nil || *e.Image == "" {
		return placeholder
	}
	return *e.Image
}

// Validate checks the invariants every stored event must hold.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return apperrors.ErrInvalidInput
	}
	if e.Date.IsZero() {
		return apperrors.ErrInvalidDate
	}
	if !e.Category.IsValid() {
		return apperrors.ErrInvalidCategory
	}
	return e.Price.Validate()
}

var eventDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseEventDate accepts RFC 3339 or a naive local timestamp such as
// "2024-06-01T18:00", which is read in loc. The result is truncated to the minute.
func ParseEventDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Truncate(time.Minute), nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Truncate(time.Minute), nil
		}
	}
	return time.Time{}, apperrors.ErrInvalidDate
}

// NormalizeWhatToBring trims items, drops blanks and repeats. Never returns nil.
func NormalizeWhatToBring(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
