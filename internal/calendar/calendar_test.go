package calendar_test

import (
	"strings"
	"testing"
	"time"

	"wellness-events/internal/calendar"
	"wellness-events/internal/model"
	apperrors "wellness-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sunsetYoga(t *testing.T) *model.Event {
	t.Helper()
	price, err := model.ParsePrice("25")
	require.NoError(t, err)
	created := time.Date(2024, time.May, 20, 9, 30, 0, 0, time.UTC)
	return &model.Event{
		ID:          uuid.MustParse("5f0c2a52-3a9b-4d5e-9b1f-2d7c8e6a1b34"),
		Title:       "Sunset Yoga",
		Date:        time.Date(2024, time.June, 1, 18, 0, 0, 0, time.UTC),
		Description: "Flow into the evening.",
		Category:    model.CategoryYoga,
		Price:       price,
		WhatToBring: []string{"Yoga mat", "Water bottle"},
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestDescription(t *testing.T) {
	t.Run("Priced with items", func(t *testing.T) {
		got := calendar.Description(sunsetYoga(t))
		assert.Equal(t, "Flow into the evening.\n\nPrice: €25\n\nWhat to bring:\n• Yoga mat\n• Water bottle", got)
	})

	t.Run("Free without items", func(t *testing.T) {
		event := sunsetYoga(t)
		event.Price = model.Free
		event.WhatToBring = nil
		got := calendar.Description(event)
		assert.Equal(t, "Flow into the evening.\n\nFree event\n\nWhat to bring: Just yourself and an open mind!", got)
	})
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "sunset_yoga.ics", calendar.Filename("Sunset Yoga"))
	assert.Equal(t, "tai_chi___qi_gong_.ics", calendar.Filename("Tai Chi & Qi Gong!"))
	assert.Equal(t, "caf__night.ics", calendar.Filename("Café Night"))
}

func TestGenerator_Generate(t *testing.T) {
	gen := calendar.NewGenerator(calendar.Options{})
	event := sunsetYoga(t)

	data, err := gen.Generate(event, "https://studio.example.com/events")
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "VERSION:2.0")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "UID:5f0c2a52-3a9b-4d5e-9b1f-2d7c8e6a1b34@yogastudio.com")
	assert.Contains(t, out, "SUMMARY:Sunset Yoga")
	assert.Contains(t, out, "DTSTART:20240601T180000")
	assert.Contains(t, out, "DTEND:20240601T190000")
	assert.Contains(t, out, "LOCATION:Main Studio")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.Contains(t, out, "TRANSP:OPAQUE")
	assert.Contains(t, out, "X-MICROSOFT-CDO-BUSYSTATUS:BUSY")
	assert.Contains(t, out, "CATEGORIES:Yoga")
	assert.Contains(t, out, "mailto:info@yogastudio.com")
	assert.Contains(t, out, "END:VCALENDAR")
}

func TestGenerator_VenueTimezone(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	gen := calendar.NewGenerator(calendar.Options{Location: madrid, Venue: "Rooftop"})

	event := sunsetYoga(t)
	event.Date = time.Date(2024, time.June, 1, 16, 0, 0, 0, time.UTC)

	start, end, err := gen.Span(event)
	require.NoError(t, err)
	assert.Equal(t, 18, start.Hour())
	assert.Equal(t, time.Hour, end.Sub(start))

	data, err := gen.Generate(event, "")
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTSTART:20240601T180000")
	assert.Contains(t, string(data), "LOCATION:Rooftop")
}

func TestGenerator_Deterministic(t *testing.T) {
	gen := calendar.NewGenerator(calendar.DefaultOptions())
	event := sunsetYoga(t)

	first, err := gen.Generate(event, "https://studio.example.com/events")
	require.NoError(t, err)
	second, err := gen.Generate(event, "https://studio.example.com/events")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerator_Export(t *testing.T) {
	gen := calendar.NewGenerator(calendar.Options{})

	t.Run("Success", func(t *testing.T) {
		file, err := gen.Export(sunsetYoga(t), "")
		require.NoError(t, err)
		assert.Equal(t, "sunset_yoga.ics", file.Name)
		assert.Equal(t, calendar.ContentType, file.ContentType)
		assert.NotEmpty(t, file.Data)
	})

	t.Run("Failed - missing date", func(t *testing.T) {
		event := sunsetYoga(t)
		event.Date = time.Time{}
		file, err := gen.Export(event, "")
		assert.Nil(t, file)
		assert.ErrorIs(t, err, apperrors.ErrSerializationFailed)
	})

	t.Run("Failed - end past year 9999", func(t *testing.T) {
		event := sunsetYoga(t)
		event.Date = time.Date(9999, time.December, 31, 23, 30, 0, 0, time.UTC)
		_, err := gen.Export(event, "")
		assert.ErrorIs(t, err, apperrors.ErrSerializationFailed)
	})
}
