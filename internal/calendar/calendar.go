// Package calendar turns a single event into an iCalendar (.ics) file.
//
// The output is deterministic for a given event: DTSTAMP is taken from the
// event's own timestamps, so exporting twice yields identical bytes apart from
// the URL property, which reflects the page the export was requested from.
package calendar

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"wellness-events/internal/model"
	apperrors "wellness-events/pkg/app_errors"

	ics "github.com/arran4/golang-ical"
)

const (
	ContentType = "text/calendar; charset=utf-8"
	FileExt     = ".ics"

	// floating local date-time, minute precision
	localTimeLayout = "20060102T150405"

	busyStatusProperty = "X-MICROSOFT-CDO-BUSYSTATUS"
	transpProperty     = "TRANSP"
)

type Options struct {
	// Location is the venue timezone; DTSTART/DTEND are written as local times there.
	Location       *time.Location
	Venue          string
	OrganizerName  string
	OrganizerEmail string
	UIDDomain      string
	ProductID      string
}

func DefaultOptions() Options {
	return Options{
		Location:       time.UTC,
		Venue:          "Main Studio",
		OrganizerName:  "Yoga Wellness Studio",
		OrganizerEmail: "info@yogastudio.com",
		UIDDomain:      "yogastudio.com",
		ProductID:      "-//Yoga Wellness Studio//Events//EN",
	}
}

// File is a serialized calendar ready to be sent as a download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Exporter interface {
	Export(event *model.Event, pageURL string) (*File, error)
}

type Generator struct {
	opts Options
}

func NewGenerator(opts Options) *Generator {
	def := DefaultOptions()
	if opts.Location == nil {
		opts.Location = def.Location
	}
	if opts.Venue == "" {
		opts.Venue = def.Venue
	}
	if opts.OrganizerName == "" {
		opts.OrganizerName = def.OrganizerName
	}
	if opts.OrganizerEmail == "" {
		opts.OrganizerEmail = def.OrganizerEmail
	}
	if opts.UIDDomain == "" {
		opts.UIDDomain = def.UIDDomain
	}
	if opts.ProductID == "" {
		opts.ProductID = def.ProductID
	}
	return &Generator{opts: opts}
}

// Description composes the free text, the price line and the bring list.
func Description(event *model.Event) string {
	var b strings.Builder
	b.WriteString(event.Description)
	b.WriteString("\n\n")
	b.WriteString(event.Price.Label())

	if len(event.WhatToBring) > 0 {
		b.WriteString("\n\nWhat to bring:")
		for _, item := range event.WhatToBring {
			b.WriteString("\n• ")
			b.WriteString(item)
		}
	} else {
		b.WriteString("\n\nWhat to bring: Just yourself and an open mind!")
	}
	return b.String()
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename derives a filesystem-safe name: every non-alphanumeric character becomes '_'.
func Filename(title string) string {
	return strings.ToLower(unsafeFilenameChars.ReplaceAllString(title, "_")) + FileExt
}

// Span returns the local start and end (start + one hour), truncated to the minute.
func (g *Generator) Span(event *model.Event) (time.Time, time.Time, error) {
	if event.Date.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: event has no date", apperrors.ErrSerializationFailed)
	}
	start := event.Date.In(g.opts.Location).Truncate(time.Minute)
	end := start.Add(model.EventDuration)
	for _, t := range []time.Time{start, end} {
		if t.Year() < 1 || t.Year() > 9999 {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: year %d out of range", apperrors.ErrSerializationFailed, t.Year())
		}
	}
	return start, end, nil
}

func (g *Generator) Build(event *model.Event, pageURL string) (*ics.Calendar, error) {
	start, end, err := g.Span(event)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(g.opts.ProductID)

	ve := cal.AddEvent(fmt.Sprintf("%s@%s", event.ID, g.opts.UIDDomain))
	ve.SetDtStampTime(stampOf(event, start))
	ve.SetSummary(event.Title)
	ve.SetDescription(Description(event))
	ve.SetProperty(ics.ComponentPropertyDtStart, start.Format(localTimeLayout))
	ve.SetProperty(ics.ComponentPropertyDtEnd, end.Format(localTimeLayout))
	ve.SetLocation(g.opts.Venue)
	ve.SetOrganizer("mailto:"+g.opts.OrganizerEmail, ics.WithCN(g.opts.OrganizerName))
	ve.SetStatus(ics.ObjectStatusConfirmed)
	ve.SetProperty(ics.ComponentProperty(busyStatusProperty), "BUSY")
	ve.SetProperty(ics.ComponentProperty(transpProperty), "OPAQUE")
	ve.SetProperty(ics.ComponentPropertyCategories, string(event.Category))
	if pageURL != "" {
		ve.SetURL(pageURL)
	}
	return cal, nil
}

// Generate serializes the event into iCalendar text.
func (g *Generator) Generate(event *model.Event, pageURL string) ([]byte, error) {
	cal, err := g.Build(event, pageURL)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSerializationFailed, err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) Export(event *model.Event, pageURL string) (*File, error) {
	data, err := g.Generate(event, pageURL)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        Filename(event.Title),
		ContentType: ContentType,
		Data:        data,
	}, nil
}

// stampOf picks a timestamp owned by the event so repeated exports match.
func stampOf(event *model.Event, start time.Time) time.Time {
	switch {
	case !event.UpdatedAt.IsZero():
		return event.UpdatedAt.UTC()
	case !event.CreatedAt.IsZero():
		return event.CreatedAt.UTC()
	}
	return start.UTC()
}
