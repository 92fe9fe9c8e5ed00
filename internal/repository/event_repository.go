package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellness-events/internal/model"
	apperrors "wellness-events/pkg/app_errors"
	"wellness-events/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// errUndecodableRow marks a stored row whose columns no longer map onto an
// Event. List skips such rows; FindByID reports them.
var errUndecodableRow = errors.New("undecodable stored row")

type EventRepository interface {
	List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
		log:  logger.WithComponent("repository"),
	}
}

const eventColumns = `id, title, date, description, category, price, image, what_to_bring, created_at, updated_at`

// scanEvent reads one row selected with eventColumns.
func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		event    model.Event
		category string
		price    string
	)
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Date,
		&event.Description,
		&category,
		&price,
		&event.Image,
		&event.WhatToBring,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return decodeStored(&event, category, price)
}

// decodeStored attaches the typed category and price. Rows written around the
// API may hold values outside the enumeration; those are surfaced as-is for
// category and rejected for price.
func decodeStored(event *model.Event, category, price string) (*model.Event, error) {
	event.Category = model.Category(category)
	p, err := model.ParsePrice(price)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s: stored price %q: %w", errUndecodableRow, event.ID, price, err)
	}
	event.Price = p
	if event.WhatToBring == nil {
		event.WhatToBring = []string{}
	}
	return event, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []interface{}{}

	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		query += fmt.Sprintf(" WHERE category = $%d", len(args))
	}
	query += " ORDER BY date ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if errors.Is(err, errUndecodableRow) {
			r.log.Warn("skipping stored event", zap.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (title, date, description, category, price, image, what_to_bring)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	whatToBring := event.WhatToBring
	if whatToBring == nil {
		whatToBring = []string{}
	}

	return scanEvent(r.pool.QueryRow(ctx, query,
		event.Title,
		event.Date.UTC(),
		event.Description,
		string(event.Category),
		event.Price.String(),
		nullableString(event.Image),
		whatToBring,
	))
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Date != nil {
		add("date", params.Date.UTC())
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Category != nil {
		add("category", string(*params.Category))
	}
	if params.Price != nil {
		add("price", params.Price.String())
	}
	if params.Image != nil {
		add("image", nullableString(params.Image))
	}
	if params.WhatToBring != nil {
		items := *params.WhatToBring
		if items == nil {
			items = []string{}
		}
		add("what_to_bring", items)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// nullableString maps nil and "" to SQL NULL.
func nullableString(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
