package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wellness-events/internal/model"
	apperrors "wellness-events/pkg/app_errors"
	"wellness-events/pkg/logger"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// eventRow is the embedded-store layout. what_to_bring is kept as a JSON array
// because sqlite has no array type.
type eventRow struct {
	bun.BaseModel `bun:"table:events"`

	ID          string    `bun:"id,pk"`
	Title       string    `bun:"title,notnull"`
	Date        time.Time `bun:"date,notnull"`
	Description string    `bun:"description,notnull"`
	Category    string    `bun:"category,notnull"`
	Price       string    `bun:"price,notnull"`
	Image       *string   `bun:"image"`
	WhatToBring string    `bun:"what_to_bring,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (row *eventRow) toModel() (*model.Event, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: stored id %q: %w", errUndecodableRow, row.ID, err)
	}
	event := &model.Event{
		ID:          id,
		Title:       row.Title,
		Date:        row.Date.UTC(),
		Description: row.Description,
		Image:       row.Image,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if row.WhatToBring != "" {
		if err := json.Unmarshal([]byte(row.WhatToBring), &event.WhatToBring); err != nil {
			return nil, fmt.Errorf("%w: event %s: stored what_to_bring: %w", errUndecodableRow, row.ID, err)
		}
	}
	return decodeStored(event, row.Category, row.Price)
}

func encodeItems(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// storedNow matches the microsecond precision sqlite keeps for timestamps.
func storedNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type EventRepositoryBun struct {
	db  *bun.DB
	log *zap.Logger
}

// NewEventRepositoryBun returns a store over any bun database; the schema is
// created on first use with CreateSchema.
func NewEventRepositoryBun(db *bun.DB) *EventRepositoryBun {
	return &EventRepositoryBun{db: db, log: logger.WithComponent("repository")}
}

func (r *EventRepositoryBun) CreateSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*eventRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	_, err := r.db.NewCreateIndex().
		Model((*eventRow)(nil)).
		Index("idx_events_date").
		Column("date").
		IfNotExists().
		Exec(ctx)
	return err
}

func (r *EventRepositoryBun) List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error) {
	var rows []eventRow
	q := r.db.NewSelect().Model(&rows).OrderExpr("date ASC")
	if filter.Category != nil {
		q = q.Where("category = ?", string(*filter.Category))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	events := make([]*model.Event, 0, len(rows))
	for i := range rows {
		event, err := rows[i].toModel()
		if err != nil {
			r.log.Warn("skipping stored event", zap.Error(err))
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *EventRepositoryBun) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var row eventRow
	err := r.db.NewSelect().Model(&row).Where("id = ?", id.String()).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return row.toModel()
}

func (r *EventRepositoryBun) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	items, err := encodeItems(event.WhatToBring)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	now := storedNow()
	row := &eventRow{
		ID:          id.String(),
		Title:       event.Title,
		Date:        event.Date.UTC(),
		Description: event.Description,
		Category:    string(event.Category),
		Price:       event.Price.String(),
		Image:       nullableString(event.Image),
		WhatToBring: items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *EventRepositoryBun) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}

	q := r.db.NewUpdate().Model((*eventRow)(nil)).Where("id = ?", id.String())
	if params.Title != nil {
		q = q.Set("title = ?", *params.Title)
	}
	if params.Date != nil {
		q = q.Set("date = ?", params.Date.UTC())
	}
	if params.Description != nil {
		q = q.Set("description = ?", *params.Description)
	}
	if params.Category != nil {
		q = q.Set("category = ?", string(*params.Category))
	}
	if params.Price != nil {
		q = q.Set("price = ?", params.Price.String())
	}
	if params.Image != nil {
		q = q.Set("image = ?", nullableString(params.Image))
	}
	if params.WhatToBring != nil {
		items, err := encodeItems(*params.WhatToBring)
		if err != nil {
			return nil, err
		}
		q = q.Set("what_to_bring = ?", items)
	}
	q = q.Set("updated_at = ?", storedNow())

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperrors.ErrEventNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *EventRepositoryBun) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().Model((*eventRow)(nil)).Where("id = ?", id.String()).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryBun) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
