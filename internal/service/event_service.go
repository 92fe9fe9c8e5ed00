package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wellness-events/internal/cache"
	"wellness-events/internal/model"
	"wellness-events/internal/repository"
	apperrors "wellness-events/pkg/app_errors"
	"wellness-events/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	// List returns events ordered by date ascending; an empty list is not an error.
	List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

type EventServiceImpl struct {
	repo      repository.EventRepository
	listCache cache.EventListCache
	log       *zap.Logger
}

func NewEventService(repo repository.EventRepository, listCache cache.EventListCache) EventService {
	if listCache == nil {
		listCache = cache.NewNoopEventListCache()
	}
	return &EventServiceImpl{
		repo:      repo,
		listCache: listCache,
		log:       logger.WithComponent("service"),
	}
}

// storeFailure tags err with the operation's failure kind; both stay matchable with errors.Is.
func storeFailure(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}

func (s *EventServiceImpl) List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if filter.Limit < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// the generation is read before the store so a write landing in between
	// makes the later Set a no-op instead of caching a stale list
	generation, genErr := s.listCache.Generation(ctx)
	if genErr != nil {
		s.log.Warn("event list cache generation read failed", zap.Error(genErr))
	} else {
		events, err := s.listCache.Get(ctx, filter)
		if err == nil {
			return events, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("event list cache read failed", zap.Error(err))
		}
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("fetch events", zap.Error(err))
		return nil, storeFailure(apperrors.ErrFetchFailed, err)
	}

	if genErr == nil {
		if err := s.listCache.Set(ctx, filter, generation, events); err != nil {
			if errors.Is(err, cache.ErrStaleList) {
				s.log.Debug("event list changed while reading, not cached")
			} else {
				s.log.Warn("event list cache write failed", zap.Error(err))
			}
		}
	}
	return events, nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			s.log.Error("fetch event", zap.String("event_id", id.String()), zap.Error(err))
		}
		return nil, storeFailure(apperrors.ErrFetchFailed, err)
	}
	return event, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	event.Title = strings.TrimSpace(event.Title)
	event.WhatToBring = model.NormalizeWhatToBring(event.WhatToBring)
	if err := event.Validate(); err != nil {
		return nil, storeFailure(apperrors.ErrCreateFailed, err)
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		s.log.Error("create event", zap.String("title", event.Title), zap.Error(err))
		return nil, storeFailure(apperrors.ErrCreateFailed, err)
	}

	s.invalidate(ctx)
	s.log.Info("event created", zap.String("event_id", created.ID.String()))
	return created, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	if err := normalizeUpdate(&params); err != nil {
		return nil, storeFailure(apperrors.ErrUpdateFailed, err)
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			s.log.Error("update event", zap.String("event_id", id.String()), zap.Error(err))
		}
		return nil, storeFailure(apperrors.ErrUpdateFailed, err)
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			s.log.Error("delete event", zap.String("event_id", id.String()), zap.Error(err))
		}
		return storeFailure(apperrors.ErrDeleteFailed, err)
	}

	s.invalidate(ctx)
	s.log.Info("event deleted", zap.String("event_id", id.String()))
	return nil
}

func (s *EventServiceImpl) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *EventServiceImpl) invalidate(ctx context.Context) {
	if err := s.listCache.Invalidate(ctx); err != nil {
		s.log.Warn("event list cache invalidation failed", zap.Error(err))
	}
}

// normalizeUpdate validates every field present in params.
func normalizeUpdate(params *model.UpdateEventParams) error {
	if params.IsEmpty() {
		return apperrors.ErrInvalidInput
	}
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return apperrors.ErrInvalidInput
		}
		params.Title = &title
	}
	if params.Date != nil && params.Date.IsZero() {
		return apperrors.ErrInvalidDate
	}
	if params.Category != nil && !params.Category.IsValid() {
		return apperrors.ErrInvalidCategory
	}
	if params.Price != nil {
		if err := params.Price.Validate(); err != nil {
			return err
		}
	}
	if params.WhatToBring != nil {
		items := model.NormalizeWhatToBring(*params.WhatToBring)
		params.WhatToBring = &items
	}
	return nil
}
