package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wellness-events/internal/cache"
	cacheMocks "wellness-events/internal/cache/mocks"
	"wellness-events/internal/model"
	repoMocks "wellness-events/internal/repository/mocks"
	"wellness-events/internal/service"
	"wellness-events/internal/testutil"
	apperrors "wellness-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEventServiceMocks(t *testing.T) (*repoMocks.MockEventRepository, *cacheMocks.MockEventListCache) {
	return repoMocks.NewMockEventRepository(t), cacheMocks.NewMockEventListCache(t)
}

func TestEventService_List(t *testing.T) {
	ctx := context.Background()
	filter := model.ListEventsFilter{}
	events := []*model.Event{testutil.NewEvent("Morning Flow", 1)}

	t.Run("Success - cache hit skips the store", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		listCache.EXPECT().Generation(ctx).Return(int64(3), nil).Once()
		listCache.EXPECT().Get(ctx, filter).Return(events, nil).Once()

		got, err := svc.List(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, events, got)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("Success - cache miss reads through", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		listCache.EXPECT().Generation(ctx).Return(int64(3), nil).Once()
		listCache.EXPECT().Get(ctx, filter).Return(nil, cache.ErrCacheMiss).Once()
		repo.EXPECT().List(ctx, filter).Return(events, nil).Once()
		listCache.EXPECT().Set(ctx, filter, int64(3), events).Return(nil).Once()

		got, err := svc.List(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, events, got)
	})

	t.Run("Success - cache errors are not fatal", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		listCache.EXPECT().Generation(ctx).Return(int64(3), nil).Once()
		listCache.EXPECT().Get(ctx, filter).Return(nil, errors.New("redis down")).Once()
		repo.EXPECT().List(ctx, filter).Return(events, nil).Once()
		listCache.EXPECT().Set(ctx, filter, int64(3), events).Return(errors.New("redis down")).Once()

		got, err := svc.List(ctx, filter)

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("Success - generation is taken before the store read", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		var order []string
		listCache.EXPECT().Generation(ctx).Run(func(context.Context) { order = append(order, "generation") }).
			Return(int64(8), nil).Once()
		listCache.EXPECT().Get(ctx, filter).Return(nil, cache.ErrCacheMiss).Once()
		repo.EXPECT().List(ctx, filter).Run(func(context.Context, model.ListEventsFilter) { order = append(order, "store") }).
			Return(events, nil).Once()
		listCache.EXPECT().Set(ctx, filter, int64(8), events).Return(cache.ErrStaleList).Once()

		got, err := svc.List(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, events, got)
		assert.Equal(t, []string{"generation", "store"}, order)
	})

	t.Run("Success - generation unavailable skips the cache", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		listCache.EXPECT().Generation(ctx).Return(int64(0), errors.New("redis down")).Once()
		repo.EXPECT().List(ctx, filter).Return(events, nil).Once()

		got, err := svc.List(ctx, filter)

		require.NoError(t, err)
		assert.Len(t, got, 1)
		listCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		listCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - store error", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		listCache.EXPECT().Generation(ctx).Return(int64(3), nil).Once()
		listCache.EXPECT().Get(ctx, filter).Return(nil, cache.ErrCacheMiss).Once()
		repo.EXPECT().List(ctx, filter).Return(nil, errors.New("connection refused")).Once()

		got, err := svc.List(ctx, filter)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrFetchFailed)
		assert.Contains(t, err.Error(), "connection refused")
		listCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - invalid category", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		bad := model.Category("Boxing")
		_, err := svc.List(ctx, model.ListEventsFilter{Category: &bad})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
	})
}

func TestEventService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		event := testutil.NewEvent("Sound Bath", 3)
		event.ID = id
		repo.EXPECT().FindByID(ctx, id).Return(event, nil).Once()

		got, err := svc.GetByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("Failed - not found", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		repo.EXPECT().FindByID(ctx, id).Return(nil, apperrors.ErrEventNotFound).Once()

		_, err := svc.GetByID(ctx, id)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assert.ErrorIs(t, err, apperrors.ErrFetchFailed)
	})
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - normalizes and invalidates", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		event := testutil.NewEvent("  Breathwork Basics  ", 5)
		event.WhatToBring = []string{"Cushion", " ", "Cushion"}

		repo.EXPECT().Create(ctx, mock.MatchedBy(func(e *model.Event) bool {
			return e.Title == "Breathwork Basics" && len(e.WhatToBring) == 1
		})).RunAndReturn(func(_ context.Context, e *model.Event) (*model.Event, error) {
			out := *e
			out.ID = uuid.New()
			return &out, nil
		}).Once()
		listCache.EXPECT().Invalidate(ctx).Return(nil).Once()

		created, err := svc.Create(ctx, event)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, []string{"Cushion"}, created.WhatToBring)
	})

	t.Run("Failed - validation never reaches the store", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		event := testutil.NewEvent("Tai Chi", 5)
		event.Price = model.Price{}

		_, err := svc.Create(ctx, event)

		assert.ErrorIs(t, err, apperrors.ErrCreateFailed)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		listCache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("Failed - store error", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		repo.EXPECT().Create(ctx, mock.Anything).Return(nil, errors.New("constraint violation")).Once()

		_, err := svc.Create(ctx, testutil.NewEvent("Reiki", 6))

		assert.ErrorIs(t, err, apperrors.ErrCreateFailed)
		listCache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		title := " Evening Reiki "
		updated := testutil.NewEvent("Evening Reiki", 7)
		updated.ID = id

		repo.EXPECT().Update(ctx, id, mock.MatchedBy(func(p model.UpdateEventParams) bool {
			return p.Title != nil && *p.Title == "Evening Reiki"
		})).Return(updated, nil).Once()
		listCache.EXPECT().Invalidate(ctx).Return(nil).Once()

		got, err := svc.Update(ctx, id, model.UpdateEventParams{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "Evening Reiki", got.Title)
	})

	t.Run("Failed - empty update", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		_, err := svc.Update(ctx, id, model.UpdateEventParams{})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.ErrorIs(t, err, apperrors.ErrUpdateFailed)
	})

	t.Run("Failed - blank title", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		blank := "   "
		_, err := svc.Update(ctx, id, model.UpdateEventParams{Title: &blank})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - not found", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		desc := "new"
		repo.EXPECT().Update(ctx, id, mock.Anything).Return(nil, apperrors.ErrEventNotFound).Once()

		_, err := svc.Update(ctx, id, model.UpdateEventParams{Description: &desc})

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		listCache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		repo.EXPECT().Delete(ctx, id).Return(nil).Once()
		listCache.EXPECT().Invalidate(ctx).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, id))
	})

	t.Run("Failed - not found", func(t *testing.T) {
		repo, listCache := setupEventServiceMocks(t)
		svc := service.NewEventService(repo, listCache)

		repo.EXPECT().Delete(ctx, id).Return(apperrors.ErrEventNotFound).Once()

		err := svc.Delete(ctx, id)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assert.ErrorIs(t, err, apperrors.ErrDeleteFailed)
	})
}

// Runs the service against the embedded store end to end.
func TestEventService_WithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	repo, _ := testutil.SetupSQLite(t)
	svc := service.NewEventService(repo, nil)

	late, err := svc.Create(ctx, testutil.NewEvent("Full Moon Meditation", 20))
	require.NoError(t, err)
	early, err := svc.Create(ctx, testutil.NewEvent("Sunrise Yoga", 2))
	require.NoError(t, err)

	pilates := testutil.NewEvent("Core Pilates", 10)
	pilates.Category = model.CategoryPilates
	pilates.WhatToBring = []string{"Towel"}
	_, err = svc.Create(ctx, pilates)
	require.NoError(t, err)

	t.Run("List is ordered by date", func(t *testing.T) {
		events, err := svc.List(ctx, model.ListEventsFilter{})
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, early.ID, events[0].ID)
		assert.Equal(t, late.ID, events[2].ID)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].Date.Before(events[i-1].Date))
		}
	})

	t.Run("List by category", func(t *testing.T) {
		c := model.CategoryPilates
		events, err := svc.List(ctx, model.ListEventsFilter{Category: &c})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Core Pilates", events[0].Title)
		assert.Equal(t, []string{"Towel"}, events[0].WhatToBring)
	})

	t.Run("Update keeps untouched fields", func(t *testing.T) {
		price, err := model.ParsePrice("15")
		require.NoError(t, err)
		got, err := svc.Update(ctx, early.ID, model.UpdateEventParams{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, "15", got.Price.String())
		assert.Equal(t, "Sunrise Yoga", got.Title)
		assert.True(t, got.Date.Equal(early.Date))
		assert.False(t, got.UpdatedAt.Before(early.UpdatedAt))
	})

	t.Run("Delete then get", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, late.ID))
		_, err := svc.GetByID(ctx, late.ID)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, late.ID), apperrors.ErrEventNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		assert.NoError(t, svc.Ping(ctx))
	})
}
