package repository_test

import (
	"context"
	"testing"
	"time"

	"wellness-events/config"
	"wellness-events/internal/database"
	"wellness-events/internal/model"
	"wellness-events/internal/repository"
	"wellness-events/internal/testutil"
	apperrors "wellness-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPostgres connects to the test database on :5433, applies migrations
// and empties the events table. Tests are skipped when it is not running.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres tests disabled in -short mode")
	}

	cfg := config.LoadTestConfig()
	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(&cfg.Database))

	// Clear rows between tests but keep the schema.
	_, err = pool.Exec(context.Background(), "TRUNCATE events")
	require.NoError(t, err)
	return pool
}

func TestEventRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(setupPostgres(t))

	soundBath := testutil.NewEvent("Sound Bath", 14)
	soundBath.Category = model.CategorySoundHealing
	soundBath.WhatToBring = []string{"Blanket"}
	price, err := model.ParsePrice("30")
	require.NoError(t, err)
	soundBath.Price = price

	created, err := repo.Create(ctx, soundBath)
	require.NoError(t, err)
	_, err = repo.Create(ctx, testutil.NewEvent("Sunrise Yoga", 2))
	require.NoError(t, err)

	t.Run("FindByID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "30", found.Price.String())
		assert.Equal(t, []string{"Blanket"}, found.WhatToBring)
		assert.True(t, found.Date.Equal(soundBath.Date))
	})

	t.Run("List ascending", func(t *testing.T) {
		events, err := repo.List(ctx, model.ListEventsFilter{})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Sunrise Yoga", events[0].Title)
	})

	t.Run("Update", func(t *testing.T) {
		date := time.Date(2024, time.August, 1, 19, 30, 0, 0, time.UTC)
		got, err := repo.Update(ctx, created.ID, model.UpdateEventParams{Date: &date})
		require.NoError(t, err)
		assert.True(t, got.Date.Equal(date))
		assert.Equal(t, "Sound Bath", got.Title)
	})

	t.Run("Update unknown id", func(t *testing.T) {
		title := "Nope"
		_, err := repo.Update(ctx, uuid.New(), model.UpdateEventParams{Title: &title})
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), apperrors.ErrEventNotFound)
	})
}
