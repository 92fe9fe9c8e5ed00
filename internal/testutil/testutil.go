package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wellness-events/config"
	"wellness-events/internal/database"
	"wellness-events/internal/model"
	"wellness-events/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// SetupSQLite opens a private in-memory store with the schema in place.
// The database disappears when the test finishes.
func SetupSQLite(t *testing.T) (*repository.EventRepositoryBun, *bun.DB) {
	t.Helper()

	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewEventRepositoryBun(db)
	require.NoError(t, repo.CreateSchema(context.Background()))
	return repo, db
}

// SetupRedisOnly connects to the test Redis only, for cache tests that need no database.
func SetupRedisOnly() (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig()
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %v", err)
	}
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %v", err)
	}
	cleanup := func() { rdb.Close() }
	return rdb, cleanup, nil
}

// NewEvent returns a valid, unsaved event on the given day at 18:00 UTC.
func NewEvent(title string, day int) *model.Event {
	return &model.Event{
		Title:       title,
		Date:        time.Date(2024, time.June, day, 18, 0, 0, 0, time.UTC),
		Description: "A calm evening session.",
		Category:    model.CategoryYoga,
		Price:       model.Free,
		WhatToBring: []string{},
	}
}
