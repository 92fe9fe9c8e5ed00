package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"wellness-events/internal/model"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrStaleList is returned by Set when a write invalidated the lists after
	// the caller took its generation; the list is not cached.
	ErrStaleList = errors.New("list generation changed")
)

type EventListCache interface {
	// Generation returns the current list generation; take it before reading the store and pass it to Set.
	Generation(ctx context.Context) (int64, error)
	// Get returns the cached list for filter, or ErrCacheMiss.
	Get(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error)
	// Set caches events only if no Invalidate happened since generation was read.
	Set(ctx context.Context, filter model.ListEventsFilter, generation int64, events []*model.Event) error
	// Invalidate bumps the generation and drops every cached list.
	Invalidate(ctx context.Context) error
}

const (
	listIndexKey      = "events:list:keys"
	listGenerationKey = "events:list:gen"
)

type RedisEventListCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventListCache(client *redis.Client, ttl time.Duration) EventListCache {
	return &RedisEventListCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

// getListKey builds the key for one filter.
func (c *RedisEventListCacheImpl) getListKey(filter model.ListEventsFilter) string {
	category := "all"
	if filter.Category != nil {
		category = string(*filter.Category)
	}
	return fmt.Sprintf("events:list:%s:%d", category, filter.Limit)
}

func (c *RedisEventListCacheImpl) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, listGenerationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *RedisEventListCacheImpl) Get(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error) {
	raw, err := c.client.Get(ctx, c.getListKey(filter)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	events := make([]*model.Event, 0)
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("invalid cached list: %v", err)
	}
	return events, nil
}

/*
	Write a list only while the generation is unchanged (Lua keeps check and write atomic)
	1. compare the current generation with the one the caller read
	2. write the list with its TTL
	3. record the key in the index so Invalidate can find it
*/
const setListScript = `
	local current = redis.call('GET', KEYS[1]) or '0'
	if current ~= ARGV[1] then
		return 0
	end
	local ttl = tonumber(ARGV[3])
	if ttl > 0 then
		redis.call('SET', KEYS[2], ARGV[2], 'PX', ttl)
	else
		redis.call('SET', KEYS[2], ARGV[2])
	end
	redis.call('SADD', KEYS[3], KEYS[2])
	return 1
`

func (c *RedisEventListCacheImpl) Set(ctx context.Context, filter model.ListEventsFilter, generation int64, events []*model.Event) error {
	if events == nil {
		events = []*model.Event{}
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}

	written, err := c.client.Eval(ctx, setListScript,
		[]string{listGenerationKey, c.getListKey(filter), listIndexKey},
		strconv.FormatInt(generation, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return err
	}
	if written == 0 {
		return ErrStaleList
	}
	return nil
}

/*
	Drop every cached list (Lua keeps it atomic)
	1. bump the generation so in-flight Set calls are rejected
	2. delete every key listed in the index
	3. delete the index itself
*/
const invalidateScript = `
	redis.call('INCR', KEYS[2])
	local keys = redis.call('SMEMBERS', KEYS[1])
	for _, k in ipairs(keys) do
		redis.call('DEL', k)
	end
	redis.call('DEL', KEYS[1])
	return #keys
`

func (c *RedisEventListCacheImpl) Invalidate(ctx context.Context) error {
	return c.client.Eval(ctx, invalidateScript, []string{listIndexKey, listGenerationKey}).Err()
}

// NoopEventListCache is used when Redis is disabled; every read misses.
type NoopEventListCache struct{}

func NewNoopEventListCache() EventListCache {
	return NoopEventListCache{}
}

func (NoopEventListCache) Generation(context.Context) (int64, error) {
	return 0, nil
}

func (NoopEventListCache) Get(context.Context, model.ListEventsFilter) ([]*model.Event, error) {
	return nil, ErrCacheMiss
}

func (NoopEventListCache) Set(context.Context, model.ListEventsFilter, int64, []*model.Event) error {
	return nil
}

func (NoopEventListCache) Invalidate(context.Context) error {
	return nil
}
