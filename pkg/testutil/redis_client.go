package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type MockRedisClient struct {
	ExistFunc               func(ctx context.Context, key string) (bool, error)
	DelFunc                 func(ctx context.Context, key ...string) error
	KeysFunc                func(ctx context.Context, pattern string) ([]string, error)
	ZAddFunc                func(ctx context.Context, key string, z redis.Z) error
	ZIncrByFunc             func(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRankFunc            func(ctx context.Context, key string, member string) (uint64, error)
	SetFunc                 func(ctx context.Context, key, value string) error
	SetObjFunc              func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetFunc                 func(ctx context.Context, key string) (string, error)
	GetObjFunc              func(ctx context.Context, key string, v any) error
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	if m.KeysFunc != nil {
		return m.KeysFunc(ctx, pattern)
	}

	return nil, nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	if m.ZAddFunc != nil {
		return m.ZAddFunc(ctx, key, z)
	}

	return nil
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if m.ZIncrByFunc != nil {
		return m.ZIncrByFunc(ctx, key, incr, member)
	}

	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc != nil {
		return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	return nil, nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	if m.ZRevRankFunc != nil {
		return m.ZRevRankFunc(ctx, key, member)
	}

	return 0, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}

	return nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return errors.New("not found")
}

// InMemoryRedisClient covers key existence, sorted sets and plain values with
// a process-local map. Enough behavior for cache tests without a server.
type InMemoryRedisClient struct {
	Values  map[string]string
	Sorteds map[string][]redis.Z
}

func NewInMemoryRedisClient() *InMemoryRedisClient {
	return &InMemoryRedisClient{
		Values:  map[string]string{},
		Sorteds: map[string][]redis.Z{},
	}
}

func (c *InMemoryRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if _, ok := c.Values[key]; ok {
		return true, nil
	}

	_, ok := c.Sorteds[key]
	return ok, nil
}

func (c *InMemoryRedisClient) Del(ctx context.Context, key ...string) error {
	for _, k := range key {
		delete(c.Values, k)
		delete(c.Sorteds, k)
	}

	return nil
}

func (c *InMemoryRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := []string{}
	for k := range c.Values {
		keys = append(keys, k)
	}
	for k := range c.Sorteds {
		keys = append(keys, k)
	}

	return keys, nil
}

func (c *InMemoryRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	for i := range c.Sorteds[key] {
		if c.Sorteds[key][i].Member == z.Member {
			c.Sorteds[key][i].Score = z.Score
			return nil
		}
	}

	c.Sorteds[key] = append(c.Sorteds[key], z)
	return nil
}

func (c *InMemoryRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	for i := range c.Sorteds[key] {
		if c.Sorteds[key][i].Member == member {
			c.Sorteds[key][i].Score += float64(incr)
			return nil
		}
	}

	c.Sorteds[key] = append(c.Sorteds[key], redis.Z{Member: member, Score: float64(incr)})
	return nil
}

func (c *InMemoryRedisClient) ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
	sorted := append([]redis.Z{}, c.Sorteds[key]...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Score > sorted[i].Score {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	if offset >= len(sorted) {
		return []redis.Z{}, nil
	}

	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	return sorted[offset:end], nil
}

func (c *InMemoryRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	sorted, _ := c.ZRevRangeWithScores(ctx, key, 0, len(c.Sorteds[key]))
	for i, z := range sorted {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, errors.New("member not found")
}

func (c *InMemoryRedisClient) Set(ctx context.Context, key, value string) error {
	c.Values[key] = value
	return nil
}

func (c *InMemoryRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	return errors.New("not implemented")
}

func (c *InMemoryRedisClient) Get(ctx context.Context, key string) (string, error) {
	value, ok := c.Values[key]
	if !ok {
		return "", redis.Nil
	}

	return value, nil
}

func (c *InMemoryRedisClient) GetObj(ctx context.Context, key string, v any) error {
	return errors.New("not implemented")
}
