package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kwame-owusu/staybay/internal/observability"
)

// DefaultTTL is how long hotel read models live before they are refetched.
const DefaultTTL = 300

type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// NewWithClient wraps an existing client, used by tests with miniredis.
func NewWithClient(c *redis.Client) *Cache {
	return &Cache{c: c}
}

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, _ := json.Marshal(v)
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, keys ...string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, keys...).Err()
}

func HotelKey(id uuid.UUID) string { return fmt.Sprintf("hotel:%s", id) }

func HotelReviewsKey(id uuid.UUID) string { return fmt.Sprintf("hotel:%s:reviews", id) }

func HotelRoomsKey(id uuid.UUID) string { return fmt.Sprintf("hotel:%s:rooms", id) }

func HotelFoodsKey(id uuid.UUID) string { return fmt.Sprintf("hotel:%s:foods", id) }
