package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kwame-owusu/staybay/internal/models"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	hotel := models.Hotel{ID: uuid.New(), Name: "Seaside", AvgRating: 4.2, ReviewCount: 9}
	key := HotelKey(hotel.ID)

	if err := c.Set(ctx, key, hotel, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got models.Hotel
	hit, err := c.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit")
	}
	if got.ID != hotel.ID || got.AvgRating != hotel.AvgRating || got.ReviewCount != hotel.ReviewCount {
		t.Errorf("got %+v, want %+v", got, hotel)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got models.Hotel
	hit, err := c.Get(context.Background(), HotelKey(uuid.New()), &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Error("expected a miss")
	}
}

func TestCacheDel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	id := uuid.New()
	keys := []string{HotelKey(id), HotelReviewsKey(id), HotelRoomsKey(id)}
	for _, k := range keys {
		if err := c.Set(ctx, k, "v", 60); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	if err := c.Del(ctx, keys...); err != nil {
		t.Fatalf("del: %v", err)
	}

	for _, k := range keys {
		var v string
		if hit, _ := c.Get(ctx, k, &v); hit {
			t.Errorf("key %s survived delete", k)
		}
	}
}

func TestCacheTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	key := HotelKey(uuid.New())
	if err := c.Set(ctx, key, "v", 30); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(31 * time.Second)

	var v string
	if hit, _ := c.Get(ctx, key, &v); hit {
		t.Error("key survived past its TTL")
	}
}
