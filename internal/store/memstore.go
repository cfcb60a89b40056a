package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kwame-owusu/staybay/internal/models"
)

// MemStore is an in-memory Store with real optimistic concurrency: every
// document carries a version, transactional reads record the version they
// observed, and commit fails with ErrConflict if any read document changed.
// It exists so the rating-ledger and inventory-guard procedures can be
// exercised without a MongoDB replica set.
type MemStore struct {
	mu       sync.Mutex
	hotels   map[uuid.UUID]models.Hotel
	reviews  map[reviewKey]models.Review
	rooms    map[uuid.UUID]models.Room
	versions map[string]uint64

	forcedConflicts int
}

type reviewKey struct {
	hotelID    uuid.UUID
	customerID uuid.UUID
}

func NewMemStore() *MemStore {
	return &MemStore{
		hotels:   make(map[uuid.UUID]models.Hotel),
		reviews:  make(map[reviewKey]models.Review),
		rooms:    make(map[uuid.UUID]models.Room),
		versions: make(map[string]uint64),
	}
}

func hotelKey(id uuid.UUID) string { return "hotel:" + id.String() }
func roomKey(id uuid.UUID) string  { return "room:" + id.String() }
func reviewKeyOf(k reviewKey) string {
	return fmt.Sprintf("review:%s:%s", k.hotelID, k.customerID)
}

// SeedHotel inserts or replaces a hotel outside any transaction.
func (m *MemStore) SeedHotel(h models.Hotel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotels[h.ID] = h
	m.versions[hotelKey(h.ID)]++
}

// SeedRoom inserts or replaces a room outside any transaction.
func (m *MemStore) SeedRoom(r models.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = r
	m.versions[roomKey(r.ID)]++
}

// Hotel returns a snapshot of the hotel document.
func (m *MemStore) Hotel(id uuid.UUID) (models.Hotel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	return h, ok
}

// Room returns a snapshot of the room document.
func (m *MemStore) Room(id uuid.UUID) (models.Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Reviews returns snapshots of all reviews for a hotel.
func (m *MemStore) Reviews(hotelID uuid.UUID) []models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Review
	for k, r := range m.reviews {
		if k.hotelID == hotelID {
			out = append(out, r)
		}
	}
	return out
}

// ForceConflicts makes the next n commits fail with ErrConflict after the
// transaction body has run, simulating contention for retry tests.
func (m *MemStore) ForceConflicts(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedConflicts = n
}

func (m *MemStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx := &memTx{store: m, reads: make(map[string]uint64)}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.forcedConflicts > 0 {
		m.forcedConflicts--
		return ErrConflict
	}
	for key, seen := range tx.reads {
		if m.versions[key] != seen {
			return ErrConflict
		}
	}
	for _, apply := range tx.writes {
		apply()
	}
	return nil
}

// memTx buffers writes until commit; reads record the version observed so the
// commit can detect interleaved mutations.
type memTx struct {
	store  *MemStore
	reads  map[string]uint64
	writes []func()
}

func (t *memTx) GetHotel(ctx context.Context, hotelID uuid.UUID) (*models.Hotel, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.reads[hotelKey(hotelID)] = t.store.versions[hotelKey(hotelID)]
	h, ok := t.store.hotels[hotelID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := h
	return &copied, nil
}

func (t *memTx) UpdateHotelRating(ctx context.Context, hotelID uuid.UUID, avgRating float64, reviewCount int) error {
	t.writes = append(t.writes, func() {
		h, ok := t.store.hotels[hotelID]
		if !ok {
			return
		}
		h.AvgRating = avgRating
		h.ReviewCount = reviewCount
		t.store.hotels[hotelID] = h
		t.store.versions[hotelKey(hotelID)]++
	})
	return nil
}

func (t *memTx) GetReview(ctx context.Context, hotelID, customerID uuid.UUID) (*models.Review, error) {
	key := reviewKey{hotelID: hotelID, customerID: customerID}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.reads[reviewKeyOf(key)] = t.store.versions[reviewKeyOf(key)]
	r, ok := t.store.reviews[key]
	if !ok {
		return nil, ErrNotFound
	}
	copied := r
	return &copied, nil
}

func (t *memTx) PutReview(ctx context.Context, review *models.Review) error {
	copied := *review
	key := reviewKey{hotelID: review.HotelID, customerID: review.CustomerID}
	t.writes = append(t.writes, func() {
		t.store.reviews[key] = copied
		t.store.versions[reviewKeyOf(key)]++
	})
	return nil
}

func (t *memTx) DeleteReview(ctx context.Context, hotelID, customerID uuid.UUID) error {
	key := reviewKey{hotelID: hotelID, customerID: customerID}
	t.writes = append(t.writes, func() {
		delete(t.store.reviews, key)
		t.store.versions[reviewKeyOf(key)]++
	})
	return nil
}

func (t *memTx) GetRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.reads[roomKey(roomID)] = t.store.versions[roomKey(roomID)]
	r, ok := t.store.rooms[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := r
	return &copied, nil
}

func (t *memTx) DecrementRoomQuantity(ctx context.Context, roomID uuid.UUID, amount int) error {
	t.writes = append(t.writes, func() {
		r, ok := t.store.rooms[roomID]
		if !ok || r.Quantity < amount {
			return
		}
		r.Quantity -= amount
		t.store.rooms[roomID] = r
		t.store.versions[roomKey(roomID)]++
	})
	return nil
}
