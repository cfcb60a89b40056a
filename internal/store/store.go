package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwame-owusu/staybay/internal/models"
)

var (
	// ErrNotFound means the referenced hotel, room or review did not exist
	// at transaction time.
	ErrNotFound = errors.New("document not found")

	// ErrConflict means the transaction could not commit because another
	// transaction touched the same document. The whole read-compute-write
	// sequence can be retried.
	ErrConflict = errors.New("transaction conflict")

	// ErrUnavailable means the document store is not reachable or not
	// configured. Not retried automatically.
	ErrUnavailable = errors.New("document store unavailable")
)

// InsufficientInventoryError is returned when a decrement would take a room's
// quantity below zero. The decrement is never partially applied.
type InsufficientInventoryError struct {
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory: requested %d, available %d", e.Requested, e.Available)
}

// Tx exposes the documents a single transactional procedure is allowed to
// touch. Reads record the document version; writes are conditioned on no
// intervening change at commit.
type Tx interface {
	GetHotel(ctx context.Context, hotelID uuid.UUID) (*models.Hotel, error)
	UpdateHotelRating(ctx context.Context, hotelID uuid.UUID, avgRating float64, reviewCount int) error

	GetReview(ctx context.Context, hotelID, customerID uuid.UUID) (*models.Review, error)
	PutReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, hotelID, customerID uuid.UUID) error

	GetRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error)
	DecrementRoomQuantity(ctx context.Context, roomID uuid.UUID, amount int) error
}

// Store runs a single optimistic transaction attempt. fn either fully commits
// or leaves no partial write behind; a version conflict surfaces as
// ErrConflict so the caller can retry via WithRetry.
type Store interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
