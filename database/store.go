package database

import (
	"context"
	"errors"

	"railway-reservation/model"
)

// ErrMalformedRecord marks a stored row that cannot be read back. Loading stops
// at the first one; rows are never coerced into a best guess.
var ErrMalformedRecord = errors.New("malformed record")

// Store persists full snapshots of both collections. Every save replaces the
// previous snapshot of that collection wholesale.
type Store interface {
	LoadTrains(ctx context.Context) ([]model.Train, error)
	LoadBookings(ctx context.Context) ([]model.Booking, error)
	SaveTrains(ctx context.Context, trains []model.Train) error
	SaveBookings(ctx context.Context, bookings []model.Booking) error
}
