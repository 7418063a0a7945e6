package ledger

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"railway-reservation/database"
	"railway-reservation/model"
)

// Ledger owns the train registry and the booking records and keeps the two
// consistent: every active booking holds exactly one seat on its train.
// A single mutex serialises each operation together with its snapshot write.
type Ledger struct {
	mu       sync.Mutex
	registry *Registry
	bookings []model.Booking
	store    database.Store
	log      *zap.Logger
}

// Open restores the ledger from store. Missing snapshots load as empty.
func Open(ctx context.Context, store database.Store, log *zap.Logger) (*Ledger, error) {
	trains, err := store.LoadTrains(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trains: %w", err)
	}
	bookings, err := store.LoadBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	log.Info("ledger loaded",
		zap.Int("trains", len(trains)),
		zap.Int("bookings", len(bookings)))

	return &Ledger{
		registry: NewRegistry(trains),
		bookings: bookings,
		store:    store,
		log:      log,
	}, nil
}

func (l *Ledger) AddTrain(ctx context.Context, number int, name string, seats int) (model.Train, error) {
	if err := validateField("train name", name, false); err != nil {
		return model.Train{}, err
	}
	if seats < 0 {
		return model.Train{}, fmt.Errorf("%w: seats cannot be negative, got %d", ErrInvalidInput, seats)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	train := model.Train{Number: number, Name: name, AvailableSeats: seats}
	l.registry.Add(train)
	l.log.Info("train added",
		zap.Int("train_number", number),
		zap.String("train_name", name),
		zap.Int("seats", seats))

	return train, l.saveTrains(ctx)
}

// Trains yields a copy of the registry taken when iteration starts.
func (l *Ledger) Trains() iter.Seq[model.Train] {
	return func(yield func(model.Train) bool) {
		l.mu.Lock()
		trains := l.registry.Snapshot()
		l.mu.Unlock()

		for _, t := range trains {
			if !yield(t) {
				return
			}
		}
	}
}

// Train returns the first train registered under number.
func (l *Ledger) Train(number int) (model.Train, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.Find(number)
}

// Bookings yields every booking, cancelled ones included, in booking order.
func (l *Ledger) Bookings() iter.Seq[model.Booking] {
	return func(yield func(model.Booking) bool) {
		l.mu.Lock()
		bookings := slices.Clone(l.bookings)
		l.mu.Unlock()

		for _, b := range bookings {
			if !yield(b) {
				return
			}
		}
	}
}

// ActiveBookings returns the bookings CancelTicket would cancel for this passenger.
func (l *Ledger) ActiveBookings(name string, age int) []model.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matches []model.Booking
	for _, b := range l.bookings {
		if matchesPassenger(b, name, age) {
			matches = append(matches, b)
		}
	}
	return matches
}

func (l *Ledger) BookTicket(ctx context.Context, trainNumber int, name string, age int) (model.Booking, error) {
	if err := validateField("passenger name", name, false); err != nil {
		return model.Booking{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	train, ok := l.registry.Find(trainNumber)
	if !ok {
		return model.Booking{}, fmt.Errorf("%w: %d", ErrTrainNotFound, trainNumber)
	}
	if train.AvailableSeats <= 0 {
		return model.Booking{}, fmt.Errorf("%w on train %d", ErrNoSeatsAvailable, trainNumber)
	}

	booking := model.Booking{
		TrainNumber:   trainNumber,
		PassengerName: name,
		PassengerAge:  age,
		Status:        model.Active,
	}
	l.bookings = append(l.bookings, booking)
	l.registry.AdjustSeats(trainNumber, -1)

	l.log.Info("ticket booked",
		zap.Int("train_number", trainNumber),
		zap.String("passenger_name", name),
		zap.Int("passenger_age", age),
		zap.Int("seats_left", train.AvailableSeats-1))

	return booking, l.saveAll(ctx)
}

// CancelTicket cancels every active booking held by the passenger, on any
// train, recording the same reason on each and returning one seat per booking.
func (l *Ledger) CancelTicket(ctx context.Context, name string, age int, reason string) ([]model.Booking, error) {
	if err := validateField("cancellation reason", reason, true); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var cancelled []model.Booking
	for i := range l.bookings {
		b := &l.bookings[i]
		if !matchesPassenger(*b, name, age) {
			continue
		}
		b.Status = model.Cancelled
		b.CancellationReason = reason
		if !l.registry.AdjustSeats(b.TrainNumber, +1) {
			l.log.Warn("cancelled booking references unknown train",
				zap.Int("train_number", b.TrainNumber))
		}
		cancelled = append(cancelled, *b)
	}

	if len(cancelled) == 0 {
		return nil, fmt.Errorf("%w for %s (%d)", ErrBookingNotFound, name, age)
	}

	l.log.Info("tickets cancelled",
		zap.String("passenger_name", name),
		zap.Int("passenger_age", age),
		zap.Int("count", len(cancelled)),
		zap.String("reason", reason))

	return cancelled, l.saveAll(ctx)
}

// saveAll writes bookings before trains. If the bookings write fails the trains
// write is skipped, so the stored seat counts never run ahead of stored bookings.
func (l *Ledger) saveAll(ctx context.Context) error {
	if err := l.store.SaveBookings(ctx, slices.Clone(l.bookings)); err != nil {
		l.log.Error("bookings snapshot failed", zap.Error(err))
		return fmt.Errorf("%w: bookings: %w", ErrSnapshot, err)
	}
	return l.saveTrains(ctx)
}

func (l *Ledger) saveTrains(ctx context.Context) error {
	if err := l.store.SaveTrains(ctx, l.registry.Snapshot()); err != nil {
		l.log.Error("trains snapshot failed", zap.Error(err))
		return fmt.Errorf("%w: trains: %w", ErrSnapshot, err)
	}
	return nil
}

func matchesPassenger(b model.Booking, name string, age int) bool {
	return b.IsActive() && b.PassengerName == name && b.PassengerAge == age
}

// validateField rejects text the snapshot rows cannot carry. Only the last
// column of a row may contain commas.
func validateField(field, value string, lastColumn bool) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: %s cannot contain line breaks", ErrInvalidInput, field)
	}
	if !lastColumn && strings.Contains(value, ",") {
		return fmt.Errorf("%w: %s cannot contain commas", ErrInvalidInput, field)
	}
	return nil
}
