package ledger

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"railway-reservation/model"
)

// MockStore records snapshots in memory. Save*Func override the default behaviour.
type MockStore struct {
	Trains   []model.Train
	Bookings []model.Booking

	SaveTrainsFunc   func(trains []model.Train) error
	SaveBookingsFunc func(bookings []model.Booking) error

	trainSaves   int
	bookingSaves int
}

func (m *MockStore) LoadTrains(ctx context.Context) ([]model.Train, error) {
	return slices.Clone(m.Trains), nil
}

func (m *MockStore) LoadBookings(ctx context.Context) ([]model.Booking, error) {
	return slices.Clone(m.Bookings), nil
}

func (m *MockStore) SaveTrains(ctx context.Context, trains []model.Train) error {
	m.trainSaves++
	if m.SaveTrainsFunc != nil {
		return m.SaveTrainsFunc(trains)
	}
	m.Trains = trains
	return nil
}

func (m *MockStore) SaveBookings(ctx context.Context, bookings []model.Booking) error {
	m.bookingSaves++
	if m.SaveBookingsFunc != nil {
		return m.SaveBookingsFunc(bookings)
	}
	m.Bookings = bookings
	return nil
}

func openLedger(t *testing.T, store *MockStore) *Ledger {
	t.Helper()
	l, err := Open(context.Background(), store, zaptest.NewLogger(t))
	require.NoError(t, err)
	return l
}

func seats(t *testing.T, l *Ledger, number int) int {
	t.Helper()
	train, ok := l.Train(number)
	require.True(t, ok, "train %d not registered", number)
	return train.AvailableSeats
}

func activeCount(l *Ledger, number int) int {
	n := 0
	for b := range l.Bookings() {
		if b.TrainNumber == number && b.IsActive() {
			n++
		}
	}
	return n
}

func TestBookTicket(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	l := openLedger(t, store)

	_, err := l.AddTrain(ctx, 100, "Express", 2)
	require.NoError(t, err)

	booking, err := l.BookTicket(ctx, 100, "Asha", 30)
	require.NoError(t, err)

	assert.Equal(t, model.Booking{TrainNumber: 100, PassengerName: "Asha", PassengerAge: 30, Status: model.Active}, booking)
	assert.Equal(t, 1, seats(t, l, 100))
	assert.Equal(t, []model.Booking{booking}, store.Bookings)
	assert.Equal(t, 1, store.Trains[0].AvailableSeats)
}

func TestBookTicketNoOversell(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	l := openLedger(t, store)

	_, err := l.AddTrain(ctx, 7, "Local", 1)
	require.NoError(t, err)
	_, err = l.BookTicket(ctx, 7, "Ravi", 41)
	require.NoError(t, err)

	savesBefore := store.bookingSaves
	_, err = l.BookTicket(ctx, 7, "Meera", 25)

	assert.ErrorIs(t, err, ErrNoSeatsAvailable)
	assert.Equal(t, 0, seats(t, l, 7))
	assert.Equal(t, 1, activeCount(l, 7))
	assert.Equal(t, savesBefore, store.bookingSaves)
}

func TestBookTicketZeroSeatTrain(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &MockStore{})

	_, err := l.AddTrain(ctx, 3, "Freight", 0)
	require.NoError(t, err)

	_, err = l.BookTicket(ctx, 3, "Asha", 30)
	assert.ErrorIs(t, err, ErrNoSeatsAvailable)
}

func TestBookTicketUnknownTrain(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	l := openLedger(t, store)

	_, err := l.BookTicket(ctx, 9999, "Asha", 30)
	assert.ErrorIs(t, err, ErrTrainNotFound)
	assert.True(t, IsNotFoundError(err))

	_, err = l.AddTrain(ctx, 100, "Express", 2)
	require.NoError(t, err)
	_, err = l.BookTicket(ctx, 9999, "Asha", 30)
	assert.ErrorIs(t, err, ErrTrainNotFound)

	assert.Empty(t, slices.Collect(l.Bookings()))
	assert.Zero(t, store.bookingSaves)
	assert.Equal(t, 2, seats(t, l, 100))
}

func TestCancelTicketTwice(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &MockStore{})

	_, err := l.AddTrain(ctx, 100, "Express", 2)
	require.NoError(t, err)
	_, err = l.BookTicket(ctx, 100, "Asha", 30)
	require.NoError(t, err)

	cancelled, err := l.CancelTicket(ctx, "Asha", 30, "plans changed")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, model.Cancelled, cancelled[0].Status)
	assert.Equal(t, "plans changed", cancelled[0].CancellationReason)
	assert.Equal(t, 2, seats(t, l, 100))

	_, err = l.CancelTicket(ctx, "Asha", 30, "again")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, 2, seats(t, l, 100))

	all := slices.Collect(l.Bookings())
	require.Len(t, all, 1)
	assert.Equal(t, "plans changed", all[0].CancellationReason)
}

func TestCancelTicketAllMatches(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	l := openLedger(t, store)

	for _, tr := range []model.Train{{Number: 1, Name: "North", AvailableSeats: 5}, {Number: 2, Name: "South", AvailableSeats: 3}} {
		_, err := l.AddTrain(ctx, tr.Number, tr.Name, tr.AvailableSeats)
		require.NoError(t, err)
	}
	_, err := l.BookTicket(ctx, 1, "Asha", 30)
	require.NoError(t, err)
	_, err = l.BookTicket(ctx, 2, "Asha", 30)
	require.NoError(t, err)
	_, err = l.BookTicket(ctx, 2, "Asha", 31)
	require.NoError(t, err)

	cancelled, err := l.CancelTicket(ctx, "Asha", 30, "duplicate")
	require.NoError(t, err)

	require.Len(t, cancelled, 2)
	for _, b := range cancelled {
		assert.Equal(t, model.Cancelled, b.Status)
		assert.Equal(t, "duplicate", b.CancellationReason)
	}
	assert.Equal(t, 5, seats(t, l, 1))
	assert.Equal(t, 2, seats(t, l, 2))
	assert.Equal(t, 1, activeCount(l, 2))
	assert.Len(t, store.Bookings, 3)
}

func TestCancelTicketExactMatch(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &MockStore{})

	_, err := l.AddTrain(ctx, 1, "North", 5)
	require.NoError(t, err)
	_, err = l.BookTicket(ctx, 1, "Asha", 30)
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		age  int
	}{
		{"asha", 30},
		{"Ash", 30},
		{"Asha ", 30},
		{"Asha", 31},
	} {
		_, err := l.CancelTicket(ctx, tc.name, tc.age, "")
		assert.ErrorIs(t, err, ErrBookingNotFound, "%q/%d", tc.name, tc.age)
	}
	assert.Equal(t, 4, seats(t, l, 1))
}

func TestSeatAccounting(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &MockStore{})

	capacity := map[int]int{10: 3, 20: 1, 30: 2}
	for _, number := range []int{10, 20, 30} {
		_, err := l.AddTrain(ctx, number, "Train", capacity[number])
		require.NoError(t, err)
	}

	type step struct {
		cancel bool
		train  int
		name   string
		age    int
	}
	steps := []step{
		{train: 10, name: "A", age: 1},
		{train: 10, name: "B", age: 2},
		{train: 20, name: "A", age: 1},
		{train: 20, name: "C", age: 3},
		{cancel: true, name: "A", age: 1},
		{train: 20, name: "C", age: 3},
		{train: 30, name: "B", age: 2},
		{train: 10, name: "D", age: 4},
		{train: 10, name: "E", age: 5},
		{cancel: true, name: "B", age: 2},
		{cancel: true, name: "B", age: 2},
		{train: 40, name: "F", age: 6},
	}

	for _, s := range steps {
		if s.cancel {
			l.CancelTicket(ctx, s.name, s.age, "test")
		} else {
			l.BookTicket(ctx, s.train, s.name, s.age)
		}

		for number, want := range capacity {
			assert.Equal(t, want, seats(t, l, number)+activeCount(l, number), "train %d", number)
			assert.GreaterOrEqual(t, seats(t, l, number), 0, "train %d", number)
		}
	}
}

func TestDuplicateTrainNumbersFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &MockStore{})

	_, err := l.AddTrain(ctx, 5, "First", 1)
	require.NoError(t, err)
	_, err = l.AddTrain(ctx, 5, "Second", 10)
	require.NoError(t, err)

	train, ok := l.Train(5)
	require.True(t, ok)
	assert.Equal(t, "First", train.Name)

	_, err = l.BookTicket(ctx, 5, "Asha", 30)
	require.NoError(t, err)
	_, err = l.BookTicket(ctx, 5, "Ravi", 40)
	assert.ErrorIs(t, err, ErrNoSeatsAvailable)

	trains := slices.Collect(l.Trains())
	require.Len(t, trains, 2)
	assert.Equal(t, 0, trains[0].AvailableSeats)
	assert.Equal(t, 10, trains[1].AvailableSeats)
}

func TestOpenRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{
		Trains: []model.Train{{Number: 100, Name: "Express", AvailableSeats: 1}},
		Bookings: []model.Booking{
			{TrainNumber: 100, PassengerName: "Asha", PassengerAge: 30, Status: model.Active},
		},
	}
	l := openLedger(t, store)

	assert.Equal(t, store.Trains, slices.Collect(l.Trains()))
	assert.Equal(t, store.Bookings, slices.Collect(l.Bookings()))

	_, err := l.CancelTicket(ctx, "Asha", 30, "ill")
	require.NoError(t, err)
	assert.Equal(t, 2, seats(t, l, 100))
}

func TestCancelBookingOnMissingTrain(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{
		Bookings: []model.Booking{
			{TrainNumber: 404, PassengerName: "Asha", PassengerAge: 30, Status: model.Active},
		},
	}
	l := openLedger(t, store)

	cancelled, err := l.CancelTicket(ctx, "Asha", 30, "train withdrawn")
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)
	assert.Equal(t, model.Cancelled, store.Bookings[0].Status)
}

func TestSequencesAreRestartable(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &MockStore{})

	_, err := l.AddTrain(ctx, 1, "One", 1)
	require.NoError(t, err)

	trains := l.Trains()
	assert.Len(t, slices.Collect(trains), 1)

	_, err = l.AddTrain(ctx, 2, "Two", 1)
	require.NoError(t, err)
	assert.Len(t, slices.Collect(trains), 2)

	for range trains {
		break
	}
	assert.Len(t, slices.Collect(trains), 2)
}

func TestBookingSnapshotFailure(t *testing.T) {
	ctx := context.Background()
	diskFull := errors.New("disk full")
	store := &MockStore{}
	l := openLedger(t, store)

	_, err := l.AddTrain(ctx, 100, "Express", 2)
	require.NoError(t, err)
	trainSaves := store.trainSaves

	store.SaveBookingsFunc = func([]model.Booking) error { return diskFull }
	_, err = l.BookTicket(ctx, 100, "Asha", 30)

	assert.ErrorIs(t, err, ErrSnapshot)
	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, trainSaves, store.trainSaves, "trains must not be saved ahead of bookings")
	assert.Equal(t, 1, seats(t, l, 100), "in-memory booking is kept")
	assert.Equal(t, 1, activeCount(l, 100))
}

func TestTrainSnapshotFailure(t *testing.T) {
	ctx := context.Background()
	diskFull := errors.New("disk full")
	store := &MockStore{SaveTrainsFunc: func([]model.Train) error { return diskFull }}
	l := openLedger(t, store)

	train, err := l.AddTrain(ctx, 100, "Express", 2)
	assert.ErrorIs(t, err, ErrSnapshot)
	assert.Equal(t, 100, train.Number)
	assert.Equal(t, 1, len(slices.Collect(l.Trains())))
}

func TestInvalidInput(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	l := openLedger(t, store)

	_, err := l.AddTrain(ctx, 1, "Express, Night", 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = l.AddTrain(ctx, 1, "Express\nNight", 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = l.AddTrain(ctx, 1, "Express", -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, slices.Collect(l.Trains()))

	_, err = l.AddTrain(ctx, 1, "Express", 2)
	require.NoError(t, err)

	_, err = l.BookTicket(ctx, 1, "Doe, Jane", 30)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 2, seats(t, l, 1))

	_, err = l.BookTicket(ctx, 1, "Jane", 30)
	require.NoError(t, err)

	_, err = l.CancelTicket(ctx, "Jane", 30, "line\nbreak")
	assert.ErrorIs(t, err, ErrInvalidInput)

	cancelled, err := l.CancelTicket(ctx, "Jane", 30, "late, missed train")
	require.NoError(t, err)
	assert.Equal(t, "late, missed train", cancelled[0].CancellationReason)
}
