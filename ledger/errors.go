package ledger

import "errors"

var (
	ErrTrainNotFound    = errors.New("train not found")
	ErrNoSeatsAvailable = errors.New("no seats available")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidInput     = errors.New("invalid input")

	// ErrSnapshot wraps a failed store write. The in-memory change it followed is kept.
	ErrSnapshot = errors.New("snapshot write failed")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTrainNotFound) || errors.Is(err, ErrBookingNotFound)
}
