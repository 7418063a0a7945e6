package model

import "fmt"

type BookingStatus string

const (
	Active    BookingStatus = "Active"
	Cancelled BookingStatus = "Cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case Active:
		return Active, nil
	case Cancelled:
		return Cancelled, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

type Booking struct {
	TrainNumber        int           `json:"train_number" bson:"train_number"`
	PassengerName      string        `json:"passenger_name" bson:"passenger_name"`
	PassengerAge       int           `json:"passenger_age" bson:"passenger_age"`
	Status             BookingStatus `json:"status" bson:"status"`
	CancellationReason string        `json:"cancellation_reason" bson:"cancellation_reason"`
}

func (b Booking) IsActive() bool {
	return b.Status == Active
}
