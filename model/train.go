package model

type Train struct {
	Number         int    `json:"train_number" bson:"train_number"`
	Name           string `json:"train_name" bson:"train_name"`
	AvailableSeats int    `json:"available_seats" bson:"available_seats"`
}
