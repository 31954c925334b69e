package model

import (
	"time"

	"hotelbooking/shared/model"
	"hotelbooking/shared/stay"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldHotelID     = "hotel_id"
	FieldTravelerID  = "traveler_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldGuests      = "guests"
	FieldTotalAmount = "total_amount"
	FieldStatus      = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// transitions lists the statuses each status may move to. Cancelled is terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

type Reservation struct {
	ID          string    `db:"id"`
	RoomID      string    `db:"room_id"`
	HotelID     string    `db:"hotel_id"`
	TravelerID  string    `db:"traveler_id"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	Guests      int       `db:"guests"`
	TotalAmount float64   `db:"total_amount"`
	Status      string    `db:"status"`
	model.Metadata
}

func (r Reservation) Stay() stay.Range {
	return stay.Range{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

func (r Reservation) CanTransitionTo(status string) bool {
	for _, next := range transitions[r.Status] {
		if next == status {
			return true
		}
	}

	return false
}

func IsStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}
