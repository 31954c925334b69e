package model

import (
	"math"

	"hotelbooking/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldHotelID   = "hotel_id"
	FieldName      = "name"
	FieldRoomType  = "room_type"
	FieldBasePrice = "base_price"
	FieldTaxes     = "taxes"
	FieldCapacity  = "capacity"
	FieldLocation  = "location"
	FieldEnabled   = "enabled"
)

const (
	TypeStandard = "standard"
	TypeDeluxe   = "deluxe"
	TypeSuite    = "suite"
	TypeFamily   = "family"
)

type Room struct {
	ID        string  `db:"id"`
	HotelID   string  `db:"hotel_id"`
	Name      string  `db:"name"`
	RoomType  string  `db:"room_type"`
	BasePrice float64 `db:"base_price"`
	Taxes     float64 `db:"taxes"`
	Capacity  int     `db:"capacity"`
	Location  string  `db:"location"`
	Enabled   bool    `db:"enabled"`
	model.Metadata
}

// DisplayPrice is the nightly price shown to travelers, base plus taxes.
func (r Room) DisplayPrice() float64 {
	return RoundAmount(r.BasePrice + r.Taxes)
}

// Fits reports whether the room sleeps the given number of guests.
func (r Room) Fits(guests int) bool {
	return guests >= 1 && r.Capacity >= guests
}

// RoundAmount rounds to cents, the precision of the NUMERIC(12,2) columns.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}
