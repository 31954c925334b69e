package model

import (
	"time"

	roomModel "hotelbooking/internal/domains/room/model"
	"hotelbooking/shared/stay"

	"github.com/lib/pq"
)

const (
	TableName  = roomModel.TableName
	EntityName = "available_room"
	FieldID    = roomModel.FieldID
)

// Criteria is a validated availability query. Stay is nil when no dates were given.
type Criteria struct {
	CityKey string
	Guests  int
	Stay    *stay.Range
}

// AvailableRoom is a bookable room joined with its hotel.
type AvailableRoom struct {
	ID           string         `db:"id"`
	HotelID      string         `db:"hotel_id"`
	Name         string         `db:"name"`
	RoomType     string         `db:"room_type"`
	BasePrice    float64        `db:"base_price"`
	Taxes        float64        `db:"taxes"`
	Capacity     int            `db:"capacity"`
	Location     string         `db:"location"`
	CreatedAt    time.Time      `db:"created_at"`
	HotelName    string         `db:"hotel_name"    table:"hotels" column:"name"`
	HotelCity    string         `db:"hotel_city"    table:"hotels" column:"city"`
	HotelAddress string         `db:"hotel_address" table:"hotels" column:"address"`
	HotelImages  pq.StringArray `db:"hotel_images"  table:"hotels" column:"images"`
}

func (AvailableRoom) GetJoinQuery() string {
	return "JOIN hotels ON hotels.id = rooms.hotel_id"
}

func (r AvailableRoom) Room() roomModel.Room {
	return roomModel.Room{
		ID:        r.ID,
		HotelID:   r.HotelID,
		Name:      r.Name,
		RoomType:  r.RoomType,
		BasePrice: r.BasePrice,
		Taxes:     r.Taxes,
		Capacity:  r.Capacity,
		Location:  r.Location,
		Enabled:   true,
	}
}
