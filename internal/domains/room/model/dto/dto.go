package dto

import (
	"strings"

	"hotelbooking/internal/domains/room/model"
	"hotelbooking/shared"
	gDto "hotelbooking/shared/dto"
	gModel "hotelbooking/shared/model"
	"hotelbooking/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	HotelID   string   `json:"hotel_id"   validate:"required,uuid"`
	Name      string   `json:"name"       validate:"required,max=255"`
	RoomType  string   `json:"room_type"  validate:"required,oneof=standard deluxe suite family"`
	BasePrice *float64 `json:"base_price" validate:"required,gte=0"`
	Taxes     float64  `json:"taxes"      validate:"gte=0"`
	Capacity  int      `json:"capacity"   validate:"required,min=1,max=50"`
	Location  string   `json:"location"   validate:"omitempty,max=255"`
	Enabled   *bool    `json:"enabled"    validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	enabled := true
	if c.Enabled != nil {
		enabled = *c.Enabled
	}

	var basePrice float64
	if c.BasePrice != nil {
		basePrice = *c.BasePrice
	}

	return model.Room{
		ID:        uuid.NewString(),
		HotelID:   c.HotelID,
		Name:      strings.TrimSpace(c.Name),
		RoomType:  c.RoomType,
		BasePrice: model.RoundAmount(basePrice),
		Taxes:     model.RoundAmount(c.Taxes),
		Capacity:  c.Capacity,
		Location:  strings.TrimSpace(c.Location),
		Enabled:   enabled,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Name      string   `db:"name"       json:"name"       validate:"omitempty,max=255"`
	RoomType  string   `db:"room_type"  json:"room_type"  validate:"omitempty,oneof=standard deluxe suite family"`
	BasePrice *float64 `db:"base_price" json:"base_price" validate:"omitempty,gte=0"`
	Taxes     *float64 `db:"taxes"      json:"taxes"      validate:"omitempty,gte=0"`
	Capacity  *int     `db:"capacity"   json:"capacity"   validate:"omitempty,min=1,max=50"`
	Location  *string  `db:"location"   json:"location"   validate:"omitempty,max=255"`
}

func (u *UpdateRoomRequest) Empty() bool {
	return *u == UpdateRoomRequest{}
}

type RoomResponse struct {
	ID           string  `json:"id"`
	HotelID      string  `json:"hotel_id"`
	Name         string  `json:"name"`
	RoomType     string  `json:"room_type"`
	BasePrice    float64 `json:"base_price"`
	Taxes        float64 `json:"taxes"`
	DisplayPrice float64 `json:"display_price"`
	Capacity     int     `json:"capacity"`
	Location     string  `json:"location"`
	Enabled      bool    `json:"enabled"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.HotelID = m.HotelID
	r.Name = m.Name
	r.RoomType = m.RoomType
	r.BasePrice = m.BasePrice
	r.Taxes = m.Taxes
	r.DisplayPrice = m.DisplayPrice()
	r.Capacity = m.Capacity
	r.Location = m.Location
	r.Enabled = m.Enabled
	r.Metadata.FromModel(m.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
