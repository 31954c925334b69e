package dto

import (
	"hotelbooking/internal/domains/availability/model"
	roomModel "hotelbooking/internal/domains/room/model"
	"hotelbooking/shared"
	"hotelbooking/shared/citykey"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/stay"
)

// SearchRequest carries the search form. Dates are optional but must come as a pair.
type SearchRequest struct {
	City     string `json:"city"      validate:"omitempty,max=255"`
	CheckIn  string `json:"check_in"  validate:"omitempty,date"`
	CheckOut string `json:"check_out" validate:"omitempty,date"`
	Guests   int    `json:"guests"    validate:"required,min=1,max=50"`
}

func (r *SearchRequest) ToCriteria() (model.Criteria, error) {
	criteria := model.Criteria{
		CityKey: citykey.Normalize(r.City),
		Guests:  r.Guests,
	}

	if criteria.Guests < 1 {
		return criteria, failure.BadRequestFromString("guests must be at least 1")
	}

	dates, ok, err := stay.Parse(r.CheckIn, r.CheckOut)
	if err != nil {
		return criteria, failure.BadRequest(err)
	}

	if ok {
		criteria.Stay = &dates
	}

	return criteria, nil
}

type AvailableRoomResponse struct {
	RoomID       string   `json:"room_id"`
	HotelID      string   `json:"hotel_id"`
	HotelName    string   `json:"hotel_name"`
	City         string   `json:"city"`
	Address      string   `json:"address"`
	Name         string   `json:"name"`
	RoomType     string   `json:"room_type"`
	Capacity     int      `json:"capacity"`
	Location     string   `json:"location"`
	BasePrice    float64  `json:"base_price"`
	Taxes        float64  `json:"taxes"`
	DisplayPrice float64  `json:"display_price"`
	Nights       int      `json:"nights,omitempty"`
	TotalPrice   *float64 `json:"total_price,omitempty"`
}

func (r *AvailableRoomResponse) FromModel(m model.AvailableRoom, dates *stay.Range) {
	room := m.Room()

	r.RoomID = m.ID
	r.HotelID = m.HotelID
	r.HotelName = m.HotelName
	r.City = m.HotelCity
	r.Address = m.HotelAddress
	r.Name = m.Name
	r.RoomType = m.RoomType
	r.Capacity = m.Capacity
	r.Location = m.Location
	r.BasePrice = m.BasePrice
	r.Taxes = m.Taxes
	r.DisplayPrice = room.DisplayPrice()

	if dates != nil {
		r.Nights = dates.Nights()
		total := roomModel.RoundAmount(r.DisplayPrice * float64(r.Nights))
		r.TotalPrice = &total
	}
}

type SearchResponse struct {
	Rooms     []AvailableRoomResponse `json:"rooms"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *SearchResponse) FromModels(models []model.AvailableRoom, dates *stay.Range, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]AvailableRoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod, dates)
	}
}

func (r *SearchResponse) Empty() bool {
	return len(r.Rooms) == 0
}

type AvailableHotelResponse struct {
	HotelID   string                  `json:"hotel_id"`
	Name      string                  `json:"name"`
	City      string                  `json:"city"`
	Address   string                  `json:"address"`
	Images    []string                `json:"images"`
	FromPrice float64                 `json:"from_price"`
	Rooms     []AvailableRoomResponse `json:"rooms"`
}

type SearchHotelsResponse struct {
	Hotels []AvailableHotelResponse `json:"hotels"`
}

// FromModels groups rooms by hotel, keeping hotels in the order their first room appears.
func (r *SearchHotelsResponse) FromModels(models []model.AvailableRoom, dates *stay.Range) {
	r.Hotels = []AvailableHotelResponse{}
	index := map[string]int{}

	for _, mod := range models {
		var room AvailableRoomResponse
		room.FromModel(mod, dates)

		pos, seen := index[mod.HotelID]
		if !seen {
			pos = len(r.Hotels)
			index[mod.HotelID] = pos

			r.Hotels = append(r.Hotels, AvailableHotelResponse{
				HotelID:   mod.HotelID,
				Name:      mod.HotelName,
				City:      mod.HotelCity,
				Address:   mod.HotelAddress,
				Images:    append([]string{}, mod.HotelImages...),
				FromPrice: room.DisplayPrice,
			})
		}

		hotel := &r.Hotels[pos]
		hotel.Rooms = append(hotel.Rooms, room)
		hotel.FromPrice = min(hotel.FromPrice, room.DisplayPrice)
	}
}

func (r *SearchHotelsResponse) Empty() bool {
	return len(r.Hotels) == 0
}
