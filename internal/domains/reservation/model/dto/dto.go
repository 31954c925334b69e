package dto

import (
	"strings"
	"time"

	"hotelbooking/internal/domains/reservation/model"
	roomModel "hotelbooking/internal/domains/room/model"
	"hotelbooking/shared"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
	gModel "hotelbooking/shared/model"
	"hotelbooking/shared/stay"
	"hotelbooking/shared/timezone"

	"github.com/google/uuid"
)

type GuestRequest struct {
	FirstName      string `json:"first_name"      validate:"required,max=255"`
	LastName       string `json:"last_name"       validate:"required,max=255"`
	BirthDate      string `json:"birth_date"      validate:"required,date"`
	Gender         string `json:"gender"          validate:"required,oneof=male female other"`
	DocumentType   string `json:"document_type"   validate:"required,oneof=passport id driver_license"`
	DocumentNumber string `json:"document_number" validate:"required,max=100"`
	Email          string `json:"email"           validate:"omitempty,email,max=255"`
	Phone          string `json:"phone"           validate:"omitempty,max=50"`
}

type EmergencyContactRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Phone    string `json:"phone"     validate:"required,max=50"`
}

type CreateReservationRequest struct {
	RoomID           string                  `json:"room_id"           validate:"required,uuid"`
	CheckIn          string                  `json:"check_in"          validate:"required,date"`
	CheckOut         string                  `json:"check_out"         validate:"required,date"`
	Guests           int                     `json:"guests"            validate:"omitempty,min=1,max=50"`
	GuestRecords     []GuestRequest          `json:"guest_records"     validate:"required,min=1,max=50,dive"`
	EmergencyContact EmergencyContactRequest `json:"emergency_contact" validate:"required"`
	// IdempotencyKey comes from the Idempotency-Key header.
	IdempotencyKey string `json:"-" validate:"omitempty,max=255"`
}

// GuestCount is the declared party size, or the number of guest records when none was declared.
func (c *CreateReservationRequest) GuestCount() int {
	if c.Guests == 0 {
		return len(c.GuestRecords)
	}

	return c.Guests
}

func (c *CreateReservationRequest) Stay() (stay.Range, error) {
	r, ok, err := stay.Parse(c.CheckIn, c.CheckOut)
	if err != nil {
		return r, failure.BadRequest(err)
	}

	if !ok {
		return r, failure.BadRequest(stay.ErrIncomplete)
	}

	return r, nil
}

// ToModels builds the three records of one booking. The total is priced from the stored room.
func (c *CreateReservationRequest) ToModels(
	user string,
	room roomModel.Room,
	dates stay.Range,
	status string,
) (model.Reservation, []model.Guest, model.EmergencyContact, error) {
	now := timezone.Now()
	metadata := gModel.NewMetadata(user, now)

	reservation := model.Reservation{
		ID:          uuid.NewString(),
		RoomID:      room.ID,
		HotelID:     room.HotelID,
		TravelerID:  user,
		CheckIn:     dates.CheckIn,
		CheckOut:    dates.CheckOut,
		Guests:      c.GuestCount(),
		TotalAmount: roomModel.RoundAmount(room.DisplayPrice() * float64(dates.Nights())),
		Status:      status,
		Metadata:    metadata,
	}

	guests := make([]model.Guest, 0, len(c.GuestRecords))

	for i, g := range c.GuestRecords {
		birthDate, err := time.Parse(constant.DateOnlyFormat, g.BirthDate)
		if err != nil {
			return model.Reservation{}, nil, model.EmergencyContact{}, failure.BadRequest(stay.ErrInvalidDate)
		}

		if !birthDate.Before(now) {
			return model.Reservation{}, nil, model.EmergencyContact{}, failure.BadRequestFromString("birth_date must be in the past")
		}

		// keeps the stored order equal to the submitted order
		guestMetadata := gModel.NewMetadata(user, now.Add(time.Duration(i)*time.Microsecond))

		guests = append(guests, model.Guest{
			ID:             uuid.NewString(),
			ReservationID:  reservation.ID,
			FirstName:      strings.TrimSpace(g.FirstName),
			LastName:       strings.TrimSpace(g.LastName),
			BirthDate:      birthDate,
			Gender:         g.Gender,
			DocumentType:   g.DocumentType,
			DocumentNumber: strings.TrimSpace(g.DocumentNumber),
			Email:          strings.ToLower(strings.TrimSpace(g.Email)),
			Phone:          strings.TrimSpace(g.Phone),
			Metadata:       guestMetadata,
		})
	}

	contact := model.EmergencyContact{
		ID:            uuid.NewString(),
		ReservationID: reservation.ID,
		FullName:      strings.TrimSpace(c.EmergencyContact.FullName),
		Phone:         strings.TrimSpace(c.EmergencyContact.Phone),
		Metadata:      metadata,
	}

	return reservation, guests, contact, nil
}

type GuestResponse struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BirthDate      string `json:"birth_date"`
	Gender         string `json:"gender"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

func (g *GuestResponse) FromModel(m model.Guest) {
	g.ID = m.ID
	g.FirstName = m.FirstName
	g.LastName = m.LastName
	g.BirthDate = m.BirthDate.Format(constant.DateOnlyFormat)
	g.Gender = m.Gender
	g.DocumentType = m.DocumentType
	g.DocumentNumber = m.DocumentNumber
	g.Email = m.Email
	g.Phone = m.Phone
}

type EmergencyContactResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type ReservationResponse struct {
	ID               string                    `json:"id"`
	RoomID           string                    `json:"room_id"`
	HotelID          string                    `json:"hotel_id"`
	TravelerID       string                    `json:"traveler_id"`
	CheckIn          string                    `json:"check_in"`
	CheckOut         string                    `json:"check_out"`
	Nights           int                       `json:"nights"`
	Guests           int                       `json:"guests"`
	TotalAmount      float64                   `json:"total_amount"`
	Status           string                    `json:"status"`
	GuestRecords     []GuestResponse           `json:"guest_records,omitempty"`
	EmergencyContact *EmergencyContactResponse `json:"emergency_contact,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(m model.Reservation) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.HotelID = m.HotelID
	r.TravelerID = m.TravelerID
	r.CheckIn = m.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = m.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = m.Stay().Nights()
	r.Guests = m.Guests
	r.TotalAmount = m.TotalAmount
	r.Status = m.Status
	r.Metadata.FromModel(m.Metadata)
}

// WithDetails attaches the guest list and emergency contact. A contact without an id is omitted.
func (r *ReservationResponse) WithDetails(guests []model.Guest, contact model.EmergencyContact) {
	r.GuestRecords = make([]GuestResponse, len(guests))
	for i, g := range guests {
		r.GuestRecords[i].FromModel(g)
	}

	if contact.ID != constant.Empty {
		r.EmergencyContact = &EmergencyContactResponse{
			ID:       contact.ID,
			FullName: contact.FullName,
			Phone:    contact.Phone,
		}
	}
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
