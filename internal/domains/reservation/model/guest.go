package model

import (
	"time"

	"hotelbooking/shared/model"
)

const (
	GuestTableName  = "guests"
	GuestEntityName = "guest"

	FieldReservationID = "reservation_id"
)

const (
	EmergencyContactTableName  = "emergency_contacts"
	EmergencyContactEntityName = "emergency_contact"
)

type Guest struct {
	ID             string    `db:"id"`
	ReservationID  string    `db:"reservation_id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	BirthDate      time.Time `db:"birth_date"`
	Gender         string    `db:"gender"`
	DocumentType   string    `db:"document_type"`
	DocumentNumber string    `db:"document_number"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	model.Metadata
}

type EmergencyContact struct {
	ID            string `db:"id"`
	ReservationID string `db:"reservation_id"`
	FullName      string `db:"full_name"`
	Phone         string `db:"phone"`
	model.Metadata
}
