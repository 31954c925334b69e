package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelbooking/infras/otel"
	"hotelbooking/infras/postgres"
	"hotelbooking/internal/domains/reservation/model"
	gDto "hotelbooking/shared/dto"
	gRepo "hotelbooking/shared/repository"
	"hotelbooking/shared/stay"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateAffected(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type Guest interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.Guest) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Guest, error)
}

type EmergencyContact interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.EmergencyContact) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.EmergencyContact, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type guestRepositoryImpl struct {
	gRepo.Repository[model.Guest]
}

func NewGuest(db *postgres.Connection, otel otel.Otel) Guest {
	return &guestRepositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.GuestEntityName, model.GuestTableName, model.FieldID, db, otel),
	}
}

type emergencyContactRepositoryImpl struct {
	gRepo.Repository[model.EmergencyContact]
}

func NewEmergencyContact(db *postgres.Connection, otel otel.Otel) EmergencyContact {
	return &emergencyContactRepositoryImpl{
		Repository: gRepo.NewRepository[model.EmergencyContact](
			model.EmergencyContactEntityName, model.EmergencyContactTableName, model.FieldID, db, otel,
		),
	}
}

var SortableFields = []string{model.FieldCheckIn, model.FieldCheckOut, model.FieldTotalAmount, model.FieldStatus, "created_at"}

// GuestOrder returns guests in the order they were submitted.
var GuestOrder = gDto.QueryParams{SortBy: "created_at", SortDir: gDto.SortDirAsc}

// OverlapFilter matches live reservations of roomID whose stay intersects r.
func OverlapFilter(roomID string, r stay.Range) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "live_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    model.StatusCancelled,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckIn,
				Operator: gDto.FilterPlainQuery,
				Value:    "reservations.check_in < :overlap_check_out AND reservations.check_out > :overlap_check_in",
				Args: map[string]any{
					"overlap_check_in":  r.CheckIn,
					"overlap_check_out": r.CheckOut,
				},
			},
		},
	}
}

// ByReservation selects the child rows of one reservation.
func ByReservation(id string, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    table,
			},
		},
	}
}

// ListFilter narrows reservation listings to one traveler or to the hotels of one agent.
type ListFilter struct {
	TravelerID string
	AgentID    string
	HotelID    string
	Status     string
}

func (f ListFilter) Build() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.TravelerID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldTravelerID,
			Operator: gDto.FilterOperatorEq,
			Value:    f.TravelerID,
			Table:    model.TableName,
		})
	}

	if f.AgentID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterPlainQuery,
			Value:    "reservations.hotel_id IN (SELECT hotels.id FROM hotels WHERE hotels.agent_id = :reservation_agent_id)",
			Args:     map[string]any{"reservation_agent_id": f.AgentID},
		})
	}

	if f.HotelID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    f.HotelID,
			Table:    model.TableName,
		})
	}

	if f.Status != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    f.Status,
			Table:    model.TableName,
		})
	}

	return group
}
