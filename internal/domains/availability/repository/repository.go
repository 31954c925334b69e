package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelbooking/infras/otel"
	"hotelbooking/infras/postgres"
	"hotelbooking/internal/domains/availability/model"
	hotelModel "hotelbooking/internal/domains/hotel/model"
	roomModel "hotelbooking/internal/domains/room/model"
	gDto "hotelbooking/shared/dto"
	gRepo "hotelbooking/shared/repository"
)

// overlapQuery drops rooms holding a live reservation that intersects [check_in, check_out).
const overlapQuery = `NOT EXISTS (
	SELECT 1 FROM reservations
	WHERE reservations.room_id = rooms.id
		AND reservations.status <> 'cancelled'
		AND reservations.check_in < :stay_check_out
		AND reservations.check_out > :stay_check_in
)`

// InsertionOrder lists rooms in the order they were stored.
var InsertionOrder = gDto.QueryParams{SortBy: "rooms.created_at", SortDir: gDto.SortDirAsc}

type Availability interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.AvailableRoom, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.AvailableRoom]
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AvailableRoom](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// CriteriaFilter expresses the availability rule as a filter over rooms joined with hotels.
func CriteriaFilter(criteria model.Criteria) gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "hotel_enabled",
				Field:    hotelModel.FieldEnabled,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    hotelModel.TableName,
			},
			gDto.Filter{
				ArgName:  "room_enabled",
				Field:    roomModel.FieldEnabled,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				ArgName:  "guests",
				Field:    roomModel.FieldCapacity,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    criteria.Guests,
				Table:    roomModel.TableName,
			},
		},
	}

	if criteria.CityKey != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    hotelModel.FieldCityKey,
			Operator: gDto.FilterOperatorEq,
			Value:    criteria.CityKey,
			Table:    hotelModel.TableName,
		})
	}

	if criteria.Stay != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    roomModel.FieldID,
			Operator: gDto.FilterPlainQuery,
			Value:    overlapQuery,
			Args: map[string]any{
				"stay_check_in":  criteria.Stay.CheckIn,
				"stay_check_out": criteria.Stay.CheckOut,
			},
		})
	}

	return group
}
