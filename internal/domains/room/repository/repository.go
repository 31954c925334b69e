package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelbooking/infras/otel"
	"hotelbooking/infras/postgres"
	"hotelbooking/internal/domains/room/model"
	gDto "hotelbooking/shared/dto"
	gRepo "hotelbooking/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

var SortableFields = []string{model.FieldName, model.FieldBasePrice, model.FieldCapacity, "created_at"}

// ListFilter narrows room listings. AgentID limits rooms to the agent's hotels and
// PublicOnly to rooms of enabled hotels.
type ListFilter struct {
	HotelID    string
	RoomType   string
	Enabled    *bool
	AgentID    string
	PublicOnly bool
}

func (f ListFilter) Build() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.HotelID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    f.HotelID,
			Table:    model.TableName,
		})
	}

	if f.RoomType != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldRoomType,
			Operator: gDto.FilterOperatorEq,
			Value:    f.RoomType,
			Table:    model.TableName,
		})
	}

	if f.Enabled != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldEnabled,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.Enabled,
			Table:    model.TableName,
		})
	}

	if f.AgentID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterPlainQuery,
			Value:    "rooms.hotel_id IN (SELECT hotels.id FROM hotels WHERE hotels.agent_id = :room_agent_id)",
			Args:     map[string]any{"room_agent_id": f.AgentID},
		})
	}

	if f.PublicOnly {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterPlainQuery,
			Value:    "rooms.hotel_id IN (SELECT hotels.id FROM hotels WHERE hotels.enabled)",
		})
	}

	return group
}
