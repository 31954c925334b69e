package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelbooking/infras/otel"
	"hotelbooking/infras/postgres"
	"hotelbooking/internal/domains/hotel/model"
	"hotelbooking/shared/citykey"
	gDto "hotelbooking/shared/dto"
	gRepo "hotelbooking/shared/repository"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// SortableFields are the columns a client may order hotel listings by.
var SortableFields = []string{model.FieldName, model.FieldCity, "created_at", "modified_at"}

type ListFilter struct {
	Name    string
	City    string
	AgentID string
	Enabled *bool
}

// Build turns the listing filter into a filter group. Unset fields do not restrict.
func (f ListFilter) Build() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Name != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    f.Name,
			Table:    model.TableName,
		})
	}

	if key := citykey.Normalize(f.City); key != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldCityKey,
			Operator: gDto.FilterOperatorEq,
			Value:    key,
			Table:    model.TableName,
		})
	}

	if f.AgentID != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldAgentID,
			Operator: gDto.FilterOperatorEq,
			Value:    f.AgentID,
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

	return group
}
