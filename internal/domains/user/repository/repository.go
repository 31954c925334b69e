package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"strings"

	"hotelbooking/infras/otel"
	"hotelbooking/infras/postgres"
	"hotelbooking/internal/domains/user/model"
	gDto "hotelbooking/shared/dto"
	gRepo "hotelbooking/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// GetByEmail matches case-insensitively, mirroring the unique index on LOWER(email).
func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.Get(ctx, EmailFilter(email))
}

func EmailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterPlainQuery,
				Value:    "LOWER(users.email) = LOWER(:email)",
				Args:     map[string]any{model.FieldEmail: strings.TrimSpace(email)},
			},
		},
	}
}
