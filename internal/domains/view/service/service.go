package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/view/model"
	"hotelbooking/internal/domains/view/model/dto"
	"hotelbooking/shared/constant"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/session"

	"github.com/rs/zerolog/log"
)

type View interface {
	Dispatch(ctx context.Context, name string) (dto.DecisionResponse, error)
	Navigation(ctx context.Context) dto.NavigationResponse
}

type serviceImpl struct {
	otel otel.Otel
}

func New(otel otel.Otel) View {
	return &serviceImpl{otel: otel}
}

func (s *serviceImpl) Dispatch(ctx context.Context, name string) (res dto.DecisionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dispatch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	view, ok := model.Lookup(name)
	if !ok {
		return res, failure.NotFound("view not found")
	}

	current := session.FromContext(ctx).Role
	decision := model.Decide(view, current)

	if decision.Action == model.ActionRedirect {
		log.Debug().Str("view", name).Str("role", current.String()).Str("redirect_to", decision.RedirectTo).Msg("view denied")
	}

	res.FromModel(decision, current)

	return res, nil
}

func (s *serviceImpl) Navigation(ctx context.Context) (res dto.NavigationResponse) {
	res.FromRegistry(model.Registry, session.FromContext(ctx).Role)

	return res
}
