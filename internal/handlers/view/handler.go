package view

import (
	"net/http"

	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/view/service"
	"hotelbooking/shared/constant"
	"hotelbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.View
	otel    otel.Otel
}

func New(service service.View, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/views", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNavigation)
		routerGroup.Get("/{name}", handler.DispatchView)
	})
}

// GetNavigation lists every view and whether the caller may open it.
// @Summary Navigation for the current role
// @Tags View
// @Produce json
// @Success 200 {object} response.Data[dto.NavigationResponse]
// @Router /v1/views [get]
// @Security BearerAuth
func (handler *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNavigation")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Navigation(ctx))
}

// DispatchView decides whether the caller renders a view or is redirected.
// @Summary Dispatch a view
// @Description Anonymous callers are sent to login, callers with the wrong role to their landing view.
// @Tags View
// @Produce json
// @Param name path string true "View name"
// @Success 200 {object} response.Data[dto.DecisionResponse]
// @Failure 404 {object} response.Error
// @Router /v1/views/{name} [get]
// @Security BearerAuth
func (handler *Handler) DispatchView(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DispatchView")
	defer scope.End()

	name := chi.URLParam(r, constant.RequestParamName)

	res, err := handler.service.Dispatch(ctx, name)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("view", name).Msg("failed to dispatch view")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
