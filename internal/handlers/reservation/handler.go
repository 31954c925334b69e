package reservation

import (
	"net/http"

	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/reservation/model"
	"hotelbooking/internal/domains/reservation/model/dto"
	"hotelbooking/internal/domains/reservation/repository"
	"hotelbooking/internal/domains/reservation/service"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/validator"
	"hotelbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/mine", handler.GetMyReservations)
		routerGroup.Get("/agent", handler.GetAgentReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Post("/{id}/cancel", handler.CancelReservation)
		routerGroup.Post("/{id}/confirm", handler.ConfirmReservation)
	})
}

// CreateReservation books a room.
// @Summary Book a room
// @Description Writes the reservation, its guests and the emergency contact in one transaction.
// @Description A repeated Idempotency-Key returns the reservation created by the first request.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated key for safe retries"
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	req.IdempotencyKey = r.Header.Get(constant.RequestHeaderIdempotencyKey)
	if err := validator.ValidateVar(req.IdempotencyKey, "omitempty,max=255"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetMyReservations lists the reservations of the calling traveler.
// @Summary List my reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "pending, confirmed or cancelled"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.ListMine(ctx, queryParams, r.URL.Query().Get(model.FieldStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get traveler reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAgentReservations lists the reservations made on the calling agent's hotels.
// @Summary List reservations of my hotels
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel"
// @Param status query string false "pending, confirmed or cancelled"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/agent [get]
// @Security BearerAuth
func (handler *Handler) GetAgentReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAgentReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filter := repository.ListFilter{
		HotelID: query.Get(model.FieldHotelID),
		Status:  query.Get(model.FieldStatus),
	}

	if filter.HotelID != "" {
		if err := validator.ValidateVar(filter.HotelID, "uuid"); err != nil {
			response.WithError(w, err)

			return
		}
	}

	res, err := handler.service.ListForAgent(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get agent reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReservationByID retrieves a reservation with its guests and emergency contact.
// @Summary Get a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelReservation cancels a pending or confirmed reservation.
// @Summary Cancel a reservation
// @Description The booking traveler or the agent owning the hotel may cancel.
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled")

	response.WithJSON(w, http.StatusOK, res)
}

// ConfirmReservation confirms a pending reservation.
// @Summary Confirm a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Confirm(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to confirm reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation confirmed")

	response.WithJSON(w, http.StatusOK, res)
}
