package room

import (
	"net/http"

	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/room/model"
	"hotelbooking/internal/domains/room/model/dto"
	"hotelbooking/internal/domains/room/repository"
	"hotelbooking/internal/domains/room/service"
	"hotelbooking/shared"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/validator"
	"hotelbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Patch("/{id}/enabled", handler.SetRoomEnabled)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Add a room to a hotel managed by the calling agent.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.RoomResponse] "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRooms lists rooms. Agents see the rooms of their own hotels, everyone
// else sees enabled rooms of enabled hotels.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel"
// @Param room_type query string false "Filter by room type"
// @Param enabled query boolean false "Filter by enabled flag, agents only"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filter := repository.ListFilter{
		HotelID:  query.Get(model.FieldHotelID),
		RoomType: query.Get(model.FieldRoomType),
		Enabled:  shared.ConvertStringToBool(query.Get(model.FieldEnabled)),
	}

	if filter.HotelID != "" {
		if err := validator.ValidateVar(filter.HotelID, "uuid"); err != nil {
			response.WithError(w, err)

			return
		}
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	if rooms.TotalData == 0 {
		response.WithPage(w, http.StatusOK, "no rooms found", rooms)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates the room details.
// @Summary Update a room
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// SetRoomEnabled toggles whether the room can be booked.
// @Summary Enable or disable a room
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body gDto.SetEnabledRequest true "Enabled flag"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/enabled [patch]
// @Security BearerAuth
func (handler *Handler) SetRoomEnabled(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetRoomEnabled")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	req := gDto.SetEnabledRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetEnabled(ctx, id, *req.Enabled); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to toggle room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}
