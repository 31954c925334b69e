package hotel

import (
	"net/http"

	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/hotel/model"
	"hotelbooking/internal/domains/hotel/model/dto"
	"hotelbooking/internal/domains/hotel/repository"
	"hotelbooking/internal/domains/hotel/service"
	roomService "hotelbooking/internal/domains/room/service"
	"hotelbooking/shared"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/validator"
	"hotelbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formImages = "images"

type Handler struct {
	service service.Hotel
	rooms   roomService.Room
	otel    otel.Otel
}

func New(service service.Hotel, rooms roomService.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		rooms:   rooms,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hotels", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateHotel)
		routerGroup.Get("/", handler.GetHotels)
		routerGroup.Get("/mine", handler.GetMyHotels)
		routerGroup.Get("/{id}", handler.GetHotelByID)
		routerGroup.Get("/{id}/rooms", handler.GetHotelRooms)
		routerGroup.Patch("/{id}", handler.UpdateHotel)
		routerGroup.Patch("/{id}/enabled", handler.SetHotelEnabled)
	})
}

// CreateHotel handles the creation of a new hotel.
// @Summary Create a new hotel
// @Description Create a hotel owned by the calling agent. Up to five images may be attached.
// @Tags Hotel
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Hotel name"
// @Param description formData string false "Description"
// @Param address formData string false "Street address"
// @Param city formData string true "City"
// @Param enabled formData boolean false "Accepting reservations"
// @Param images formData file false "Hotel images"
// @Success 201 {object} response.Data[dto.HotelResponse] "Hotel created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotel")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateHotelRequest{
		Name:        request.FormValue(model.FieldName),
		Description: request.FormValue(model.FieldDescription),
		Address:     request.FormValue(model.FieldAddress),
		City:        request.FormValue(model.FieldCity),
		Enabled:     shared.ConvertStringToBool(request.FormValue(model.FieldEnabled)),
		Images:      request.MultipartForm.File[formImages],
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Hotel created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetHotels lists enabled hotels.
// @Summary List hotels
// @Description List hotels accepting reservations, optionally by name or city.
// @Tags Hotel
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param city query string false "Filter by city, case and accent insensitive"
// @Param agent_id query string false "Filter by owning agent"
// @Success 200 {object} response.Data[dto.GetHotelsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/hotels [get]
func (handler *Handler) GetHotels(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	filter := repository.ListFilter{
		Name:    query.Get(model.FieldName),
		City:    query.Get(model.FieldCity),
		AgentID: query.Get(model.FieldAgentID),
		Enabled: shared.ConvertStringToBool(query.Get(model.FieldEnabled)),
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotels")

		response.WithError(writer, err)

		return
	}

	if res.TotalData == 0 {
		response.WithPage(writer, http.StatusOK, "no hotels found", res)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMyHotels lists the hotels managed by the calling agent, enabled or not.
// @Summary List my hotels
// @Tags Hotel
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetHotelsResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyHotels(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.ListMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get agent hotels")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetHotelByID retrieves a hotel by its ID.
// @Summary Get a hotel by ID
// @Tags Hotel
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Data[dto.HotelResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [get]
func (handler *Handler) GetHotelByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hotel_id", id).Msg("failed to get hotel")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetHotelRooms lists the rooms of a hotel.
// @Summary List rooms of a hotel
// @Description Travelers see enabled rooms of enabled hotels; the owning agent sees every room.
// @Tags Hotel
// @Produce json
// @Param id path string true "Hotel ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} object "Rooms of the hotel"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/rooms [get]
func (handler *Handler) GetHotelRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelRooms")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.rooms.ListByHotel(ctx, queryParams, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hotel_id", id).Msg("failed to get hotel rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateHotel updates the hotel details. Only the owning agent may do so.
// @Summary Update a hotel
// @Tags Hotel
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Hotel ID"
// @Param name formData string false "Hotel name"
// @Param description formData string false "Description"
// @Param address formData string false "Street address"
// @Param city formData string false "City"
// @Param images formData file false "Replacement images"
// @Success 200 {object} response.Message "Hotel updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHotel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotel")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.UpdateHotelRequest{
		Name:        request.FormValue(model.FieldName),
		Description: optionalFormValue(request, model.FieldDescription),
		Address:     optionalFormValue(request, model.FieldAddress),
		City:        request.FormValue(model.FieldCity),
		Images:      request.MultipartForm.File[formImages],
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hotel_id", id).Msg("failed to update hotel")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Hotel updated successfully")
}

// SetHotelEnabled toggles whether the hotel accepts reservations.
// @Summary Enable or disable a hotel
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body gDto.SetEnabledRequest true "Enabled flag"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/enabled [patch]
// @Security BearerAuth
func (handler *Handler) SetHotelEnabled(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetHotelEnabled")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	req := gDto.SetEnabledRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SetEnabled(ctx, id, *req.Enabled); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("hotel_id", id).Msg("failed to toggle hotel")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Hotel updated successfully")
}

func optionalFormValue(request *http.Request, key string) *string {
	values, ok := request.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}
