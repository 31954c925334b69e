package availability

import (
	"net/http"
	"strconv"

	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/availability/model/dto"
	"hotelbooking/internal/domains/availability/service"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/validator"
	"hotelbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryCity     = "city"
	queryCheckIn  = "check_in"
	queryCheckOut = "check_out"
	queryGuests   = "guests"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/rooms", handler.SearchRooms)
		routerGroup.Get("/hotels", handler.SearchHotels)
	})
}

// SearchRooms lists the rooms that can be booked for the search.
// @Summary Search available rooms
// @Description Rooms of enabled hotels in the city that fit the guests and have no live reservation overlapping the dates.
// @Tags Availability
// @Produce json
// @Param city query string false "City, case and accent insensitive"
// @Param check_in query string false "Check-in date, YYYY-MM-DD"
// @Param check_out query string false "Check-out date, YYYY-MM-DD"
// @Param guests query integer true "Number of guests"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.SearchResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/rooms [get]
func (handler *Handler) SearchRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchRooms")
	defer scope.End()

	req := searchRequest(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid search request")

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.Search(ctx, req, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search rooms")

		response.WithError(w, err)

		return
	}

	if res.Empty() {
		response.WithPage(w, http.StatusOK, "no rooms available for this search", res)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SearchHotels groups the available rooms by hotel.
// @Summary Search available hotels
// @Tags Availability
// @Produce json
// @Param city query string false "City, case and accent insensitive"
// @Param check_in query string false "Check-in date, YYYY-MM-DD"
// @Param check_out query string false "Check-out date, YYYY-MM-DD"
// @Param guests query integer true "Number of guests"
// @Success 200 {object} response.Data[dto.SearchHotelsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/hotels [get]
func (handler *Handler) SearchHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchHotels")
	defer scope.End()

	req := searchRequest(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid search request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SearchHotels(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search hotels")

		response.WithError(w, err)

		return
	}

	if res.Empty() {
		response.WithPage(w, http.StatusOK, "no hotels available for this search", res)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func searchRequest(r *http.Request) dto.SearchRequest {
	query := r.URL.Query()

	// a malformed count stays zero and fails validation
	guests, _ := strconv.Atoi(query.Get(queryGuests))

	return dto.SearchRequest{
		City:     query.Get(queryCity),
		CheckIn:  query.Get(queryCheckIn),
		CheckOut: query.Get(queryCheckOut),
		Guests:   guests,
	}
}
