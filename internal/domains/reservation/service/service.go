package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"hotelbooking/config"
	"hotelbooking/infras/metrics"
	"hotelbooking/infras/otel"
	"hotelbooking/infras/postgres"
	hotelModel "hotelbooking/internal/domains/hotel/model"
	hotelRepo "hotelbooking/internal/domains/hotel/repository"
	"hotelbooking/internal/domains/reservation/model"
	"hotelbooking/internal/domains/reservation/model/dto"
	"hotelbooking/internal/domains/reservation/repository"
	roomModel "hotelbooking/internal/domains/room/model"
	roomRepo "hotelbooking/internal/domains/room/repository"
	"hotelbooking/internal/events"
	"hotelbooking/shared"
	"hotelbooking/shared/cache"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"
	"hotelbooking/shared/stay"
	"hotelbooking/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	cacheGetReservation    = shared.BuildCacheKey(constant.CacheReservation, "get")
	cacheGetAllReservation = shared.BuildCacheKey(constant.CacheReservation, "gets")
	cacheIdempotency       = shared.BuildCacheKey(constant.CacheReservation, "idempotency")
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	ListMine(ctx context.Context, req gDto.QueryParams, status string) (dto.GetReservationsResponse, error)
	ListForAgent(ctx context.Context, req gDto.QueryParams, filter repository.ListFilter) (dto.GetReservationsResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
	Confirm(ctx context.Context, id string) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo       repository.Reservation
	guests     repository.Guest
	contacts   repository.EmergencyContact
	rooms      roomRepo.Room
	hotels     hotelRepo.Hotel
	transactor postgres.Transactor
	publisher  events.Publisher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	metrics    metrics.Metrics
}

func New(
	repo repository.Reservation,
	guests repository.Guest,
	contacts repository.EmergencyContact,
	rooms roomRepo.Room,
	hotels hotelRepo.Hotel,
	transactor postgres.Transactor,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	metrics metrics.Metrics,
) Reservation {
	return &serviceImpl{
		repo:       repo,
		guests:     guests,
		contacts:   contacts,
		rooms:      rooms,
		hotels:     hotels,
		transactor: transactor,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		metrics:    metrics,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := session.FromContext(ctx)
	if !current.Is(role.Traveler) {
		return res, failure.Forbidden("only travelers can book rooms")
	}

	idempotencyKey := constant.Empty
	if req.IdempotencyKey != constant.Empty {
		idempotencyKey = shared.BuildCacheKey(cacheIdempotency, current.UserID, req.IdempotencyKey)

		if cacheErr := s.cache.Get(ctx, idempotencyKey, &res); cacheErr == nil {
			log.Info().Str("reservation_id", res.ID).Msg("replaying reservation for idempotency key")

			return res, nil
		}
	}

	dates, err := req.Stay()
	if err != nil {
		return res, err
	}

	if dates.StartsBefore(timezone.Now()) {
		return res, failure.BadRequest(stay.ErrPastCheckIn)
	}

	guests := req.GuestCount()
	if guests < len(req.GuestRecords) {
		return res, failure.BadRequestFromString("guests cannot be fewer than guest_records")
	}

	room, err := s.bookableRoom(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	if !room.Fits(guests) {
		return res, failure.BadRequestFromString(fmt.Sprintf("room sleeps at most %d guests", room.Capacity))
	}

	booked, err := s.repo.Exist(ctx, repository.OverlapFilter(room.ID, dates))
	if err != nil {
		log.Error().Err(err).Msg("failed to check overlapping reservations")

		return res, fmt.Errorf("failed to check overlapping reservations: %w", err)
	}

	if booked {
		s.metrics.ObserveReservation(metrics.ReservationEventConflict)

		return res, failure.Conflict("room is already booked for the requested dates")
	}

	reservation, guestModels, contact, err := req.ToModels(current.UserID, room, dates, s.defaultStatus())
	if err != nil {
		return res, err
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, reservation); err != nil {
			return fmt.Errorf("failed to insert reservation: %w", err)
		}

		if err := s.guests.InsertBulkTx(ctx, tx, guestModels); err != nil {
			return fmt.Errorf("failed to insert guests: %w", err)
		}

		if err := s.contacts.InsertTx(ctx, tx, contact); err != nil {
			return fmt.Errorf("failed to insert emergency contact: %w", err)
		}

		return nil
	})
	if err != nil {
		if failure.GetCode(err) == http.StatusConflict {
			s.metrics.ObserveReservation(metrics.ReservationEventConflict)
		} else {
			s.metrics.ObserveReservation(metrics.ReservationEventFailed)
		}

		log.Error().Err(err).Str("room_id", room.ID).Str("stay", dates.String()).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	res.FromModel(reservation)
	res.WithDetails(guestModels, contact)

	scope.SetAttributes(map[string]any{
		"reservation.id":     reservation.ID,
		"reservation.status": reservation.Status,
	})
	s.metrics.ObserveReservation(metrics.ReservationEventCreated)

	// the replay must be readable before the response reaches the client
	if idempotencyKey != constant.Empty {
		ttl := s.cfg.App.Booking.IdempotencyTTLSeconds
		if cacheErr := s.cache.Save(context.WithoutCancel(ctx), idempotencyKey, res, ttl); cacheErr != nil {
			log.Error().Err(cacheErr).Msg("failed to remember idempotency key")
		}
	}

	go func() {
		if err := s.publisher.ReservationCreated(context.WithoutCancel(ctx), toEvent(reservation)); err != nil {
			log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to publish reservation event")
		}
	}()

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

// bookableRoom loads a room that is enabled and belongs to an enabled hotel.
func (s *serviceImpl) bookableRoom(ctx context.Context, roomID string) (roomModel.Room, error) {
	room, err := s.rooms.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.BadRequestFromString("room does not exist")
	}

	if !room.Enabled {
		return room, failure.BadRequestFromString("room is not available for booking")
	}

	hotel, err := s.hotels.Get(ctx, shared.FilterByID(room.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return room, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || !hotel.Enabled {
		return room, failure.BadRequestFromString("hotel is not accepting reservations")
	}

	return room, nil
}

func (s *serviceImpl) defaultStatus() string {
	status := s.cfg.App.Booking.DefaultStatus
	if status == model.StatusPending {
		return model.StatusPending
	}

	return model.StatusConfirmed
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.visible(ctx, id)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil && res.Status == reservation.Status {
		return res, nil
	}

	var (
		guests  []model.Guest
		contact model.EmergencyContact
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		guests, err = s.guests.GetAll(groupCtx, repository.GuestOrder, repository.ByReservation(id, model.GuestTableName))
		if err != nil {
			return fmt.Errorf("failed to get guests: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		var err error

		contact, err = s.contacts.Get(groupCtx, repository.ByReservation(id, model.EmergencyContactTableName))
		if err != nil {
			return fmt.Errorf("failed to get emergency contact: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to load reservation details")

		return res, err
	}

	res = dto.ReservationResponse{}
	res.FromModel(reservation)
	res.WithDetails(guests, contact)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// visible loads a reservation the session may see: the traveler who booked it or
// the agent owning its hotel. Anyone else gets NotFound.
func (s *serviceImpl) visible(ctx context.Context, id string) (reservation model.Reservation, err error) {
	current := session.FromContext(ctx)
	if !current.Authenticated() {
		return reservation, failure.Unauthorized("login required")
	}

	reservation, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found")
	}

	switch current.Role {
	case role.Traveler:
		if reservation.TravelerID == current.UserID {
			return reservation, nil
		}
	case role.Agent:
		owned, err := s.agentOwnsHotel(ctx, current.UserID, reservation.HotelID)
		if err != nil {
			return model.Reservation{}, err
		}

		if owned {
			return reservation, nil
		}
	case role.Unauthenticated:
	}

	return model.Reservation{}, failure.NotFound("reservation not found")
}

func (s *serviceImpl) agentOwnsHotel(ctx context.Context, agentID, hotelID string) (bool, error) {
	hotel, err := s.hotels.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return false, fmt.Errorf("failed to get hotel: %w", err)
	}

	return hotel.ID != constant.Empty && hotel.OwnedBy(agentID), nil
}

func (s *serviceImpl) ListMine(ctx context.Context, req gDto.QueryParams, status string) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := session.FromContext(ctx)
	if !current.Is(role.Traveler) {
		return res, failure.Forbidden("only travelers have bookings")
	}

	if status != constant.Empty && !model.IsStatus(status) {
		return res, failure.BadRequestFromString("status must be one of pending confirmed cancelled")
	}

	req.RestrictSort(repository.SortableFields, model.FieldCheckIn, gDto.SortDirDesc)

	return s.list(ctx, req, repository.ListFilter{TravelerID: current.UserID, Status: status})
}

func (s *serviceImpl) ListForAgent(ctx context.Context, req gDto.QueryParams, filter repository.ListFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForAgent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := session.FromContext(ctx)
	if !current.Is(role.Agent) {
		return res, failure.Forbidden("only agents list hotel reservations")
	}

	if filter.Status != constant.Empty && !model.IsStatus(filter.Status) {
		return res, failure.BadRequestFromString("status must be one of pending confirmed cancelled")
	}

	filter.AgentID = current.UserID
	filter.TravelerID = constant.Empty

	req.RestrictSort(repository.SortableFields, model.FieldCheckIn, gDto.SortDirAsc)

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, listFilter repository.ListFilter) (res dto.GetReservationsResponse, err error) {
	filter := listFilter.Build()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	var (
		total  int
		models []model.Reservation
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		total, err = s.repo.Count(groupCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to count reservations: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		var err error

		models, err = s.repo.GetAll(groupCtx, req, filter)
		if err != nil {
			return fmt.Errorf("failed to get reservations: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to list reservations")

		return res, err
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.visible(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.transition(ctx, &reservation, model.StatusCancelled); err != nil {
		return res, err
	}

	s.metrics.ObserveReservation(metrics.ReservationEventCancelled)

	go func() {
		if err := s.publisher.ReservationCancelled(context.WithoutCancel(ctx), toEvent(reservation)); err != nil {
			log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to publish reservation event")
		}
	}()

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !session.FromContext(ctx).Is(role.Agent) {
		return res, failure.Forbidden("only the hotel's agent can confirm reservations")
	}

	reservation, err := s.visible(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.transition(ctx, &reservation, model.StatusConfirmed); err != nil {
		return res, err
	}

	s.metrics.ObserveReservation(metrics.ReservationEventConfirmed)

	go func() {
		if err := s.publisher.ReservationConfirmed(context.WithoutCancel(ctx), toEvent(reservation)); err != nil {
			log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to publish reservation event")
		}
	}()

	res.FromModel(reservation)

	return res, nil
}

// transition moves reservation to status. The update is guarded on the current
// status; when another writer got there first no row matches and it is a Conflict.
func (s *serviceImpl) transition(ctx context.Context, reservation *model.Reservation, status string) error {
	if !reservation.CanTransitionTo(status) {
		return failure.Conflict(fmt.Sprintf("reservation is %s and cannot become %s", reservation.Status, status))
	}

	current := session.FromContext(ctx)
	filter := shared.FilterByID(reservation.ID, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  "current_status",
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    reservation.Status,
		Table:    model.TableName,
	})

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: current.UserID,
	}

	affected, err := s.repo.UpdateAffected(ctx, updatedFields, filter)
	if err != nil {
		log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	if affected == 0 {
		log.Warn().Str("reservation_id", reservation.ID).Str("status", reservation.Status).Msg("reservation changed before status update")
		s.invalidate(ctx, reservation.ID)

		return failure.Conflict("reservation changed, reload")
	}

	reservation.Status = status
	reservation.ModifiedAt = now
	reservation.ModifiedBy = current.UserID

	s.invalidate(ctx, reservation.ID)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete reservation cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, constant.CacheAvailability)
	}()
}

func toEvent(r model.Reservation) events.Reservation {
	return events.Reservation{
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		HotelID:       r.HotelID,
		TravelerID:    r.TravelerID,
		CheckIn:       r.CheckIn.Format(constant.DateOnlyFormat),
		CheckOut:      r.CheckOut.Format(constant.DateOnlyFormat),
		Guests:        r.Guests,
		TotalAmount:   r.TotalAmount,
		Status:        r.Status,
		OccurredAt:    r.ModifiedAt,
	}
}
