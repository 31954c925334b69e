package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"hotelbooking/config"
	"hotelbooking/infras/otel"
	hotelService "hotelbooking/internal/domains/hotel/service"
	"hotelbooking/internal/domains/room/model"
	"hotelbooking/internal/domains/room/model/dto"
	"hotelbooking/internal/domains/room/repository"
	"hotelbooking/shared"
	"hotelbooking/shared/cache"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"

	"github.com/rs/zerolog/log"
)

var (
	cacheGetRoom    = shared.BuildCacheKey(constant.CacheRoom, "get")
	cacheGetAllRoom = shared.BuildCacheKey(constant.CacheRoom, "gets")
	cacheCountRoom  = shared.BuildCacheKey(constant.CacheRoom, "count")
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter repository.ListFilter) (dto.GetRoomsResponse, error)
	ListByHotel(ctx context.Context, req gDto.QueryParams, hotelID string) (dto.GetRoomsResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	SetEnabled(ctx context.Context, id string, enabled bool) error
}

type serviceImpl struct {
	repo   repository.Room
	hotels hotelService.Hotel
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(repo repository.Room, hotels hotelService.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:   repo,
		hotels: hotels,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.hotels.Owned(ctx, req.HotelID); err != nil {
		return res, err
	}

	room := req.ToModel(session.FromContext(ctx).UserID)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	scope.SetAttributes(map[string]any{"room.id": room.ID, "hotel.id": room.HotelID})
	res.FromModel(room)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return res, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return res, failure.NotFound("room not found")
		}

		res.FromModel(room)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save room to cache")
			}
		}()
	}

	// the hotel lookup applies the same visibility rules as the hotel itself
	hotel, err := s.hotels.Get(ctx, res.HotelID)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return dto.RoomResponse{}, failure.NotFound("room not found")
		}

		return dto.RoomResponse{}, err
	}

	if !res.Enabled && hotel.AgentID != session.FromContext(ctx).UserID {
		return dto.RoomResponse{}, failure.NotFound("room not found")
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter repository.ListFilter) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := session.FromContext(ctx)
	if current.Is(role.Agent) {
		filter.AgentID = current.UserID
	} else {
		enabled := true
		filter.Enabled = &enabled
		filter.AgentID = constant.Empty
		filter.PublicOnly = true
	}

	req.RestrictSort(repository.SortableFields, constant.FieldCreatedAt, gDto.SortDirAsc)

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) ListByHotel(ctx context.Context, req gDto.QueryParams, hotelID string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotel, err := s.hotels.Get(ctx, hotelID)
	if err != nil {
		return res, err
	}

	filter := repository.ListFilter{HotelID: hotelID}
	if hotel.AgentID != session.FromContext(ctx).UserID {
		enabled := true
		filter.Enabled = &enabled
	}

	req.RestrictSort(repository.SortableFields, constant.FieldCreatedAt, gDto.SortDirAsc)

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, listFilter repository.ListFilter) (res dto.GetRoomsResponse, err error) {
	filter := listFilter.Build()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

// owned loads the room and checks that the current agent manages its hotel.
func (s *serviceImpl) owned(ctx context.Context, id string) (model.Room, error) {
	if !session.FromContext(ctx).Is(role.Agent) {
		return model.Room{}, failure.Forbidden("only agents manage rooms")
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found")
	}

	if _, err = s.hotels.Owned(ctx, room.HotelID); err != nil {
		return model.Room{}, err
	}

	return room, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	if _, err = s.owned(ctx, id); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, session.FromContext(ctx).UserID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetEnabled(ctx context.Context, id string, enabled bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetEnabled")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.owned(ctx, id)
	if err != nil {
		return err
	}

	if room.Enabled == enabled {
		return nil
	}

	updatedFields := shared.TransformFields(gDto.SetEnabledRequest{Enabled: &enabled}, session.FromContext(ctx).UserID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to toggle room")

		return fmt.Errorf("failed to toggle room: %w", err)
	}

	scope.SetAttributes(map[string]any{"room.id": id, "room.enabled": enabled})
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, constant.CacheAvailability)
	}()
}
