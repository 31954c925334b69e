package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/config"
	"hotelbooking/infras/metrics"
	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/availability/model"
	"hotelbooking/internal/domains/availability/model/dto"
	"hotelbooking/internal/domains/availability/repository"
	"hotelbooking/shared"
	"hotelbooking/shared/cache"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	kindRooms  = "rooms"
	kindHotels = "hotels"

	// maxGroupedRooms caps the rooms read when grouping results by hotel.
	maxGroupedRooms = 500
)

var (
	cacheSearchRooms  = shared.BuildCacheKey(constant.CacheAvailability, kindRooms)
	cacheSearchHotels = shared.BuildCacheKey(constant.CacheAvailability, kindHotels)
)

type Availability interface {
	Search(ctx context.Context, req dto.SearchRequest, params gDto.QueryParams) (dto.SearchResponse, error)
	SearchHotels(ctx context.Context, req dto.SearchRequest) (dto.SearchHotelsResponse, error)
}

type serviceImpl struct {
	repo    repository.Availability
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	metrics metrics.Metrics
}

func New(repo repository.Availability, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, metrics metrics.Metrics) Availability {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		metrics: metrics,
	}
}

// Search returns the bookable rooms in insertion order. No match is an empty page, not an error.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchRequest, params gDto.QueryParams) (res dto.SearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	started := time.Now()

	criteria, err := req.ToCriteria()
	if err != nil {
		return res, err
	}

	scope.SetAttributes(map[string]any{"search.city_key": criteria.CityKey, "search.guests": criteria.Guests})

	filter := repository.CriteriaFilter(criteria)
	page := repository.InsertionOrder
	page.Page, page.Limit = params.Page, params.Limit

	cacheKey := shared.BuildCacheKeyWithQuery(cacheSearchRooms, page, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		s.metrics.ObserveAvailability(kindRooms, res.TotalData, time.Since(started))

		return res, nil
	}

	var (
		total int
		rooms []model.AvailableRoom
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		count, err := s.repo.Count(groupCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to count available rooms: %w", err)
		}

		total = count

		return nil
	})

	group.Go(func() error {
		found, err := s.repo.GetAll(groupCtx, page, filter)
		if err != nil {
			return fmt.Errorf("failed to get available rooms: %w", err)
		}

		rooms = found

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to search availability")

		return res, err
	}

	res.FromModels(rooms, criteria.Stay, total, page.Limit)
	s.metrics.ObserveAvailability(kindRooms, total, time.Since(started))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

// SearchHotels applies the same rule and groups the rooms by hotel.
func (s *serviceImpl) SearchHotels(ctx context.Context, req dto.SearchRequest) (res dto.SearchHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchHotels")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	started := time.Now()

	criteria, err := req.ToCriteria()
	if err != nil {
		return res, err
	}

	filter := repository.CriteriaFilter(criteria)
	page := repository.InsertionOrder
	page.Limit = maxGroupedRooms

	cacheKey := shared.BuildCacheKeyWithQuery(cacheSearchHotels, page, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		s.metrics.ObserveAvailability(kindHotels, len(res.Hotels), time.Since(started))

		return res, nil
	}

	rooms, err := s.repo.GetAll(ctx, page, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available rooms")

		return res, fmt.Errorf("failed to get available rooms: %w", err)
	}

	if len(rooms) == maxGroupedRooms {
		log.Warn().Int("limit", maxGroupedRooms).Str("city_key", criteria.CityKey).Msg("hotel search truncated")
	}

	res.FromModels(rooms, criteria.Stay)
	s.metrics.ObserveAvailability(kindHotels, len(res.Hotels), time.Since(started))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel availability to cache")
		}
	}()

	return res, nil
}
