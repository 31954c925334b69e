package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"

	"hotelbooking/config"
	"hotelbooking/infras/otel"
	"hotelbooking/infras/s3"
	"hotelbooking/internal/domains/hotel/model"
	"hotelbooking/internal/domains/hotel/model/dto"
	"hotelbooking/internal/domains/hotel/repository"
	"hotelbooking/shared"
	"hotelbooking/shared/cache"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var (
	cacheGetHotel    = shared.BuildCacheKey(constant.CacheHotel, "get")
	cacheGetAllHotel = shared.BuildCacheKey(constant.CacheHotel, "gets")
	cacheCountHotel  = shared.BuildCacheKey(constant.CacheHotel, "count")
)

type Hotel interface {
	Create(ctx context.Context, req dto.CreateHotelRequest) (dto.HotelResponse, error)
	Get(ctx context.Context, id string) (dto.HotelResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter repository.ListFilter) (dto.GetHotelsResponse, error)
	ListMine(ctx context.Context, req gDto.QueryParams) (dto.GetHotelsResponse, error)
	Update(ctx context.Context, req dto.UpdateHotelRequest, id string) error
	SetEnabled(ctx context.Context, id string, enabled bool) error
	// Owned loads a hotel and fails unless the current agent manages it.
	Owned(ctx context.Context, id string) (model.Hotel, error)
}

type serviceImpl struct {
	repo  repository.Hotel
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Hotel {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := session.FromContext(ctx)
	if !current.Is(role.Agent) {
		return res, failure.Forbidden("only agents can create hotels")
	}

	imageURLs, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return res, err
	}

	hotel := req.ToModel(current.UserID, imageURLs)

	if err = s.repo.Insert(ctx, hotel); err != nil {
		log.Error().Err(err).Msg("failed to create hotel")
		s.deleteImages(ctx, imageURLs)

		return res, fmt.Errorf("failed to create hotel: %w", err)
	}

	scope.SetAttribute("hotel.id", hotel.ID)
	res.FromModel(hotel)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get hotel")

			return res, fmt.Errorf("failed to get hotel: %w", err)
		}

		if hotel.ID == constant.Empty {
			return res, failure.NotFound("hotel not found")
		}

		res.FromModel(hotel)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save hotel to cache")
			}
		}()
	}

	// disabled hotels are only visible to their owner
	if !res.Enabled && session.FromContext(ctx).UserID != res.AgentID {
		return dto.HotelResponse{}, failure.NotFound("hotel not found")
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter repository.ListFilter) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	// disabled hotels are listed only to the agent filtering on their own id
	current := session.FromContext(ctx)
	if !current.Is(role.Agent) || filter.AgentID != current.UserID {
		enabled := true
		filter.Enabled = &enabled
	}

	req.RestrictSort(repository.SortableFields, model.FieldName, gDto.SortDirAsc)

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) ListMine(ctx context.Context, req gDto.QueryParams) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := session.FromContext(ctx)
	if !current.Is(role.Agent) {
		return res, failure.Forbidden("only agents manage hotels")
	}

	req.RestrictSort(repository.SortableFields, constant.FieldCreatedAt, gDto.SortDirDesc)

	return s.list(ctx, req, repository.ListFilter{AgentID: current.UserID})
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, listFilter repository.ListFilter) (res dto.GetHotelsResponse, err error) {
	filter := listFilter.Build()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHotel, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotels")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotels to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountHotel, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Owned(ctx context.Context, id string) (hotel model.Hotel, err error) {
	current := session.FromContext(ctx)
	if !current.Is(role.Agent) {
		return hotel, failure.Forbidden("only agents manage hotels")
	}

	hotel, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return hotel, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return hotel, failure.NotFound("hotel not found")
	}

	if !hotel.OwnedBy(current.UserID) {
		log.Warn().Str("hotel_id", id).Str("agent_id", current.UserID).Msg("agent tried to manage a hotel they do not own")

		return model.Hotel{}, failure.Forbidden("hotel belongs to another agent")
	}

	return hotel, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateHotelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.Owned(ctx, id)
	if err != nil {
		return err
	}

	req.Normalize()

	imageURLs, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, session.FromContext(ctx).UserID)
	if len(imageURLs) > 0 {
		updatedFields[model.FieldImages] = pq.StringArray(imageURLs)
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update hotel")
		s.deleteImages(ctx, imageURLs)

		return fmt.Errorf("failed to update hotel: %w", err)
	}

	// replaced images are removed once the row points at the new ones
	if len(imageURLs) > 0 {
		go s.deleteImages(context.WithoutCancel(ctx), current.Images)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetEnabled(ctx context.Context, id string, enabled bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetEnabled")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotel, err := s.Owned(ctx, id)
	if err != nil {
		return err
	}

	if hotel.Enabled == enabled {
		return nil
	}

	updatedFields := shared.TransformFields(gDto.SetEnabledRequest{Enabled: &enabled}, session.FromContext(ctx).UserID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to toggle hotel")

		return fmt.Errorf("failed to toggle hotel: %w", err)
	}

	scope.SetAttributes(map[string]any{"hotel.id": id, "hotel.enabled": enabled})
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) uploadImages(ctx context.Context, headers []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(headers))

	for _, header := range headers {
		url, err := s.uploadImage(ctx, header)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload hotel image")
			s.deleteImages(ctx, urls)

			return nil, fmt.Errorf("failed to upload image: %w", err)
		}

		urls = append(urls, url)
	}

	return urls, nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open %s: %w", header.Filename, err)
	}
	defer file.Close()

	return s.s3.UploadFile(ctx, model.EntityName, file, header)
}

func (s *serviceImpl) deleteImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.s3.DeleteFile(ctx, url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to delete hotel image")
		}
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHotel, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete hotel cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
		shared.InvalidateCaches(c, s.cache, constant.CacheAvailability)
	}()
}
