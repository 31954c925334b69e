package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbooking/config"
	metricsMocks "hotelbooking/infras/metrics/mocks"
	"hotelbooking/infras/otel/mocks"
	availabilityMocks "hotelbooking/internal/domains/availability/mocks"
	"hotelbooking/internal/domains/availability/model"
	"hotelbooking/internal/domains/availability/model/dto"
	"hotelbooking/internal/domains/availability/service"
	cacheMocks "hotelbooking/shared/cache/mocks"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
)

type fixture struct {
	repo    *availabilityMocks.MockAvailability
	cache   *cacheMocks.MockRedisCache
	metrics *metricsMocks.MockMetrics
	svc     service.Availability
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:    availabilityMocks.NewMockAvailability(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		metrics: metricsMocks.NewMockMetrics(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.metrics)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func sanJoseRoom() model.AvailableRoom {
	return model.AvailableRoom{
		ID:        "room-1",
		HotelID:   "hotel-1",
		Name:      "Garden view",
		BasePrice: 180,
		Taxes:     20,
		Capacity:  2,
		HotelName: "Casa Azul",
		HotelCity: "San José",
	}
}

var firstPage = gDto.QueryParams{Page: 1, Limit: 10}

func TestAvailabilityService_Search(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.SearchRequest
		setup     func(f fixture)
		wantRooms int
		wantPrice float64
		wantCode  int
		wantErr   bool
	}{
		{
			name: "matching room with its display price",
			req:  dto.SearchRequest{City: "san josé", Guests: 2},
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
					_, args := filter.GetWhereClause()
					assert.Equal(t, "san jose", args["city_key"])
					assert.Equal(t, 2, args["guests"])

					return 1, nil
				})
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.AvailableRoom, error) {
						assert.Equal(t, "rooms.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirAsc, params.SortDir)
						assert.Equal(t, 10, params.Limit)

						return []model.AvailableRoom{sanJoseRoom()}, nil
					})
				f.metrics.EXPECT().ObserveAvailability("rooms", 1, gomock.Any())
			},
			wantRooms: 1,
			wantPrice: 200,
		},
		{
			name: "no rooms is not an error",
			req:  dto.SearchRequest{City: "san jose", Guests: 3},
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.metrics.EXPECT().ObserveAvailability("rooms", 0, gomock.Any())
			},
			wantRooms: 0,
		},
		{
			name: "cached result",
			req:  dto.SearchRequest{City: "san jose", Guests: 2},
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string, v any) error {
					assert.Contains(t, key, "availability:rooms:")
					*(v.(*dto.SearchResponse)) = dto.SearchResponse{Rooms: []dto.AvailableRoomResponse{{RoomID: "room-1"}}, TotalData: 1}

					return nil
				})
				f.metrics.EXPECT().ObserveAvailability("rooms", 1, gomock.Any())
			},
			wantRooms: 1,
		},
		{
			name:     "only one date",
			req:      dto.SearchRequest{City: "san jose", Guests: 2, CheckIn: "2026-05-01"},
			setup:    func(fixture) {},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "backend failure",
			req:  dto.SearchRequest{City: "san jose", Guests: 2},
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("connection refused")).AnyTimes()
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Search(context.Background(), tt.req, firstPage)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Len(t, res.Rooms, tt.wantRooms)

			if tt.wantPrice > 0 {
				assert.InDelta(t, tt.wantPrice, res.Rooms[0].DisplayPrice, 0.001)
			}
		})
	}
}

func TestAvailabilityService_Search_WithDates(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.AvailableRoom, error) {
			where, _ := filter.GetWhereClause()
			assert.Contains(t, where, "NOT EXISTS")

			return []model.AvailableRoom{sanJoseRoom()}, nil
		})
	f.metrics.EXPECT().ObserveAvailability("rooms", 1, gomock.Any())

	res, err := f.svc.Search(context.Background(), dto.SearchRequest{City: "San José", Guests: 2, CheckIn: "2026-05-01", CheckOut: "2026-05-03"}, firstPage)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	require.Len(t, res.Rooms, 1)
	assert.Equal(t, 2, res.Rooms[0].Nights)
	require.NotNil(t, res.Rooms[0].TotalPrice)
	assert.InDelta(t, 400.0, *res.Rooms[0].TotalPrice, 0.001)
}

func TestAvailabilityService_SearchHotels(t *testing.T) {
	f := newFixture(t)

	other := sanJoseRoom()
	other.ID = "room-2"
	other.BasePrice = 90
	other.Taxes = 10

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.AvailableRoom{sanJoseRoom(), other}, nil)
	f.metrics.EXPECT().ObserveAvailability("hotels", 1, gomock.Any())

	res, err := f.svc.SearchHotels(context.Background(), dto.SearchRequest{City: "SAN JOSE", Guests: 2})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	require.Len(t, res.Hotels, 1)
	assert.Len(t, res.Hotels[0].Rooms, 2)
	assert.InDelta(t, 100.0, res.Hotels[0].FromPrice, 0.001)
}
