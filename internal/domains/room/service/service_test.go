package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbooking/config"
	"hotelbooking/infras/otel/mocks"
	hotelModel "hotelbooking/internal/domains/hotel/model"
	hotelDto "hotelbooking/internal/domains/hotel/model/dto"
	hotelMocks "hotelbooking/internal/domains/hotel/service/mocks"
	roomMocks "hotelbooking/internal/domains/room/mocks"
	"hotelbooking/internal/domains/room/model"
	"hotelbooking/internal/domains/room/model/dto"
	"hotelbooking/internal/domains/room/repository"
	"hotelbooking/internal/domains/room/service"
	cacheMocks "hotelbooking/shared/cache/mocks"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"
)

type fixture struct {
	repo   *roomMocks.MockRoom
	hotels *hotelMocks.MockHotel
	cache  *cacheMocks.MockRedisCache
	svc    service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:   roomMocks.NewMockRoom(ctrl),
		hotels: hotelMocks.NewMockHotel(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.hotels, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func asRole(userID string, r role.Role) context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: userID, Role: r, TokenID: "jti"})
}

func roomOf(enabled bool) model.Room {
	return model.Room{
		ID:        "room-1",
		HotelID:   "hotel-1",
		Name:      "Garden view",
		RoomType:  model.TypeDeluxe,
		BasePrice: 180,
		Taxes:     20,
		Capacity:  2,
		Enabled:   enabled,
	}
}

func price(v float64) *float64 {
	return &v
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		HotelID:   "hotel-1",
		Name:      "Garden view",
		RoomType:  model.TypeDeluxe,
		BasePrice: price(180),
		Taxes:     20,
		Capacity:  2,
	}

	tests := []struct {
		name     string
		setup    func(f fixture)
		wantCode int
		wantErr  bool
	}{
		{
			name: "owner adds a room",
			setup: func(f fixture) {
				f.hotels.EXPECT().Owned(gomock.Any(), "hotel-1").Return(hotelModel.Hotel{ID: "hotel-1", AgentID: "agent-1"}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r model.Room) error {
					assert.Equal(t, "hotel-1", r.HotelID)
					assert.True(t, r.Enabled)
					assert.Equal(t, "agent-1", r.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "hotel of another agent",
			setup: func(f fixture) {
				f.hotels.EXPECT().Owned(gomock.Any(), "hotel-1").Return(hotelModel.Hotel{}, failure.Forbidden("hotel belongs to another agent"))
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "constraint violation",
			setup: func(f fixture) {
				f.hotels.EXPECT().Owned(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "hotel-1", AgentID: "agent-1"}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.BadRequestFromString("value violates constraint rooms_capacity_check"))
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(asRole("agent-1", role.Agent), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, 200.0, res.DisplayPrice, 0.001)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		setup    func(f fixture)
		wantCode int
		wantErr  bool
	}{
		{
			name: "enabled room of a visible hotel",
			ctx:  context.Background(),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "room:get:room-1", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomOf(true), nil)
				f.hotels.EXPECT().Get(gomock.Any(), "hotel-1").Return(hotelDto.HotelResponse{ID: "hotel-1", AgentID: "agent-1", Enabled: true}, nil)
			},
		},
		{
			name: "room of a hidden hotel",
			ctx:  asRole("traveler-1", role.Traveler),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomOf(true), nil)
				f.hotels.EXPECT().Get(gomock.Any(), "hotel-1").Return(hotelDto.HotelResponse{}, failure.NotFound("hotel not found"))
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "disabled room is hidden from travelers",
			ctx:  asRole("traveler-1", role.Traveler),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomOf(false), nil)
				f.hotels.EXPECT().Get(gomock.Any(), "hotel-1").Return(hotelDto.HotelResponse{ID: "hotel-1", AgentID: "agent-1", Enabled: true}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "disabled room is visible to the owner",
			ctx:  asRole("agent-1", role.Agent),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomOf(false), nil)
				f.hotels.EXPECT().Get(gomock.Any(), "hotel-1").Return(hotelDto.HotelResponse{ID: "hotel-1", AgentID: "agent-1", Enabled: true}, nil)
			},
		},
		{
			name: "missing room",
			ctx:  context.Background(),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Get(tt.ctx, "room-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "room-1", res.ID)
			assert.InDelta(t, 200.0, res.DisplayPrice, 0.001)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	whereOf := func(group gDto.FilterGroup) string {
		where, _ := group.GetWhereClause()

		return where
	}

	tests := []struct {
		name     string
		ctx      context.Context
		filter   repository.ListFilter
		contains []string
		excludes []string
	}{
		{
			name:     "travelers only see enabled rooms of enabled hotels",
			ctx:      asRole("traveler-1", role.Traveler),
			filter:   repository.ListFilter{AgentID: "agent-9"},
			contains: []string{"rooms.enabled = :enabled", "hotels.enabled"},
			excludes: []string{"agent_id"},
		},
		{
			name:     "agents are scoped to their own hotels",
			ctx:      asRole("agent-1", role.Agent),
			filter:   repository.ListFilter{RoomType: model.TypeSuite},
			contains: []string{"hotels.agent_id = :room_agent_id", "rooms.room_type = :room_type"},
			excludes: []string{"rooms.enabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
			f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ gDto.QueryParams, group gDto.FilterGroup, _ ...string) ([]model.Room, error) {
					where := whereOf(group)
					for _, want := range tt.contains {
						assert.True(t, strings.Contains(where, want), "expected %q in %q", want, where)
					}

					for _, unwanted := range tt.excludes {
						assert.False(t, strings.Contains(where, unwanted), "unexpected %q in %q", unwanted, where)
					}

					return []model.Room{roomOf(true)}, nil
				})

			res, err := f.svc.GetAll(tt.ctx, gDto.QueryParams{Page: 1, Limit: 10}, tt.filter)

			time.Sleep(10 * time.Millisecond)

			require.NoError(t, err)
			assert.Len(t, res.Rooms, 1)
		})
	}
}

func TestRoomService_ListByHotel(t *testing.T) {
	t.Run("hidden hotel", func(t *testing.T) {
		f := newFixture(t)
		f.hotels.EXPECT().Get(gomock.Any(), "hotel-1").Return(hotelDto.HotelResponse{}, failure.NotFound("hotel not found"))

		_, err := f.svc.ListByHotel(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "hotel-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("cached listing", func(t *testing.T) {
		f := newFixture(t)
		f.hotels.EXPECT().Get(gomock.Any(), "hotel-1").Return(hotelDto.HotelResponse{ID: "hotel-1", AgentID: "agent-1", Enabled: true}, nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, v any) error {
			*(v.(*dto.GetRoomsResponse)) = dto.GetRoomsResponse{TotalData: 2}

			return nil
		})

		res, err := f.svc.ListByHotel(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "hotel-1")
		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})
}

func TestRoomService_Update(t *testing.T) {
	capacity := 4

	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.UpdateRoomRequest
		setup    func(f fixture)
		wantCode int
		wantErr  bool
	}{
		{
			name: "owner updates pricing",
			ctx:  asRole("agent-1", role.Agent),
			req:  dto.UpdateRoomRequest{BasePrice: price(200), Capacity: &capacity},
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomOf(true), nil)
				f.hotels.EXPECT().Owned(gomock.Any(), "hotel-1").Return(hotelModel.Hotel{ID: "hotel-1", AgentID: "agent-1"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, &capacity, fields[model.FieldCapacity])
					assert.NotContains(t, fields, model.FieldTaxes)

					return nil
				})
			},
		},
		{
			name:     "travelers cannot update rooms",
			ctx:      asRole("traveler-1", role.Traveler),
			req:      dto.UpdateRoomRequest{Name: "x"},
			setup:    func(fixture) {},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "empty update",
			ctx:      asRole("agent-1", role.Agent),
			req:      dto.UpdateRoomRequest{},
			setup:    func(fixture) {},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room of another agent",
			ctx:  asRole("agent-2", role.Agent),
			req:  dto.UpdateRoomRequest{Name: "x"},
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomOf(true), nil)
				f.hotels.EXPECT().Owned(gomock.Any(), "hotel-1").Return(hotelModel.Hotel{}, failure.Forbidden("hotel belongs to another agent"))
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.Update(tt.ctx, tt.req, "room-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRoomService_SetEnabled(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomOf(true), nil)
	f.hotels.EXPECT().Owned(gomock.Any(), "hotel-1").Return(hotelModel.Hotel{ID: "hotel-1", AgentID: "agent-1"}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		enabled, ok := fields[model.FieldEnabled].(*bool)
		require.True(t, ok)
		assert.False(t, *enabled)

		return nil
	})

	require.NoError(t, f.svc.SetEnabled(asRole("agent-1", role.Agent), "room-1", false))

	time.Sleep(10 * time.Millisecond)
}
