package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbooking/config"
	"hotelbooking/infras/otel/mocks"
	s3Mocks "hotelbooking/infras/s3/mocks"
	hotelMocks "hotelbooking/internal/domains/hotel/mocks"
	"hotelbooking/internal/domains/hotel/model"
	"hotelbooking/internal/domains/hotel/model/dto"
	"hotelbooking/internal/domains/hotel/repository"
	"hotelbooking/internal/domains/hotel/service"
	cacheMocks "hotelbooking/shared/cache/mocks"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"
)

type fixture struct {
	repo  *hotelMocks.MockHotel
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Hotel
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  hotelMocks.NewMockHotel(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func asRole(userID string, r role.Role) context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: userID, Email: userID + "@example.com", Role: r, TokenID: "jti"})
}

func hotelOf(agentID string, enabled bool) model.Hotel {
	return model.Hotel{
		ID:      "hotel-1",
		AgentID: agentID,
		Name:    "Casa Azul",
		City:    "San José",
		CityKey: "san jose",
		Images:  []string{"https://cdn.example.com/hotel/old.png"},
		Enabled: enabled,
	}
}

func imageHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="images"; filename="lobby.png"`)
	header.Set("Content-Type", "image/png")

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File["images"][0]
}

func TestHotelService_Create(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		req      func(t *testing.T) dto.CreateHotelRequest
		setup    func(f fixture)
		wantCode int
		wantErr  bool
	}{
		{
			name: "agent creates an enabled hotel",
			ctx:  asRole("agent-1", role.Agent),
			req: func(*testing.T) dto.CreateHotelRequest {
				return dto.CreateHotelRequest{Name: "Casa Azul", City: " San José "}
			},
			setup: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h model.Hotel) error {
					assert.Equal(t, "agent-1", h.AgentID)
					assert.Equal(t, "San José", h.City)
					assert.Equal(t, "san jose", h.CityKey)
					assert.True(t, h.Enabled)
					assert.Empty(t, h.Images)

					return nil
				})
			},
		},
		{
			name: "uploads images",
			ctx:  asRole("agent-1", role.Agent),
			req: func(t *testing.T) dto.CreateHotelRequest {
				return dto.CreateHotelRequest{Name: "Casa Azul", City: "San José", Images: []*multipart.FileHeader{imageHeader(t)}}
			},
			setup: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), model.EntityName, gomock.Any(), gomock.Any()).Return("https://cdn.example.com/hotel/a.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h model.Hotel) error {
					assert.Equal(t, []string{"https://cdn.example.com/hotel/a.png"}, []string(h.Images))

					return nil
				})
			},
		},
		{
			name: "removes uploaded images when the insert fails",
			ctx:  asRole("agent-1", role.Agent),
			req: func(t *testing.T) dto.CreateHotelRequest {
				return dto.CreateHotelRequest{Name: "Casa Azul", City: "San José", Images: []*multipart.FileHeader{imageHeader(t)}}
			},
			setup: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/hotel/a.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "https://cdn.example.com/hotel/a.png").Return(nil)
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "traveler cannot create hotels",
			ctx:  asRole("traveler-1", role.Traveler),
			req: func(*testing.T) dto.CreateHotelRequest {
				return dto.CreateHotelRequest{Name: "Casa Azul", City: "San José"}
			},
			setup:    func(fixture) {},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(tt.ctx, tt.req(t))

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestHotelService_Get(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		setup    func(f fixture)
		wantCode int
		wantErr  bool
	}{
		{
			name: "cache hit",
			ctx:  context.Background(),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, v any) error {
					*(v.(*dto.HotelResponse)) = dto.HotelResponse{ID: "hotel-1", Enabled: true}

					return nil
				})
			},
		},
		{
			name: "cache miss reads the repository",
			ctx:  context.Background(),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelOf("agent-1", true), nil)
			},
		},
		{
			name: "not found",
			ctx:  context.Background(),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "disabled hotel is hidden from travelers",
			ctx:  asRole("traveler-1", role.Traveler),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelOf("agent-1", false), nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "disabled hotel is visible to its owner",
			ctx:  asRole("agent-1", role.Agent),
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelOf("agent-1", false), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Get(tt.ctx, "hotel-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "hotel-1", res.ID)
		})
	}
}

func TestHotelService_GetAll(t *testing.T) {
	enabledFilter := func(group gDto.FilterGroup) bool {
		for _, f := range group.Filters {
			if filter, ok := f.(gDto.Filter); ok && filter.Field == model.FieldEnabled && filter.Value == true {
				return true
			}
		}

		return false
	}

	disabled := false

	tests := []struct {
		name        string
		ctx         context.Context
		filter      repository.ListFilter
		wantEnabled bool
	}{
		{
			name:        "anonymous listing only shows enabled hotels",
			ctx:         context.Background(),
			filter:      repository.ListFilter{Enabled: &disabled},
			wantEnabled: true,
		},
		{
			name:        "agent listing another agent's hotels only sees enabled ones",
			ctx:         asRole("agent-1", role.Agent),
			filter:      repository.ListFilter{AgentID: "agent-2"},
			wantEnabled: true,
		},
		{
			name:        "agent listing their own hotels sees everything",
			ctx:         asRole("agent-1", role.Agent),
			filter:      repository.ListFilter{AgentID: "agent-1"},
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
			f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, params gDto.QueryParams, group gDto.FilterGroup, _ ...string) ([]model.Hotel, error) {
					assert.Equal(t, tt.wantEnabled, enabledFilter(group))
					assert.Equal(t, model.FieldName, params.SortBy)

					return []model.Hotel{hotelOf("agent-1", true)}, nil
				})

			res, err := f.svc.GetAll(tt.ctx, gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, tt.filter)

			time.Sleep(10 * time.Millisecond)

			require.NoError(t, err)
			assert.Equal(t, 1, res.TotalData)
			assert.Len(t, res.Hotels, 1)
		})
	}
}

func TestHotelService_ListMine(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListMine(asRole("traveler-1", role.Traveler), gDto.QueryParams{Page: 1, Limit: 10})
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, v any) error {
		*(v.(*dto.GetHotelsResponse)) = dto.GetHotelsResponse{TotalData: 3}

		return nil
	})

	res, err := f.svc.ListMine(asRole("agent-1", role.Agent), gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
}

func TestHotelService_Update(t *testing.T) {
	description := "Near the park"

	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.UpdateHotelRequest
		setup    func(f fixture)
		wantCode int
		wantErr  bool
	}{
		{
			name: "owner updates the city and its key",
			ctx:  asRole("agent-1", role.Agent),
			req:  dto.UpdateHotelRequest{City: "SAN JOSÉ", Description: &description},
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelOf("agent-1", true), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, "SAN JOSÉ", fields[model.FieldCity])
					assert.Equal(t, "san jose", fields[model.FieldCityKey])
					assert.Equal(t, &description, fields[model.FieldDescription])
					assert.Equal(t, "agent-1", fields["modified_by"])

					return nil
				})
			},
		},
		{
			name:     "empty update",
			ctx:      asRole("agent-1", role.Agent),
			req:      dto.UpdateHotelRequest{},
			setup:    func(fixture) {},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "another agent's hotel",
			ctx:  asRole("agent-2", role.Agent),
			req:  dto.UpdateHotelRequest{Name: "Mine now"},
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelOf("agent-1", true), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "missing hotel",
			ctx:  asRole("agent-1", role.Agent),
			req:  dto.UpdateHotelRequest{Name: "New"},
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.Update(tt.ctx, tt.req, "hotel-1")

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

func TestHotelService_SetEnabled(t *testing.T) {
	t.Run("disables and clears availability", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := hotelMocks.NewMockHotel(ctrl)
		redis := cacheMocks.NewMockRedisCache(ctrl)
		cfg := &config.Config{}

		svc := service.New(repo, cfg, redis, mocks.NewOtel(), s3Mocks.NewMockS3(ctrl))

		cleared := make(chan string, 4)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelOf("agent-1", true), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			enabled, ok := fields[model.FieldEnabled].(*bool)
			require.True(t, ok)
			assert.False(t, *enabled)

			return nil
		})
		redis.EXPECT().Delete(gomock.Any(), "hotel:get:hotel-1").Return(nil)
		redis.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pattern string) error {
			cleared <- pattern

			return nil
		}).Times(3)

		require.NoError(t, svc.SetEnabled(asRole("agent-1", role.Agent), "hotel-1", false))

		patterns := []string{<-cleared, <-cleared, <-cleared}
		assert.Contains(t, patterns, "availability*")
	})

	t.Run("no change is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelOf("agent-1", true), nil)

		require.NoError(t, f.svc.SetEnabled(asRole("agent-1", role.Agent), "hotel-1", true))
	})
}
