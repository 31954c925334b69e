package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"hotelbooking/config"
	"hotelbooking/infras/metrics"
	metricsMocks "hotelbooking/infras/metrics/mocks"
	"hotelbooking/infras/otel/mocks"
	postgresMocks "hotelbooking/infras/postgres/mocks"
	hotelMocks "hotelbooking/internal/domains/hotel/mocks"
	hotelModel "hotelbooking/internal/domains/hotel/model"
	reservationMocks "hotelbooking/internal/domains/reservation/mocks"
	"hotelbooking/internal/domains/reservation/model"
	"hotelbooking/internal/domains/reservation/model/dto"
	"hotelbooking/internal/domains/reservation/repository"
	"hotelbooking/internal/domains/reservation/service"
	roomMocks "hotelbooking/internal/domains/room/mocks"
	roomModel "hotelbooking/internal/domains/room/model"
	eventMocks "hotelbooking/internal/events/mocks"
	cacheMocks "hotelbooking/shared/cache/mocks"
	"hotelbooking/shared/constant"
	gDto "hotelbooking/shared/dto"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo       *reservationMocks.MockReservation
	guests     *reservationMocks.MockGuest
	contacts   *reservationMocks.MockEmergencyContact
	rooms      *roomMocks.MockRoom
	hotels     *hotelMocks.MockHotel
	transactor *postgresMocks.MockTransactor
	publisher  *eventMocks.MockPublisher
	cache      *cacheMocks.MockRedisCache
	metrics    *metricsMocks.MockMetrics
	cfg        *config.Config
	svc        service.Reservation

	mu    sync.Mutex
	saved map[string]any
}

func (f *fixture) savedValue(key string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.saved[key]

	return v, ok
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Booking.DefaultStatus = model.StatusConfirmed
	cfg.App.Booking.IdempotencyTTLSeconds = 86400

	f := &fixture{
		repo:       reservationMocks.NewMockReservation(ctrl),
		guests:     reservationMocks.NewMockGuest(ctrl),
		contacts:   reservationMocks.NewMockEmergencyContact(ctrl),
		rooms:      roomMocks.NewMockRoom(ctrl),
		hotels:     hotelMocks.NewMockHotel(ctrl),
		transactor: postgresMocks.NewMockTransactor(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		metrics:    metricsMocks.NewMockMetrics(ctrl),
		cfg:        cfg,
		saved:      map[string]any{},
	}
	f.svc = service.New(
		f.repo, f.guests, f.contacts, f.rooms, f.hotels, f.transactor, f.publisher,
		cfg, f.cache, mocks.NewOtel(), f.metrics,
	)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
			f.mu.Lock()
			defer f.mu.Unlock()

			f.saved[key] = value

			return nil
		}).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().ReservationCancelled(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().ReservationConfirmed(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

// runTransaction makes the transactor call fn directly.
func (f *fixture) runTransaction() {
	f.transactor.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func (f *fixture) bookable(room roomModel.Room, hotel hotelModel.Hotel) {
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)

	if room.ID != constant.Empty && room.Enabled {
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotel, nil)
	}
}

func asRole(userID string, r role.Role) context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: userID, Role: r, TokenID: "jti"})
}

func traveler() context.Context {
	return asRole("traveler-1", role.Traveler)
}

func agent() context.Context {
	return asRole("agent-1", role.Agent)
}

func daysFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format(constant.DateOnlyFormat)
}

func sanJoseRoom() roomModel.Room {
	return roomModel.Room{
		ID:        "room-1",
		HotelID:   "hotel-1",
		Name:      "Garden view",
		BasePrice: 180,
		Taxes:     20,
		Capacity:  2,
		Enabled:   true,
	}
}

func sanJoseHotel() hotelModel.Hotel {
	return hotelModel.Hotel{ID: "hotel-1", AgentID: "agent-1", City: "San José", Enabled: true}
}

func guestRecord(first string) dto.GuestRequest {
	return dto.GuestRequest{
		FirstName:      first,
		LastName:       "Mora",
		BirthDate:      "1990-04-12",
		Gender:         "female",
		DocumentType:   "passport",
		DocumentNumber: "P123",
		Email:          "Ana@Example.com",
	}
}

func bookingRequest(guests ...dto.GuestRequest) dto.CreateReservationRequest {
	if len(guests) == 0 {
		guests = []dto.GuestRequest{guestRecord("Ana")}
	}

	return dto.CreateReservationRequest{
		RoomID:           "room-1",
		CheckIn:          daysFromNow(10),
		CheckOut:         daysFromNow(12),
		GuestRecords:     guests,
		EmergencyContact: dto.EmergencyContactRequest{FullName: "Luis Mora", Phone: "+506 8888 0000"},
	}
}

func TestCreate(t *testing.T) {
	t.Run("writes reservation, guests and contact under one id", func(t *testing.T) {
		f := newFixture(t)
		f.bookable(sanJoseRoom(), sanJoseHotel())
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.runTransaction()

		var (
			inserted model.Reservation
			guests   []model.Guest
			contact  model.EmergencyContact
		)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, m model.Reservation) error {
				inserted = m

				return nil
			})
		f.guests.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, m []model.Guest) error {
				guests = m

				return nil
			})
		f.contacts.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, m model.EmergencyContact) error {
				contact = m

				return nil
			})
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventCreated)

		res, err := f.svc.Create(traveler(), bookingRequest(guestRecord("Ana"), guestRecord("Jorge")))
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		assert.Equal(t, inserted.ID, res.ID)
		assert.Equal(t, "traveler-1", inserted.TravelerID)
		assert.Equal(t, "hotel-1", inserted.HotelID)
		assert.Equal(t, 2, inserted.Guests)
		assert.Equal(t, model.StatusConfirmed, inserted.Status)
		assert.InDelta(t, 400.0, inserted.TotalAmount, 0.001)
		assert.Equal(t, 2, res.Nights)

		require.Len(t, guests, 2)
		for _, g := range guests {
			assert.Equal(t, inserted.ID, g.ReservationID)
			assert.Equal(t, "ana@example.com", g.Email)
		}
		assert.True(t, guests[0].CreatedAt.Before(guests[1].CreatedAt))
		assert.Equal(t, inserted.ID, contact.ReservationID)

		require.Len(t, res.GuestRecords, 2)
		require.NotNil(t, res.EmergencyContact)
		assert.Equal(t, "Luis Mora", res.EmergencyContact.FullName)
	})

	t.Run("pending when configured", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.App.Booking.DefaultStatus = model.StatusPending
		f.bookable(sanJoseRoom(), sanJoseHotel())
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.runTransaction()
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.guests.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.contacts.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventCreated)

		res, err := f.svc.Create(traveler(), bookingRequest())
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("replays the reservation remembered for an idempotency key", func(t *testing.T) {
		f := newFixture(t)
		req := bookingRequest()
		req.IdempotencyKey = "key-1"

		f.cache.EXPECT().
			Get(gomock.Any(), "reservation:idempotency:traveler-1:key-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.ReservationResponse)
				require.True(t, ok)
				res.ID = "res-1"

				return nil
			})

		res, err := f.svc.Create(traveler(), req)
		require.NoError(t, err)
		assert.Equal(t, "res-1", res.ID)
	})

	t.Run("first submit with an idempotency key books normally", func(t *testing.T) {
		f := newFixture(t)
		req := bookingRequest()
		req.IdempotencyKey = "key-1"

		f.cache.EXPECT().Get(gomock.Any(), "reservation:idempotency:traveler-1:key-1", gomock.Any()).Return(errors.New("miss"))
		f.bookable(sanJoseRoom(), sanJoseHotel())
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.runTransaction()
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.guests.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.contacts.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventCreated)

		res, err := f.svc.Create(traveler(), req)
		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)

		remembered, ok := f.savedValue("reservation:idempotency:traveler-1:key-1")
		require.True(t, ok, "idempotency key must be stored before Create returns")
		stored, ok := remembered.(dto.ReservationResponse)
		require.True(t, ok)
		assert.Equal(t, res.ID, stored.ID)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("overlapping live reservation is a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.bookable(sanJoseRoom(), sanJoseHotel())
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventConflict)

		_, err := f.svc.Create(traveler(), bookingRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("exclusion constraint at insert is a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.bookable(sanJoseRoom(), sanJoseHotel())
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.runTransaction()
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (reservation): %w", failure.Conflict("room is already booked for the requested dates")))
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventConflict)

		_, err := f.svc.Create(traveler(), bookingRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("guest insert failure aborts before the contact insert", func(t *testing.T) {
		f := newFixture(t)
		f.bookable(sanJoseRoom(), sanJoseHotel())
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.runTransaction()
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.guests.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventFailed)

		_, err := f.svc.Create(traveler(), bookingRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert guests")
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	tests := []struct {
		name    string
		ctx     context.Context
		req     func() dto.CreateReservationRequest
		setup   func(f *fixture)
		code    int
		message string
	}{
		{
			name:    "agents cannot book",
			ctx:     agent(),
			req:     func() dto.CreateReservationRequest { return bookingRequest() },
			code:    http.StatusForbidden,
			message: "only travelers can book rooms",
		},
		{
			name:    "anonymous cannot book",
			ctx:     context.Background(),
			req:     func() dto.CreateReservationRequest { return bookingRequest() },
			code:    http.StatusForbidden,
			message: "only travelers can book rooms",
		},
		{
			name: "check-out not after check-in",
			ctx:  traveler(),
			req: func() dto.CreateReservationRequest {
				req := bookingRequest()
				req.CheckOut = req.CheckIn

				return req
			},
			code:    http.StatusBadRequest,
			message: "check_out must be after check_in",
		},
		{
			name: "check-in in the past",
			ctx:  traveler(),
			req: func() dto.CreateReservationRequest {
				req := bookingRequest()
				req.CheckIn = daysFromNow(-2)

				return req
			},
			code:    http.StatusBadRequest,
			message: "check_in cannot be in the past",
		},
		{
			name: "declared guests below guest records",
			ctx:  traveler(),
			req: func() dto.CreateReservationRequest {
				req := bookingRequest(guestRecord("Ana"), guestRecord("Jorge"))
				req.Guests = 1

				return req
			},
			code:    http.StatusBadRequest,
			message: "guests cannot be fewer than guest_records",
		},
		{
			name: "room does not exist",
			ctx:  traveler(),
			req:  func() dto.CreateReservationRequest { return bookingRequest() },
			setup: func(f *fixture) {
				f.bookable(roomModel.Room{}, hotelModel.Hotel{})
			},
			code:    http.StatusBadRequest,
			message: "room does not exist",
		},
		{
			name: "room disabled",
			ctx:  traveler(),
			req:  func() dto.CreateReservationRequest { return bookingRequest() },
			setup: func(f *fixture) {
				room := sanJoseRoom()
				room.Enabled = false
				f.bookable(room, sanJoseHotel())
			},
			code:    http.StatusBadRequest,
			message: "room is not available for booking",
		},
		{
			name: "hotel disabled",
			ctx:  traveler(),
			req:  func() dto.CreateReservationRequest { return bookingRequest() },
			setup: func(f *fixture) {
				hotel := sanJoseHotel()
				hotel.Enabled = false
				f.bookable(sanJoseRoom(), hotel)
			},
			code:    http.StatusBadRequest,
			message: "hotel is not accepting reservations",
		},
		{
			name: "party larger than capacity",
			ctx:  traveler(),
			req: func() dto.CreateReservationRequest {
				req := bookingRequest()
				req.Guests = 3

				return req
			},
			setup: func(f *fixture) {
				f.bookable(sanJoseRoom(), sanJoseHotel())
			},
			code:    http.StatusBadRequest,
			message: "room sleeps at most 2 guests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.svc.Create(tt.ctx, tt.req())
			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func storedReservation(status string) model.Reservation {
	return model.Reservation{
		ID:          "res-1",
		RoomID:      "room-1",
		HotelID:     "hotel-1",
		TravelerID:  "traveler-1",
		CheckIn:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		Guests:      1,
		TotalAmount: 400,
		Status:      status,
	}
}

func TestGet(t *testing.T) {
	t.Run("owner traveler sees guests and contact", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
		f.cache.EXPECT().Get(gomock.Any(), "reservation:get:res-1", gomock.Any()).Return(errors.New("miss"))
		f.guests.EXPECT().GetAll(gomock.Any(), repository.GuestOrder, gomock.Any()).
			Return([]model.Guest{{ID: "g-1", ReservationID: "res-1", FirstName: "Ana"}}, nil)
		f.contacts.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.EmergencyContact{ID: "c-1", ReservationID: "res-1", FullName: "Luis Mora"}, nil)

		res, err := f.svc.Get(traveler(), "res-1")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		assert.Equal(t, "2026-11-01", res.CheckIn)
		assert.Equal(t, 2, res.Nights)
		require.Len(t, res.GuestRecords, 1)
		assert.Equal(t, "Ana", res.GuestRecords[0].FirstName)
		require.NotNil(t, res.EmergencyContact)
		assert.Equal(t, "Luis Mora", res.EmergencyContact.FullName)
	})

	t.Run("owning agent", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sanJoseHotel(), nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.guests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.contacts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.EmergencyContact{}, nil)

		res, err := f.svc.Get(agent(), "res-1")
		require.NoError(t, err)
		assert.Empty(t, res.GuestRecords)
		assert.Nil(t, res.EmergencyContact)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("cached detail with matching status", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
		f.cache.EXPECT().Get(gomock.Any(), "reservation:get:res-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.ReservationResponse)
				require.True(t, ok)
				res.ID = "res-1"
				res.Status = model.StatusConfirmed
				res.GuestRecords = []dto.GuestResponse{{ID: "g-1"}}

				return nil
			})

		res, err := f.svc.Get(traveler(), "res-1")
		require.NoError(t, err)
		assert.Len(t, res.GuestRecords, 1)
	})

	t.Run("detail load failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.guests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
		f.contacts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.EmergencyContact{}, nil).AnyTimes()

		_, err := f.svc.Get(traveler(), "res-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get guests")
	})

	hidden := []struct {
		name  string
		ctx   context.Context
		setup func(f *fixture)
		code  int
	}{
		{
			name: "other traveler",
			ctx:  asRole("traveler-2", role.Traveler),
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
			},
			code: http.StatusNotFound,
		},
		{
			name: "agent of another hotel",
			ctx:  asRole("agent-2", role.Agent),
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
				f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sanJoseHotel(), nil)
			},
			code: http.StatusNotFound,
		},
		{
			name: "missing",
			ctx:  traveler(),
			setup: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)
			},
			code: http.StatusNotFound,
		},
		{
			name: "anonymous",
			ctx:  context.Background(),
			code: http.StatusUnauthorized,
		},
	}

	for _, tt := range hidden {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.svc.Get(tt.ctx, "res-1")
			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}

func TestListMine(t *testing.T) {
	t.Run("pages the traveler's reservations", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "traveler-1", args["traveler_id"])

				return 11, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{storedReservation(model.StatusConfirmed)}, nil)

		res, err := f.svc.ListMine(traveler(), gDto.QueryParams{Page: 1, Limit: 10}, constant.Empty)
		require.NoError(t, err)
		assert.Equal(t, 11, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		require.Len(t, res.Reservations, 1)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("agents have no bookings of their own", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListMine(agent(), gDto.QueryParams{Page: 1, Limit: 10}, constant.Empty)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListMine(traveler(), gDto.QueryParams{Page: 1, Limit: 10}, "archived")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestListForAgent(t *testing.T) {
	t.Run("scopes to the agent's hotels", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "agent-1", args["reservation_agent_id"])
				assert.NotContains(t, args, "traveler_id")

				return 1, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{storedReservation(model.StatusPending)}, nil)

		res, err := f.svc.ListForAgent(agent(), gDto.QueryParams{Page: 1, Limit: 10}, repository.ListFilter{TravelerID: "someone"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("travelers are refused", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListForAgent(traveler(), gDto.QueryParams{Page: 1, Limit: 10}, repository.ListFilter{})
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("count failure", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := f.svc.ListForAgent(agent(), gDto.QueryParams{Page: 1, Limit: 10}, repository.ListFilter{})
		require.Error(t, err)
	})
}

func TestCancel(t *testing.T) {
	t.Run("traveler cancels a confirmed reservation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
				assert.Equal(t, "traveler-1", fields[constant.FieldModifiedBy])

				_, args := filter.GetWhereClause()
				assert.Equal(t, model.StatusConfirmed, args["current_status"])

				return 1, nil
			})
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventCancelled)

		res, err := f.svc.Cancel(traveler(), "res-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("owning agent cancels a pending reservation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusPending), nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sanJoseHotel(), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventCancelled)

		res, err := f.svc.Cancel(agent(), "res-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusCancelled), nil)

		_, err := f.svc.Cancel(traveler(), "res-1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("update failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

		_, err := f.svc.Cancel(traveler(), "res-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("confirmed by the agent first", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusPending), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		res, err := f.svc.Cancel(traveler(), "res-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), "reservation changed")
		assert.Empty(t, res.Status)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("owning agent confirms a pending reservation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusPending), nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sanJoseHotel(), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.metrics.EXPECT().ObserveReservation(metrics.ReservationEventConfirmed)

		res, err := f.svc.Confirm(agent(), "res-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("travelers cannot confirm", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Confirm(traveler(), "res-1")
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("already confirmed", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusConfirmed), nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sanJoseHotel(), nil)

		_, err := f.svc.Confirm(agent(), "res-1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("cancelled by the traveler first", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(model.StatusPending), nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sanJoseHotel(), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Confirm(agent(), "res-1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}
