package repository_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelbooking/internal/domains/availability/model"
	"hotelbooking/internal/domains/availability/repository"
	"hotelbooking/shared/stay"
)

func TestCriteriaFilter(t *testing.T) {
	t.Run("always requires enabled hotel, enabled room and capacity", func(t *testing.T) {
		filter := repository.CriteriaFilter(model.Criteria{Guests: 3})
		where, args := filter.GetWhereClause()

		assert.Contains(t, where, "hotels.enabled = :hotel_enabled")
		assert.Contains(t, where, "rooms.enabled = :room_enabled")
		assert.Contains(t, where, "rooms.capacity >= :guests")
		assert.NotContains(t, where, "city_key")
		assert.NotContains(t, where, "reservations")
		assert.Equal(t, true, args["hotel_enabled"])
		assert.Equal(t, true, args["room_enabled"])
		assert.Equal(t, 3, args["guests"])
		assert.Equal(t, 2, strings.Count(where, " AND "))
	})

	t.Run("city and dates", func(t *testing.T) {
		dates := stay.Range{
			CheckIn:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
		}

		filter := repository.CriteriaFilter(model.Criteria{CityKey: "san jose", Guests: 2, Stay: &dates})
		where, args := filter.GetWhereClause()

		assert.Contains(t, where, "hotels.city_key = :city_key")
		assert.Contains(t, where, "NOT EXISTS")
		assert.Contains(t, where, "reservations.status <> 'cancelled'")
		assert.Equal(t, "san jose", args["city_key"])
		assert.Equal(t, dates.CheckIn, args["stay_check_in"])
		assert.Equal(t, dates.CheckOut, args["stay_check_out"])
	})
}

func TestAvailableRoom_GetJoinQuery(t *testing.T) {
	assert.Equal(t, "JOIN hotels ON hotels.id = rooms.hotel_id", model.AvailableRoom{}.GetJoinQuery())
}
