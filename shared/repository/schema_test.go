package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type audit struct {
	CreatedAt time.Time `db:"created_at"`
}

type listing struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	HotelName string `db:"hotel_name" table:"hotels" column:"name"`
	Notes     string `db:"-"`
	Scratch   string
	audit
}

func (listing) GetJoinQuery() string {
	return "JOIN hotels ON hotels.id = rooms.hotel_id"
}

type plain struct {
	ID string `db:"id"`
}

func TestSchema(t *testing.T) {
	s := newSchema[listing]("rooms")

	assert.Equal(t, "JOIN hotels ON hotels.id = rooms.hotel_id", s.join)
	assert.Equal(t, []string{"id", "name", "created_at"}, s.insert)
	assert.Equal(t, "rooms.id, rooms.name, hotels.name AS hotel_name, rooms.created_at", s.selectList())
	assert.Equal(t, "rooms.id, hotels.name AS hotel_name", s.selectList("id", "hotel_name"))
	assert.Equal(t, "INSERT INTO rooms (id, name, created_at) VALUES (:id, :name, :created_at)", s.insertQuery())

	assert.Empty(t, newSchema[plain]("users").join)
}
