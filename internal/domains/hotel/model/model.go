package model

import (
	"hotelbooking/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldAgentID     = "agent_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldCityKey     = "city_key"
	FieldImages      = "images"
	FieldEnabled     = "enabled"
)

type Hotel struct {
	ID          string         `db:"id"`
	AgentID     string         `db:"agent_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Address     string         `db:"address"`
	City        string         `db:"city"`
	CityKey     string         `db:"city_key"`
	Images      pq.StringArray `db:"images"`
	Enabled     bool           `db:"enabled"`
	model.Metadata
}

// OwnedBy reports whether the agent manages this hotel.
func (h Hotel) OwnedBy(agentID string) bool {
	return h.ID != "" && h.AgentID == agentID
}
