package dto

import (
	"mime/multipart"
	"strings"

	"hotelbooking/internal/domains/hotel/model"
	"hotelbooking/shared"
	"hotelbooking/shared/citykey"
	gDto "hotelbooking/shared/dto"
	gModel "hotelbooking/shared/model"
	"hotelbooking/shared/timezone"

	"github.com/google/uuid"
)

const MaxImages = 5

type CreateHotelRequest struct {
	Name        string                  `json:"name"        validate:"required,max=255"`
	Description string                  `json:"description" validate:"omitempty,max=5000"`
	Address     string                  `json:"address"     validate:"omitempty,max=500"`
	City        string                  `json:"city"        validate:"required,max=255"`
	Enabled     *bool                   `json:"enabled"     validate:"omitempty"`
	Images      []*multipart.FileHeader `json:"images"      validate:"omitempty,max=5,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
}

func (c *CreateHotelRequest) ToModel(agentID string, imageURLs []string) model.Hotel {
	enabled := true
	if c.Enabled != nil {
		enabled = *c.Enabled
	}

	if imageURLs == nil {
		imageURLs = []string{}
	}

	city := strings.TrimSpace(c.City)

	return model.Hotel{
		ID:          uuid.NewString(),
		AgentID:     agentID,
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Address:     c.Address,
		City:        city,
		CityKey:     citykey.Normalize(city),
		Images:      imageURLs,
		Enabled:     enabled,
		Metadata:    gModel.NewMetadata(agentID, timezone.Now()),
	}
}

// UpdateHotelRequest only writes the fields that are set. CityKey follows City.
type UpdateHotelRequest struct {
	Name        string                  `db:"name"        json:"name"        validate:"omitempty,max=255"`
	Description *string                 `db:"description" json:"description" validate:"omitempty,max=5000"`
	Address     *string                 `db:"address"     json:"address"     validate:"omitempty,max=500"`
	City        string                  `db:"city"        json:"city"        validate:"omitempty,max=255"`
	CityKey     string                  `db:"city_key"    json:"-"`
	Images      []*multipart.FileHeader `json:"images"      validate:"omitempty,max=5,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
}

func (u *UpdateHotelRequest) Empty() bool {
	return u.Name == "" && u.Description == nil && u.Address == nil && u.City == "" && len(u.Images) == 0
}

func (u *UpdateHotelRequest) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.City = strings.TrimSpace(u.City)

	if u.City != "" {
		u.CityKey = citykey.Normalize(u.City)
	}
}

type HotelResponse struct {
	ID          string   `json:"id"`
	AgentID     string   `json:"agent_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Images      []string `json:"images"`
	Enabled     bool     `json:"enabled"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(m model.Hotel) {
	r.ID = m.ID
	r.AgentID = m.AgentID
	r.Name = m.Name
	r.Description = m.Description
	r.Address = m.Address
	r.City = m.City
	r.Images = append([]string{}, m.Images...)
	r.Enabled = m.Enabled
	r.Metadata.FromModel(m.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
