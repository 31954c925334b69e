package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/shared/constant"
	"hotelbooking/shared/dto"
	"hotelbooking/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.NewMetadata("agent-1", created))

	assert.Equal(t, created.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, created.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "agent-1", metadata.CreatedBy)
	assert.Equal(t, "agent-1", metadata.ModifiedBy)
}

func TestMetadata_FromModelZeroTimes(t *testing.T) {
	metadata := dto.Metadata{CreatedAt: "stale", CreatedBy: "stale"}
	metadata.FromModel(model.Metadata{ModifiedBy: "system"})

	assert.Empty(t, metadata.CreatedAt)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.CreatedBy)
	assert.Equal(t, "system", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		defaultRequest bool
		want           dto.QueryParams
	}{
		{
			name: "explicit values",
			url:  "/v1/hotels?page=3&limit=25&sort_by=name&sort_dir=asc",
			want: dto.QueryParams{Page: 3, Limit: 25, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults",
			url:            "/v1/hotels",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid values ignored",
			url:            "/v1/hotels?page=-1&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params dto.QueryParams
			params.FromRequest(httptest.NewRequest("GET", tt.url, nil), tt.defaultRequest)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	allowed := []string{"name", "city", "created_at"}

	params := dto.QueryParams{SortBy: "name; DROP TABLE hotels", SortDir: ""}
	params.RestrictSort(allowed, "created_at", dto.SortDirDesc)
	assert.Equal(t, "created_at", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)

	params = dto.QueryParams{SortBy: "city", SortDir: dto.SortDirAsc}
	params.RestrictSort(allowed, "created_at", dto.SortDirDesc)
	assert.Equal(t, "city", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table and arg name",
			filter:    dto.Filter{ArgName: "hotel_enabled", Field: "enabled", Table: "hotels", Value: true, Operator: dto.FilterOperatorEq},
			wantWhere: "hotels.enabled = :hotel_enabled",
			wantArgs:  map[string]any{"hotel_enabled": true},
		},
		{
			name:      "greater or equal",
			filter:    dto.Filter{Field: "capacity", Table: "rooms", Value: 2, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "rooms.capacity >= :capacity",
			wantArgs:  map[string]any{"capacity": 2},
		},
		{
			name:      "like",
			filter:    dto.Filter{Field: "name", Value: "plaza", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%plaza%"},
		},
		{
			name:      "in",
			filter:    dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name: "plain query binds args",
			filter: dto.Filter{
				Value:    "reservations.check_in < :check_out",
				Operator: dto.FilterPlainQuery,
				Args:     map[string]any{"check_out": "2025-01-03"},
			},
			wantWhere: "(reservations.check_in < :check_out)",
			wantArgs:  map[string]any{"check_out": "2025-01-03"},
		},
		{
			name:      "in with no values",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "status", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "last_login", Operator: dto.FilterIsNull},
			wantWhere: "last_login IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{ArgName: "room_enabled", Field: "enabled", Table: "rooms", Value: true, Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "status_pending", Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "status_confirmed", Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(rooms.enabled = :room_enabled AND (status = :status_pending OR status = :status_confirmed))", where)
	assert.Len(t, args, 3)

	skipped := dto.FilterGroup{Filters: []any{
		dto.FilterGroup{},
		dto.Filter{Field: "city_key", Value: "cusco", Operator: dto.FilterOperatorEq},
	}}
	where, _ = skipped.GetWhereClause()
	assert.Equal(t, "(city_key = :city_key)", where)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()
	assert.Empty(t, where)
	assert.Empty(t, args)
}
