package dto

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"hotelbooking/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Values that do not parse
// are ignored. withDefaults fills page and limit when absent.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positiveInt(values, constant.RequestParamPage); ok {
		q.Page = page
	}

	if limit, ok := positiveInt(values, constant.RequestParamLimit); ok {
		q.Limit = limit
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positiveInt(values url.Values, key string) (int, bool) {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

// RestrictSort drops a SortBy that is not in allowed, then falls back to the defaults.
// SortBy is interpolated into ORDER BY, so every handler must call this.
func (q *QueryParams) RestrictSort(allowed []string, defaultSortBy, defaultSortDir string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = defaultSortBy
	}

	if q.SortDir == "" {
		q.SortDir = defaultSortDir
	}
}
