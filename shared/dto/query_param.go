package dto

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"dipsport/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries paging and ordering for list endpoints.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string. Invalid numbers and
// directions are ignored. With withDefaults a missing page or limit is set to the defaults, so the
// list is always bounded.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	q.Page = positive(values, constant.RequestParamPage, q.Page)
	q.Limit = positive(values, constant.RequestParamLimit, q.Limit)

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

func positive(values url.Values, key string, fallback int) int {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}

// Sortable keeps SortBy only when it names one of allowed, falling back to created_at.
// Sort columns are interpolated into SQL, so handlers must call this on user input.
func (q *QueryParams) Sortable(allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}
