package dto_test

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dipsport/shared/constant"
	"dipsport/shared/dto"
	"dipsport/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("renders both stamps", func(t *testing.T) {
		var m dto.Metadata
		m.FromModel(model.Metadata{
			CreatedAt:  createdAt,
			ModifiedAt: createdAt.Add(time.Hour),
			CreatedBy:  "admin-1",
			ModifiedBy: "admin-2",
		})

		assert.Equal(t, createdAt.Format(constant.DateFormat), m.CreatedAt)
		assert.Equal(t, createdAt.Add(time.Hour).Format(constant.DateFormat), m.ModifiedAt)
		assert.Equal(t, "admin-1", m.CreatedBy)
		assert.Equal(t, "admin-2", m.ModifiedBy)
	})

	t.Run("zero modification stays empty", func(t *testing.T) {
		var m dto.Metadata
		m.FromModel(model.Metadata{CreatedAt: createdAt, CreatedBy: constant.ContextSystem})

		assert.NotEmpty(t, m.CreatedAt)
		assert.Empty(t, m.ModifiedAt)
	})
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    url.Values
		defaults bool
		expected dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    url.Values{"page": {"2"}, "limit": {"20"}, "sort_by": {"name"}, "sort_dir": {"asc"}},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:     "defaults applied",
			defaults: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
		{
			name:     "non numeric page and negative limit fall back",
			query:    url.Values{"page": {"first"}, "limit": {"-10"}},
			defaults: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "unknown sort direction ignored",
			query:    url.Values{"sort_by": {"price"}, "sort_dir": {"sideways"}},
			expected: dto.QueryParams{SortBy: "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/fields?"+tt.query.Encode(), nil)

			var got dto.QueryParams
			got.FromRequest(req, tt.defaults)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQueryParams_Sortable(t *testing.T) {
	tests := []struct {
		name    string
		in      dto.QueryParams
		wantBy  string
		wantDir string
	}{
		{name: "allowed column kept", in: dto.QueryParams{SortBy: "name", SortDir: "ASC"}, wantBy: "name", wantDir: "ASC"},
		{name: "unknown column replaced", in: dto.QueryParams{SortBy: "name; DROP TABLE bookings", SortDir: "ASC"}, wantBy: "created_at", wantDir: "ASC"},
		{name: "empty gets defaults", in: dto.QueryParams{}, wantBy: "created_at", wantDir: "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			q.Sortable("name", "created_at")

			assert.Equal(t, tt.wantBy, q.SortBy)
			assert.Equal(t, tt.wantDir, q.SortDir)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Value: "ACTIVE", Operator: dto.FilterOperatorEq, Table: "fields"},
			wantWhere: "fields.status = :status",
			wantArgs:  map[string]any{"status": "ACTIVE"},
		},
		{
			name:      "like wraps value",
			filter:    dto.Filter{ArgName: "q", Field: "name", Value: "futsal", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:q)",
			wantArgs:  map[string]any{"q": "%futsal%"},
		},
		{
			name:      "in expands slice",
			filter:    dto.Filter{Field: "start_hour", Value: []int{8, 9}, Operator: dto.FilterOperatorIn},
			wantWhere: "start_hour IN (:start_hour_0, :start_hour_1)",
			wantArgs:  map[string]any{"start_hour_0": 8, "start_hour_1": 9},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "less or equal",
			filter:    dto.Filter{ArgName: "until", Field: "booking_date", Value: "2026-02-01", Operator: dto.FilterOperatorLessEq, Table: "bookings"},
			wantWhere: "bookings.booking_date <= :until",
			wantArgs:  map[string]any{"until": "2026-02-01"},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "name", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull, Table: "bookings"},
			wantWhere: "bookings.deleted_at IS NULL",
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

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "ACTIVE", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "a", Field: "name", Value: "A", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "b", Field: "name", Value: "B", Operator: dto.FilterOperatorEq},
				},
			},
			dto.Filter{Field: "ignored", Operator: "between"},
			"not a filter",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (name = :a OR name = :b))", where)
	assert.Equal(t, map[string]any{"status": "ACTIVE", "a": "A", "b": "B"}, args)
}

func TestFilterFromQuery(t *testing.T) {
	values := url.Values{
		"status": {"PENDING"},
		"email":  {"budi@students.undip.ac.id"},
		"name":   {""},
	}

	group := dto.FilterFromQuery(values, "bookings",
		dto.QueryField{Param: "status"},
		dto.QueryField{Param: "email", Column: "customer_email"},
		dto.QueryField{Param: "name", Operator: dto.FilterOperatorLike},
	)

	require.Len(t, group.Filters, 2)
	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)

	where, args := group.GetWhereClause()
	assert.Equal(t, "(bookings.status = :status AND bookings.customer_email = :email)", where)
	assert.Equal(t, map[string]any{"status": "PENDING", "email": "budi@students.undip.ac.id"}, args)

	t.Run("nothing set yields empty clause", func(t *testing.T) {
		empty := dto.FilterFromQuery(url.Values{}, "bookings", dto.QueryField{Param: "status"})

		where, _ := empty.GetWhereClause()
		assert.Empty(t, where)
	})
}
