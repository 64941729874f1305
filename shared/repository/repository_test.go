package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otelMocks "dipsport/infras/otel/mocks"
	"dipsport/shared/dto"
	"dipsport/shared/model"
)

type court struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Price   int    `db:"price"`
	Skipped string `db:"-"`
	Note    string
	model.Metadata
}

func newCourtRepo() Repository[court] {
	return NewRepository[court]("court", "courts", "id", nil, otelMocks.NewOtel())
}

func statusFilter(value string) dto.FilterGroup {
	return dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: value, Operator: dto.FilterOperatorEq, Table: "courts"}}}
}

func TestNewRepository_Columns(t *testing.T) {
	repo := newCourtRepo()

	assert.Equal(t, []string{"id", "name", "price", "created_at", "modified_at", "created_by", "modified_by"}, repo.columns)
	assert.Equal(t,
		"INSERT INTO courts (id, name, price, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :name, :price, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertQuery,
	)
}

func TestRepository_SelectList(t *testing.T) {
	repo := newCourtRepo()

	assert.Equal(t, "courts.id, courts.name", repo.selectList("name", "id"))
	assert.Contains(t, repo.selectList(), "courts.modified_by")
}

func TestRepository_Page(t *testing.T) {
	repo := newCourtRepo()

	tests := []struct {
		name     string
		params   dto.QueryParams
		want     string
		wantArgs map[string]any
	}{
		{name: "nothing", params: dto.QueryParams{}, want: "", wantArgs: map[string]any{}},
		{
			name:     "sorted page",
			params:   dto.QueryParams{Page: 3, Limit: 10, SortBy: "name", SortDir: "ASC"},
			want:     "ORDER BY courts.name ASC LIMIT :limit OFFSET :offset",
			wantArgs: map[string]any{"limit": 10, "offset": 20},
		},
		{
			name:     "limit only",
			params:   dto.QueryParams{Limit: 5},
			want:     "LIMIT :limit",
			wantArgs: map[string]any{"limit": 5},
		},
		{
			name:     "sort without direction ignored",
			params:   dto.QueryParams{SortBy: "name"},
			want:     "",
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}

			assert.Equal(t, tt.want, repo.page(tt.params, args))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRepository_GetQuery(t *testing.T) {
	repo := newCourtRepo()

	tests := []struct {
		name string
		lock string
		want string
	}{
		{name: "plain", want: "SELECT courts.id FROM courts  WHERE (courts.status = :status)  LIMIT 1"},
		{name: "for update", lock: lockUpdate, want: "SELECT courts.id FROM courts  WHERE (courts.status = :status)  LIMIT 1 FOR UPDATE OF courts"},
		{name: "for share", lock: lockShare, want: "SELECT courts.id FROM courts  WHERE (courts.status = :status)  LIMIT 1 FOR SHARE OF courts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := repo.getQuery(statusFilter("ACTIVE"), tt.lock, "id")

			assert.Equal(t, tt.want, query)
			assert.Equal(t, map[string]any{"status": "ACTIVE"}, args)
		})
	}
}

func TestRepository_UpdateQuery(t *testing.T) {
	repo := newCourtRepo()

	t.Run("columns in stable order", func(t *testing.T) {
		at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		query, args, err := repo.updateQuery(map[string]any{"status": "INACTIVE", "modified_at": at, "name": "B"}, statusFilter("ACTIVE"))
		require.NoError(t, err)

		assert.Equal(t, "UPDATE courts SET modified_at = :set_modified_at, name = :set_name, status = :set_status  WHERE (courts.status = :status) ", query)
		assert.Equal(t, "ACTIVE", args["status"])
		assert.Equal(t, "INACTIVE", args["set_status"])
		assert.Equal(t, at, args["set_modified_at"])
	})

	t.Run("empty update", func(t *testing.T) {
		_, _, err := repo.updateQuery(map[string]any{}, statusFilter("ACTIVE"))

		assert.ErrorIs(t, err, errEmptyUpdate)
	})

	t.Run("unfiltered update", func(t *testing.T) {
		_, _, err := repo.updateQuery(map[string]any{"name": "B"}, dto.FilterGroup{})

		assert.ErrorIs(t, err, errRequiredFilter)
	})
}

func TestRepository_DeleteQuery(t *testing.T) {
	repo := newCourtRepo()

	query, args, err := repo.deleteQuery(statusFilter("INACTIVE"))
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM courts  WHERE (courts.status = :status) ", query)
	assert.Equal(t, map[string]any{"status": "INACTIVE"}, args)

	_, _, err = repo.deleteQuery(dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
