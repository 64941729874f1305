package shared_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dipsport/shared"
	cacheMocks "dipsport/shared/cache/mocks"
	"dipsport/shared/constant"
	"dipsport/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		expected     int
	}{
		{name: "no rows", total: 0, limit: 10, expected: 1},
		{name: "invalid limit", total: 25, limit: 0, expected: 1},
		{name: "exact division", total: 30, limit: 10, expected: 3},
		{name: "remainder rounds up", total: 31, limit: 10, expected: 4},
		{name: "fewer rows than a page", total: 3, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Name        string  `db:"name"`
		Price       int     `db:"price"`
		Description *string `db:"description"`
		Status      string  `db:"status"`
		Ignored     string
	}

	description := "indoor court"

	fields := shared.TransformFields(patch{
		Name:        "Lapangan A",
		Description: &description,
		Ignored:     "x",
	}, "admin-1")

	assert.Equal(t, "Lapangan A", fields["name"])
	assert.Equal(t, "indoor court", fields["description"])
	assert.NotContains(t, fields, "price")
	assert.NotContains(t, fields, "status")
	assert.NotContains(t, fields, "Ignored")
	assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("st-1", "id", "stadiums")
	where, args := group.GetWhereClause()

	assert.Equal(t, "(stadiums.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "st-1"}, args)
}

func TestFilterByIDNotDeleted(t *testing.T) {
	group := shared.FilterByIDNotDeleted("f-1", "id", "fields")
	where, args := group.GetWhereClause()

	assert.Equal(t, "(fields.id = :id AND fields.deleted_at IS NULL)", where)
	assert.Equal(t, map[string]any{"id": "f-1"}, args)
}

func TestWithoutDeleted(t *testing.T) {
	t.Run("empty filter", func(t *testing.T) {
		group := shared.WithoutDeleted(dto.FilterGroup{}, "stadiums")
		where, _ := group.GetWhereClause()

		assert.Equal(t, "(stadiums.deleted_at IS NULL)", where)
	})

	t.Run("narrows existing filter", func(t *testing.T) {
		filter := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters:  []any{dto.Filter{Field: "status", Value: "ACTIVE", Operator: dto.FilterOperatorEq, Table: "stadiums"}},
		}

		group := shared.WithoutDeleted(filter, "stadiums")
		where, args := group.GetWhereClause()

		assert.Equal(t, "((stadiums.status = :status) AND stadiums.deleted_at IS NULL)", where)
		assert.Equal(t, map[string]any{"status": "ACTIVE"}, args)
	})
}

func TestActor(t *testing.T) {
	t.Run("anonymous request", func(t *testing.T) {
		_, ok := shared.AdminID(context.Background())

		assert.False(t, ok)
		assert.Equal(t, constant.ContextSystem, shared.Actor(context.Background()))
	})

	t.Run("empty id is anonymous", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "")

		assert.Equal(t, constant.ContextSystem, shared.Actor(ctx))
	})

	t.Run("authenticated admin", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-7")

		id, ok := shared.AdminID(ctx)
		require.True(t, ok)
		assert.Equal(t, "admin-7", id)
		assert.Equal(t, "admin-7", shared.Actor(ctx))
	})
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "stadium", shared.BuildCacheKey("stadium"))
	assert.Equal(t, "field:f-1:2026-03-01", shared.BuildCacheKey("field", "f-1", "2026-03-01"))
	assert.Equal(t, "hours:st-1:3", shared.BuildCacheKey("hours", "st-1", 3))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "name", SortDir: "ASC"}
	active := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "ACTIVE", Operator: dto.FilterOperatorEq}}}
	inactive := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "INACTIVE", Operator: dto.FilterOperatorEq}}}

	first := shared.BuildCacheKeyWithQuery("stadium:list", params, active)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("stadium:list", params, active))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("stadium:list", params, inactive))
	assert.Regexp(t, `^stadium:list:[0-9a-f]{64}$`, first)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "stadium:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "stadium:")

	redisCache.EXPECT().Clear(gomock.Any(), "field:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "field:")
}
