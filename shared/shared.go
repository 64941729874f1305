package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"dipsport/shared/cache"
	"dipsport/shared/constant"
	"dipsport/shared/dto"
	"dipsport/shared/timezone"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into an update map
// stamped with the modifying actor.
func TransformFields(data interface{}, actor string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			updatedFields[fieldName] = field.Elem().Interface()

			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByIDNotDeleted matches a single live row of a soft-deletable table.
func FilterByIDNotDeleted(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
			dto.Filter{Field: constant.FieldDeletedAt, Operator: dto.FilterIsNull, Table: table},
		},
	}
}

// WithoutDeleted narrows filter to rows of table that are not soft-deleted.
func WithoutDeleted(filter dto.FilterGroup, table string) dto.FilterGroup {
	live := dto.Filter{Field: constant.FieldDeletedAt, Operator: dto.FilterIsNull, Table: table}

	if len(filter.Filters) == 0 {
		return dto.FilterGroup{Filters: []any{live}}
	}

	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{filter, live},
	}
}

// Actor returns the authenticated admin id from the context, or the system actor.
func Actor(ctx context.Context) string {
	if user, ok := AdminID(ctx); ok {
		return user
	}

	return constant.ContextSystem
}

// AdminID returns the authenticated admin id when the request carries one.
func AdminID(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(constant.ContextKeyUserID).(string)

	return user, ok && user != ""
}

func BuildCacheKey(prefix string, parts ...any) string {
	keys := make([]string, 0, len(parts)+1)
	keys = append(keys, prefix)

	for _, part := range parts {
		keys = append(keys, fmt.Sprint(part))
	}

	return strings.Join(keys, ":")
}

// BuildCacheKeyWithQuery hashes list parameters so arbitrarily long filters produce fixed-size keys.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	raw, err := json.Marshal(struct {
		Params dto.QueryParams
		Filter dto.FilterGroup
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key payload")

		return BuildCacheKey(prefix, params.Page, params.Limit, params.SortBy, params.SortDir)
	}

	sum := sha256.Sum256(raw)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches removes every key stored under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
