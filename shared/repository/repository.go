package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/shared/constant"
	"dipsport/shared/dto"
	"dipsport/shared/logger"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const updateArgPrefix = "set_"

// Row lock strengths for single row reads inside a transaction.
const (
	lockUpdate = "UPDATE"
	lockShare  = "SHARE"
)

var (
	errRequiredFilter = errors.New("required filter")
	errEmptyUpdate    = errors.New("nothing to update")
)

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is a single-table gateway for T. Every field tagged `db`, including those of
// embedded structs, maps to a column of table.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
	insertQuery   string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns := dbColumns(reflect.TypeOf(zero))

	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", ")),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

// fail records err on the span and wraps it with the operation and entity.
func (repo *Repository[T]) fail(scope otel.Scope, op string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", op, repo.entity, err)
}

func (repo *Repository[T]) exec(ctx context.Context, db execer, op, query string, arg any) error {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := db.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, op, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, repo.db.Write, "insert", repo.insertQuery, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, sqltx, "insert", repo.insertQuery, model)
}

// InsertBulkTx writes all models with a single multi-row INSERT.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, sqltx, "bulk insert", repo.insertQuery, models)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.where(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool
	if err := repo.queryRow(ctx, repo.db.Read, query, args, &exist); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// getQuery selects at most one row; lock names the row lock strength, empty for none.
func (repo *Repository[T]) getQuery(filter dto.FilterGroup, lock string, columns ...string) (string, map[string]any) {
	where, args := repo.where(filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT 1", repo.selectList(columns...), repo.table, where)
	if lock != "" {
		query += " FOR " + lock + " OF " + repo.table
	}

	return query, args
}

func (repo *Repository[T]) get(ctx context.Context, db queryer, op string, filter dto.FilterGroup, locking string, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	query, args := repo.getQuery(filter, locking, columns...)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	err := repo.queryRow(ctx, db, query, args, &model)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// Get returns the zero value of T when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, "Get", filter, "", columns...)
}

func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, "GetTx", filter, "", columns...)
}

// GetForUpdateTx reads a row and holds its lock until the transaction ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, "GetForUpdateTx", filter, lockUpdate, columns...)
}

// GetForShareTx reads a row and blocks writers to it until the transaction ends. Concurrent
// readers taking the same share lock do not wait on each other.
func (repo *Repository[T]) GetForShareTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, "GetForShareTx", filter, lockShare, columns...)
}

func (repo *Repository[T]) getAll(ctx context.Context, db queryer, op string, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns...), repo.table, where, repo.page(params, args))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, repo.fail(scope, "prepare statement", err)
	}
	defer prepare.Close()

	var models []T
	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, repo.db.Read, "GetAll", params, filter, columns...)
}

func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, sqltx, "GetAllTx", params, filter, columns...)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s", repo.table, repo.primaryColumn, repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int
	if err := repo.queryRow(ctx, repo.db.Read, query, args, &count); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) deleteQuery(filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.where(filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	return fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	query, args, err := repo.deleteQuery(filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, repo.db.Write, "delete", query, args)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	query, args, err := repo.deleteQuery(filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, sqltx, "delete", query, args)
}

// updateQuery sets columns in a stable order. SET values bind under a prefix so a column can be
// both filtered on and changed.
func (repo *Repository[T]) updateQuery(mod map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	if len(mod) == 0 {
		return "", nil, errEmptyUpdate
	}

	where, args := repo.where(filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	sets := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		arg := updateArgPrefix + col
		sets = append(sets, fmt.Sprintf("%s = :%s", col, arg))
		args[arg] = mod[col]
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where), args, nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	query, args, err := repo.updateQuery(mod, filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, repo.db.Write, "update", query, args)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	query, args, err := repo.updateQuery(mod, filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, sqltx, "update", query, args)
}

func (repo *Repository[T]) queryRow(ctx context.Context, db queryer, query string, args map[string]any, dest any) error {
	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer prepare.Close()

	return prepare.GetContext(ctx, dest, args) //nolint:wrapcheck
}

// selectList renders every mapped column, or only those named in only.
func (repo *Repository[T]) selectList(only ...string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		exprs = append(exprs, repo.table+"."+col)
	}

	return strings.Join(exprs, ", ")
}

// page renders ORDER BY and LIMIT/OFFSET, adding the bound values to args. SortBy is
// interpolated, so callers must restrict it with QueryParams.Sortable.
func (repo *Repository[T]) page(params dto.QueryParams, args map[string]any) string {
	var clauses []string

	if params.SortBy != "" && params.SortDir != "" {
		clauses = append(clauses, fmt.Sprintf("ORDER BY %s.%s %s", repo.table, params.SortBy, params.SortDir))
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		clauses = append(clauses, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			clauses = append(clauses, "OFFSET :offset")
		}
	}

	return strings.Join(clauses, " ")
}

func (repo *Repository[T]) where(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

func dbColumns(reflectType reflect.Type) []string {
	var columns []string

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}

// IsUniqueViolation reports whether err carries a postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}
