package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/internal/domains/admin/model"
	gDto "dipsport/shared/dto"
	gRepo "dipsport/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Admin interface {
	Insert(ctx context.Context, model model.Admin) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Admin, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

// Log only appends and reads. Audit entries are never updated or deleted.
type Log interface {
	Insert(ctx context.Context, model model.Log) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Log) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Log, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Admin]
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Admin](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type logRepositoryImpl struct {
	gRepo.Repository[model.Log]
}

func NewLog(db *postgres.Connection, otel otel.Otel) Log {
	return &logRepositoryImpl{
		Repository: gRepo.NewRepository[model.Log](model.LogEntityName, model.LogTableName, model.FieldID, db, otel),
	}
}
