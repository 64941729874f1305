package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/internal/domains/operatinghour/model"
	gDto "dipsport/shared/dto"
	gRepo "dipsport/shared/repository"

	"github.com/jmoiron/sqlx"
)

type OperatingHour interface {
	Insert(ctx context.Context, model model.OperatingHour) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.OperatingHour, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.OperatingHour, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.OperatingHour]
}

func New(db *postgres.Connection, otel otel.Otel) OperatingHour {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.OperatingHour](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
