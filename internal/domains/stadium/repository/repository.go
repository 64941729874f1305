package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/internal/domains/stadium/model"
	gDto "dipsport/shared/dto"
	gRepo "dipsport/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Stadium interface {
	Insert(ctx context.Context, model model.Stadium) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Stadium, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Stadium, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Stadium, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Image interface {
	Insert(ctx context.Context, model model.Image) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Image, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Image, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Image, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Stadium]
}

func New(db *postgres.Connection, otel otel.Otel) Stadium {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Stadium](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type imageRepositoryImpl struct {
	gRepo.Repository[model.Image]
}

func NewImage(db *postgres.Connection, otel otel.Otel) Image {
	return &imageRepositoryImpl{
		Repository: gRepo.NewRepository[model.Image](model.ImageEntityName, model.ImageTableName, model.FieldID, db, otel),
	}
}
