package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"dipsport/infras/otel"
	"dipsport/infras/postgres"
	"dipsport/internal/domains/facility/model"
	gDto "dipsport/shared/dto"
	gRepo "dipsport/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Facility interface {
	Insert(ctx context.Context, model model.Facility) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Facility, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Facility, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

// Link is the stadium to facility join table.
type Link interface {
	Insert(ctx context.Context, model model.StadiumFacility) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.StadiumFacility, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Facility]
}

func New(db *postgres.Connection, otel otel.Otel) Facility {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Facility](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type linkRepositoryImpl struct {
	gRepo.Repository[model.StadiumFacility]
}

func NewLink(db *postgres.Connection, otel otel.Otel) Link {
	return &linkRepositoryImpl{
		Repository: gRepo.NewRepository[model.StadiumFacility](model.LinkEntityName, model.LinkTableName, model.FieldLinkStadiumID, db, otel),
	}
}
