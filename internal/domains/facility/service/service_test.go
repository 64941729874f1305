package service_test

import (
	"context"
	"errors"
	"testing"

	otelMocks "dipsport/infras/otel/mocks"
	pgMocks "dipsport/infras/postgres/mocks"
	"dipsport/internal/domains/facility/mocks"
	"dipsport/internal/domains/facility/model"
	"dipsport/internal/domains/facility/model/dto"
	"dipsport/internal/domains/facility/service"
	cacheMocks "dipsport/shared/cache/mocks"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Facility, *mocks.MockFacility, *mocks.MockLink) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockFacility(ctrl)
	links := mocks.NewMockLink(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(repo, links, pgMocks.NewTransactor(), redis, otelMocks.NewOtel()), repo, links
}

func TestFacility_Create(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f model.Facility) error {
		assert.Equal(t, "Mushola", f.Name)
		assert.NotEmpty(t, f.ID)

		return nil
	})

	res, err := svc.Create(context.Background(), dto.CreateFacilityRequest{Name: "Mushola"})
	require.NoError(t, err)
	assert.Equal(t, "Mushola", res.Name)
}

func TestFacility_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *mocks.MockFacility, links *mocks.MockLink)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "removes links before the facility",
			setupMock: func(repo *mocks.MockFacility, links *mocks.MockLink) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				gomock.InOrder(
					links.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
						func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
							_, args := filter.GetWhereClause()
							assert.Equal(t, "fac-1", args[model.FieldLinkFacilityID])

							return nil
						}),
					repo.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name: "missing facility",
			setupMock: func(repo *mocks.MockFacility, _ *mocks.MockLink) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "link removal failure aborts",
			setupMock: func(repo *mocks.MockFacility, links *mocks.MockLink) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				links.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(errors.New("deadlock"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, links := newService(t)
			tt.setupMock(repo, links)

			err := svc.Delete(context.Background(), "fac-1")

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failureCode(err))
		})
	}
}

func failureCode(err error) int {
	return failure.GetCode(err)
}
