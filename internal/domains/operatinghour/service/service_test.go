package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dipsport/config"
	otelMocks "dipsport/infras/otel/mocks"
	"dipsport/internal/domains/booking/availability"
	"dipsport/internal/domains/operatinghour/mocks"
	"dipsport/internal/domains/operatinghour/model"
	"dipsport/internal/domains/operatinghour/model/dto"
	"dipsport/internal/domains/operatinghour/service"
	stadiumMocks "dipsport/internal/domains/stadium/mocks"
	"dipsport/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// 2024-06-03 is a Monday.
var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) (service.OperatingHour, *mocks.MockOperatingHour, *stadiumMocks.MockStadium) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOperatingHour(ctrl)
	stadiums := stadiumMocks.NewMockStadium(ctrl)

	cfg := &config.Config{}
	cfg.App.OperatingHour.Open = 8
	cfg.App.OperatingHour.Close = 22

	return service.New(repo, stadiums, cfg, otelMocks.NewOtel()), repo, stadiums
}

func TestDayOf(t *testing.T) {
	assert.Equal(t, model.DayMonday, model.DayOf(monday))
	assert.Equal(t, model.DaySunday, model.DayOf(monday.AddDate(0, 0, 6)))
}

func TestOperatingHour_WindowFor(t *testing.T) {
	tests := []struct {
		name      string
		stadiumID string
		setupMock func(repo *mocks.MockOperatingHour)
		want      availability.Window
		wantErr   bool
	}{
		{
			name:      "no stadium uses the global window",
			stadiumID: "",
			want:      availability.Window{Open: 8, Close: 22},
		},
		{
			name:      "stadium without a row for the day falls back",
			stadiumID: "stadium-1",
			setupMock: func(repo *mocks.MockOperatingHour) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.OperatingHour{}, nil)
			},
			want: availability.Window{Open: 8, Close: 22},
		},
		{
			name:      "stadium row overrides the global window",
			stadiumID: "stadium-1",
			setupMock: func(repo *mocks.MockOperatingHour) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.OperatingHour{
					ID: "oh-1", StadiumID: "stadium-1", Day: model.DayMonday, OpenHour: 6, CloseHour: 18,
				}, nil)
			},
			want: availability.Window{Open: 6, Close: 18},
		},
		{
			name:      "repository error",
			stadiumID: "stadium-1",
			setupMock: func(repo *mocks.MockOperatingHour) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.OperatingHour{}, errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := svc.WindowFor(context.Background(), tt.stadiumID, monday)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperatingHour_Set(t *testing.T) {
	req := dto.SetOperatingHourRequest{Day: model.DayMonday, OpenHour: 7, CloseHour: 20}

	t.Run("unknown stadium", func(t *testing.T) {
		svc, _, stadiums := newService(t)

		stadiums.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Set(context.Background(), "missing", req)
		assert.ErrorIs(t, err, failure.ErrStadiumNotFound)
	})

	t.Run("creates a row for a new day", func(t *testing.T) {
		svc, repo, stadiums := newService(t)

		stadiums.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.OperatingHour{}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.OperatingHour) error {
			assert.Equal(t, "stadium-1", m.StadiumID)
			assert.Equal(t, 7, m.OpenHour)
			assert.Equal(t, 20, m.CloseHour)

			return nil
		})

		res, err := svc.Set(context.Background(), "stadium-1", req)
		require.NoError(t, err)
		assert.Equal(t, model.DayMonday, res.Day)
	})

	t.Run("updates an existing day", func(t *testing.T) {
		svc, repo, stadiums := newService(t)

		stadiums.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.OperatingHour{
			ID: "oh-1", StadiumID: "stadium-1", Day: model.DayMonday, OpenHour: 8, CloseHour: 22,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, update map[string]any, _ any) error {
				assert.Equal(t, 7, update[model.FieldOpenHour])
				assert.Equal(t, 20, update[model.FieldCloseHour])

				return nil
			})

		res, err := svc.Set(context.Background(), "stadium-1", req)
		require.NoError(t, err)
		assert.Equal(t, "oh-1", res.ID)
		assert.Equal(t, 20, res.CloseHour)
	})
}

func TestOperatingHour_GetAllAndDelete(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.OperatingHour{
		{ID: "oh-1", Day: model.DayMonday, OpenHour: 6, CloseHour: 18},
		{ID: "oh-2", Day: model.DaySaturday, OpenHour: 9, CloseHour: 23},
	}, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	hours, err := svc.GetAll(context.Background(), "stadium-1")
	require.NoError(t, err)
	assert.Len(t, hours, 2)

	assert.NoError(t, svc.Delete(context.Background(), "stadium-1", model.DaySaturday))
}
