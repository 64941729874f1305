package service_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"dipsport/config"
	otelMocks "dipsport/infras/otel/mocks"
	pgMocks "dipsport/infras/postgres/mocks"
	s3Mocks "dipsport/infras/s3/mocks"
	adminMocks "dipsport/internal/domains/admin/mocks"
	adminModel "dipsport/internal/domains/admin/model"
	bookingMocks "dipsport/internal/domains/booking/mocks"
	facilityMocks "dipsport/internal/domains/facility/mocks"
	facilityModel "dipsport/internal/domains/facility/model"
	fieldMocks "dipsport/internal/domains/field/mocks"
	fieldModel "dipsport/internal/domains/field/model"
	hourMocks "dipsport/internal/domains/operatinghour/mocks"
	stadiumMocks "dipsport/internal/domains/stadium/mocks"
	"dipsport/internal/domains/stadium/model"
	"dipsport/internal/domains/stadium/model/dto"
	"dipsport/internal/domains/stadium/service"
	"dipsport/shared/cache"
	cacheMocks "dipsport/shared/cache/mocks"
	"dipsport/shared/constant"
	gDto "dipsport/shared/dto"
	"dipsport/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type deps struct {
	stadiums    *stadiumMocks.MockStadium
	images      *stadiumMocks.MockImage
	fields      *fieldMocks.MockField
	fieldImages *fieldMocks.MockImage
	details     *bookingMocks.MockDetail
	facilities  *facilityMocks.MockFacility
	links       *facilityMocks.MockLink
	hours       *hourMocks.MockOperatingHour
	logs        *adminMocks.MockLog
	s3          *s3Mocks.MockS3
	cache       *cacheMocks.MockRedisCache
}

func newService(t *testing.T, policy string) (service.Stadium, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	d := deps{
		stadiums:    stadiumMocks.NewMockStadium(ctrl),
		images:      stadiumMocks.NewMockImage(ctrl),
		fields:      fieldMocks.NewMockField(ctrl),
		fieldImages: fieldMocks.NewMockImage(ctrl),
		details:     bookingMocks.NewMockDetail(ctrl),
		facilities:  facilityMocks.NewMockFacility(ctrl),
		links:       facilityMocks.NewMockLink(ctrl),
		hours:       hourMocks.NewMockOperatingHour(ctrl),
		logs:        adminMocks.NewMockLog(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.App.DeletePolicy = policy

	repos := service.Repositories{
		Stadium:    d.stadiums,
		Image:      d.images,
		Field:      d.fields,
		FieldImage: d.fieldImages,
		Detail:     d.details,
		Facility:   d.facilities,
		Link:       d.links,
		Hour:       d.hours,
		Log:        d.logs,
	}

	return service.New(repos, pgMocks.NewTransactor(), d.s3, d.cache, cfg, otelMocks.NewOtel()), d
}

func asAdmin() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func liveStadium(status string) model.Stadium {
	return model.Stadium{ID: "stadium-1", Name: "Stadion Undip", Status: status}
}

func TestStadium_SetStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   model.Stadium
		target    string
		setupMock func(d deps)
		wantErr   error
	}{
		{
			name:    "deactivation cascades to fields",
			current: liveStadium(constant.StatusActive),
			target:  constant.StatusInactive,
			setupMock: func(d deps) {
				d.stadiums.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.StatusInactive, req[model.FieldStatus])

						return nil
					})
				d.fields.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, constant.StatusInactive, req[fieldModel.FieldStatus])

						where, args := filter.GetWhereClause()
						assert.Contains(t, where, "fields.stadium_id")
						assert.Equal(t, "stadium-1", args[fieldModel.FieldStadiumID])

						return nil
					})
				d.logs.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, entry adminModel.Log) error {
						assert.Equal(t, adminModel.ActionStadiumStatus, entry.Action)

						return nil
					})
			},
		},
		{
			name:    "activation leaves fields alone",
			current: liveStadium(constant.StatusInactive),
			target:  constant.StatusActive,
			setupMock: func(d deps) {
				d.stadiums.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(nil)
				d.logs.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "same status is a no-op",
			current: liveStadium(constant.StatusActive),
			target:  constant.StatusActive,
		},
		{
			name:    "missing stadium",
			current: model.Stadium{},
			target:  constant.StatusInactive,
			wantErr: failure.ErrStadiumNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t, config.DeletePolicySoft)

			d.stadiums.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(tt.current, nil)

			if tt.setupMock != nil {
				tt.setupMock(d)
			}

			err := svc.SetStatus(asAdmin(), "stadium-1", dto.SetStatusRequest{Status: tt.target})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestStadium_DeleteBlockedByActiveBookings(t *testing.T) {
	for _, policy := range []string{config.DeletePolicySoft, config.DeletePolicyHard} {
		t.Run(policy, func(t *testing.T) {
			svc, d := newService(t, policy)

			d.stadiums.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(liveStadium(constant.StatusActive), nil)
			d.fields.EXPECT().GetAllTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return([]fieldModel.Field{{ID: "F1"}, {ID: "F2"}}, nil)
			d.details.EXPECT().ActiveOnFieldsTx(gomock.Any(), gomock.Nil(), []string{"F1", "F2"}).Return(true, nil)

			err := svc.Delete(asAdmin(), "stadium-1")

			assert.ErrorIs(t, err, failure.ErrActiveBookingsExist)
		})
	}
}

func TestStadium_DeleteSoft(t *testing.T) {
	svc, d := newService(t, config.DeletePolicySoft)

	d.stadiums.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(liveStadium(constant.StatusActive), nil)
	d.fields.EXPECT().GetAllTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return([]fieldModel.Field{{ID: "F1"}}, nil)
	d.details.EXPECT().ActiveOnFieldsTx(gomock.Any(), gomock.Nil(), []string{"F1"}).Return(false, nil)

	retired := func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, constant.StatusInactive, req[fieldModel.FieldStatus])
		assert.NotNil(t, req[constant.FieldDeletedAt])

		return nil
	}

	d.fields.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).DoAndReturn(retired)
	d.stadiums.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).DoAndReturn(retired)
	d.logs.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, entry adminModel.Log) error {
			assert.Equal(t, adminModel.ActionStadiumDelete, entry.Action)

			return nil
		})

	require.NoError(t, svc.Delete(asAdmin(), "stadium-1"))
}

func TestStadium_DeleteHard(t *testing.T) {
	svc, d := newService(t, config.DeletePolicyHard)

	removed := make(chan string, 4)

	gomock.InOrder(
		d.stadiums.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(liveStadium(constant.StatusActive), nil),
		d.fields.EXPECT().GetAllTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return([]fieldModel.Field{{ID: "F1"}}, nil),
		d.details.EXPECT().ActiveOnFieldsTx(gomock.Any(), gomock.Nil(), []string{"F1"}).Return(false, nil),
		d.fieldImages.EXPECT().GetAllTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return([]fieldModel.Image{
			{ID: "fi-1", FieldID: "F1", ImageURL: "https://cdn.example.com/field/a.png"},
		}, nil),
		d.details.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
		d.fieldImages.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
		d.fields.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
		d.images.EXPECT().GetAllTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return([]model.Image{
			{ID: "si-1", StadiumID: "stadium-1", ImageURL: "https://cdn.example.com/stadium/b.png"},
		}, nil),
		d.images.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
		d.links.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
		d.hours.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
		d.stadiums.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
		d.logs.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil),
	)

	d.s3.EXPECT().Remove(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, url string) error {
		removed <- url

		return nil
	}).Times(2)

	require.NoError(t, svc.Delete(asAdmin(), "stadium-1"))

	var urls []string

	for range 2 {
		select {
		case url := <-removed:
			urls = append(urls, url)
		case <-time.After(time.Second):
			t.Fatal("image objects were not removed")
		}
	}

	sort.Strings(urls)
	assert.Equal(t, []string{"https://cdn.example.com/field/a.png", "https://cdn.example.com/stadium/b.png"}, urls)
}

func TestStadium_DeleteHardWithoutFields(t *testing.T) {
	svc, d := newService(t, config.DeletePolicyHard)

	d.stadiums.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(liveStadium(constant.StatusInactive), nil)
	d.fields.EXPECT().GetAllTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(nil, nil)
	d.images.EXPECT().GetAllTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(nil, nil)
	d.images.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.links.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.hours.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
	d.stadiums.EXPECT().DeleteTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "stadium-1"))
}

func TestStadium_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		svc, d := newService(t, config.DeletePolicySoft)

		d.cache.EXPECT().Get(gomock.Any(), "stadium:get:stadium-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, value any) error {
				value.(*dto.StadiumResponse).Name = "cached"

				return nil
			})

		res, err := svc.Get(context.Background(), "stadium-1")
		require.NoError(t, err)
		assert.Equal(t, "cached", res.Name)
	})

	t.Run("soft deleted stadium is not found", func(t *testing.T) {
		svc, d := newService(t, config.DeletePolicySoft)

		deletedAt := time.Now()
		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		d.stadiums.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Stadium{ID: "stadium-1", DeletedAt: &deletedAt}, nil)

		_, err := svc.Get(context.Background(), "stadium-1")
		assert.ErrorIs(t, err, failure.ErrStadiumNotFound)
	})

	t.Run("loads images and facilities", func(t *testing.T) {
		svc, d := newService(t, config.DeletePolicySoft)

		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		d.stadiums.EXPECT().Get(gomock.Any(), gomock.Any()).Return(liveStadium(constant.StatusActive), nil)
		d.images.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Image{{ID: "si-1", ImageURL: "https://cdn.example.com/x.png"}}, nil)
		d.links.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]facilityModel.StadiumFacility{
			{StadiumID: "stadium-1", FacilityID: "fac-1"},
		}, nil)
		d.facilities.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]facilityModel.Facility{{ID: "fac-1", Name: "Toilet"}}, nil)

		res, err := svc.Get(context.Background(), "stadium-1")
		require.NoError(t, err)
		assert.Len(t, res.Images, 1)
		assert.Equal(t, "Toilet", res.Facilities[0].Name)
	})
}

func TestStadium_UploadImageCleansUpOnFailure(t *testing.T) {
	svc, d := newService(t, config.DeletePolicySoft)

	removed := make(chan string, 1)

	d.stadiums.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	d.s3.EXPECT().Upload(gomock.Any(), model.EntityName, gomock.Any(), gomock.Any()).Return("https://cdn.example.com/stadium/new.png", nil)
	d.images.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	d.s3.EXPECT().Remove(gomock.Any(), "https://cdn.example.com/stadium/new.png").DoAndReturn(func(_ context.Context, url string) error {
		removed <- url

		return nil
	})

	_, err := svc.UploadImage(context.Background(), "stadium-1", dto.UploadImageRequest{})
	require.Error(t, err)

	select {
	case <-removed:
	case <-time.After(time.Second):
		t.Fatal("uploaded object was not removed")
	}
}

func TestStadium_AttachFacility(t *testing.T) {
	t.Run("already linked", func(t *testing.T) {
		svc, d := newService(t, config.DeletePolicySoft)

		d.stadiums.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		d.facilities.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		d.links.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.NoError(t, svc.AttachFacility(context.Background(), "stadium-1", "fac-1"))
	})

	t.Run("unknown facility", func(t *testing.T) {
		svc, d := newService(t, config.DeletePolicySoft)

		d.stadiums.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		d.facilities.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.AttachFacility(context.Background(), "stadium-1", "fac-x")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("links facility", func(t *testing.T) {
		svc, d := newService(t, config.DeletePolicySoft)

		d.stadiums.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		d.facilities.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		d.links.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		d.links.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, link facilityModel.StadiumFacility) error {
			assert.Equal(t, "stadium-1", link.StadiumID)
			assert.Equal(t, "fac-1", link.FacilityID)

			return nil
		})

		assert.NoError(t, svc.AttachFacility(context.Background(), "stadium-1", "fac-1"))
	})
}

func TestStadium_UpdateMissing(t *testing.T) {
	svc, d := newService(t, config.DeletePolicySoft)

	d.stadiums.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.Update(context.Background(), "missing", dto.UpdateStadiumRequest{Name: "x"})
	assert.ErrorIs(t, err, failure.ErrStadiumNotFound)
}
