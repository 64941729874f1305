package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dipsport/config"
	"dipsport/infras/notifier"
	notifierMocks "dipsport/infras/notifier/mocks"
	otelMocks "dipsport/infras/otel/mocks"
	bookingMocks "dipsport/internal/domains/booking/mocks"
	"dipsport/internal/domains/booking/model"
	"dipsport/internal/domains/reminder/model/dto"
	"dipsport/internal/domains/reminder/service"
	"dipsport/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

var reference = time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Notifier.FromName = "VENUE UNDIP"

	return cfg
}

func approved(code string, slots ...model.ReminderSlot) model.Reminder {
	return model.Reminder{
		Booking: model.Booking{
			ID:            code,
			Code:          code,
			Name:          "Budi",
			Email:         code + "@mail.test",
			TotalPrice:    150000,
			Status:        model.StatusApproved,
			PaymentStatus: model.PaymentPaid,
		},
		Slots: slots,
	}
}

func slot(hour int) model.ReminderSlot {
	return model.ReminderSlot{
		BookingDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		StartHour:   hour,
		FieldName:   "Lapangan A",
		StadiumName: "Stadion UNDIP",
	}
}

func TestReminder_RunSweep(t *testing.T) {
	tests := []struct {
		name       string
		reminders  []model.Reminder
		sendErrors map[string]error
		want       service.Summary
	}{
		{
			name:      "every approved booking is notified",
			reminders: []model.Reminder{approved("DS-1", slot(10)), approved("DS-2", slot(11)), approved("DS-3", slot(12))},
			want:      service.Summary{Found: 3, Sent: 3},
		},
		{
			name:       "a failed send does not stop the sweep",
			reminders:  []model.Reminder{approved("DS-1", slot(10)), approved("DS-2", slot(11)), approved("DS-3", slot(12))},
			sendErrors: map[string]error{"DS-2": errors.New("smtp down")},
			want:       service.Summary{Found: 3, Sent: 2, Failed: 1},
		},
		{
			name: "nothing to remind",
			want: service.Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)
			sender := notifierMocks.NewMockNotifier(ctrl)

			repo.EXPECT().GetApprovedBetween(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, start, end time.Time) ([]model.Reminder, error) {
					assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), start)
					assert.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), end)

					return tt.reminders, nil
				})

			sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, msg notifier.Message) error {
					assert.Equal(t, msg.Ref+"@mail.test", msg.To)

					return tt.sendErrors[msg.Ref]
				}).Times(len(tt.reminders))

			svc := service.New(repo, sender, fixedClock(reference), newConfig(), otelMocks.NewOtel())

			got, err := svc.RunSweep(context.Background(), reference)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReminder_RunSweepQueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	sender := notifierMocks.NewMockNotifier(ctrl)

	repo.EXPECT().GetApprovedBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	svc := service.New(repo, sender, fixedClock(reference), newConfig(), otelMocks.NewOtel())

	_, err := svc.RunSweep(context.Background(), reference)
	assert.Error(t, err)
}

func TestReminder_MessageContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	sender := notifierMocks.NewMockNotifier(ctrl)

	repo.EXPECT().GetApprovedBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reminder{approved("DS-9", slot(19), slot(8))}, nil)

	var sent notifier.Message

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notifier.Message) error {
		sent = msg

		return nil
	})

	svc := service.New(repo, sender, fixedClock(reference), newConfig(), otelMocks.NewOtel())

	_, err := svc.RunSweep(context.Background(), reference)
	require.NoError(t, err)

	assert.Equal(t, "Pengingat: Booking Besok - DS-9 | VENUE UNDIP", sent.Subject)
	assert.Contains(t, sent.Body, "2024-06-03")
	assert.Contains(t, sent.Body, "Stadion UNDIP / Lapangan A: 08:00-09:00, 19:00-20:00")
	assert.Contains(t, sent.Body, "Rp 150.000")
}

func TestReminder_Sweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	sender := notifierMocks.NewMockNotifier(ctrl)
	svc := service.New(repo, sender, fixedClock(reference), newConfig(), otelMocks.NewOtel())

	t.Run("defaults to today", func(t *testing.T) {
		repo.EXPECT().GetApprovedBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := svc.Sweep(context.Background(), dto.SweepRequest{})
		require.NoError(t, err)
		assert.Equal(t, "2024-06-03", res.TargetDate)
	})

	t.Run("explicit reference date", func(t *testing.T) {
		repo.EXPECT().GetApprovedBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := svc.Sweep(context.Background(), dto.SweepRequest{ReferenceDate: "2024-12-31"})
		require.NoError(t, err)
		assert.Equal(t, "2025-01-01", res.TargetDate)
	})

	t.Run("malformed reference date", func(t *testing.T) {
		_, err := svc.Sweep(context.Background(), dto.SweepRequest{ReferenceDate: "31/12/2024"})
		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestReminder_RunSweepCompletesAfterCallerLeaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	sender := notifierMocks.NewMockNotifier(ctrl)

	repo.EXPECT().GetApprovedBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reminder{approved("DS-1", slot(10)), approved("DS-2", slot(11)), approved("DS-3", slot(12))}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ notifier.Message) error {
		return ctx.Err()
	}).Times(3)

	cfg := newConfig()
	cfg.Scheduler.Reminder.DelayMS = 50

	svc := service.New(repo, sender, fixedClock(reference), cfg, otelMocks.NewOtel())

	got, err := svc.RunSweep(ctx, reference)
	require.NoError(t, err)
	assert.Equal(t, service.Summary{Found: 3, Sent: 3}, got)
}

func TestReminder_RunSweepPanickingNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	sender := notifierMocks.NewMockNotifier(ctrl)

	repo.EXPECT().GetApprovedBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reminder{approved("DS-1", slot(10)), approved("DS-2", slot(11)), approved("DS-3", slot(12))}, nil)

	var sent []string

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notifier.Message) error {
		if msg.Ref == "DS-1" {
			panic("broken recipient")
		}

		sent = append(sent, msg.Ref)

		return nil
	}).Times(3)

	svc := service.New(repo, sender, fixedClock(reference), newConfig(), otelMocks.NewOtel())

	var (
		got service.Summary
		err error
	)

	require.NotPanics(t, func() {
		got, err = svc.RunSweep(context.Background(), reference)
	})
	require.NoError(t, err)
	assert.Equal(t, service.Summary{Found: 3, Sent: 2, Failed: 1}, got)
	assert.Equal(t, []string{"DS-2", "DS-3"}, sent)
}

func TestReminder_RunSweepPacesSends(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	sender := notifierMocks.NewMockNotifier(ctrl)

	repo.EXPECT().GetApprovedBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reminder{approved("DS-1", slot(10)), approved("DS-2", slot(11)), approved("DS-3", slot(12))}, nil)

	var at []time.Time

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, notifier.Message) error {
		at = append(at, time.Now())

		return nil
	}).Times(3)

	cfg := newConfig()
	cfg.Scheduler.Reminder.DelayMS = 40

	svc := service.New(repo, sender, fixedClock(reference), cfg, otelMocks.NewOtel())

	_, err := svc.RunSweep(context.Background(), reference)
	require.NoError(t, err)

	require.Len(t, at, 3)

	for i := 1; i < len(at); i++ {
		assert.GreaterOrEqual(t, at[i].Sub(at[i-1]), 40*time.Millisecond)
	}
}
