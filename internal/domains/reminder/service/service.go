package service

import (
	"context"
	"fmt"
	"time"

	"dipsport/config"
	"dipsport/infras/notifier"
	"dipsport/infras/otel"
	"dipsport/internal/domains/booking/model"
	"dipsport/internal/domains/booking/repository"
	"dipsport/internal/domains/reminder/model/dto"
	"dipsport/shared/constant"
	"dipsport/shared/failure"
	"dipsport/shared/timezone"

	"github.com/rs/zerolog/log"
)

// JobName identifies the reminder sweep in the scheduler and in traces.
const JobName = "booking-reminder"

type Summary struct {
	Found  int
	Sent   int
	Failed int
}

type Reminder interface {
	// RunSweep notifies every approved booking holding a slot on the day after reference.
	RunSweep(ctx context.Context, reference time.Time) (Summary, error)
	Sweep(ctx context.Context, req dto.SweepRequest) (dto.SweepResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	notifier notifier.Notifier
	clock    timezone.Clock
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Booking, notifier notifier.Notifier, clock timezone.Clock, cfg *config.Config, otel otel.Otel) Reminder {
	return &serviceImpl{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) RunSweep(ctx context.Context, reference time.Time) (summary Summary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reminder.RunSweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start := timezone.DateKey(reference).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 1)

	reminders, err := s.repo.GetApprovedBetween(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Time("date", start).Msg("failed to load bookings to remind")

		return summary, fmt.Errorf("failed to load bookings to remind: %w", err)
	}

	summary.Found = len(reminders)
	log.Info().Str("date", start.Format(time.DateOnly)).Int("found", summary.Found).Msg("running booking reminder sweep")

	delay := time.Duration(s.cfg.Scheduler.Reminder.DelayMS) * time.Millisecond

	// A started sweep runs to the end even when the caller goes away.
	ctx = context.WithoutCancel(ctx)

	for i, reminder := range reminders {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		if err := s.send(ctx, reminder); err != nil {
			summary.Failed++
			log.Error().Err(err).Str("code", reminder.Code).Str("email", reminder.Email).Msg("failed to send booking reminder")

			continue
		}

		summary.Sent++
		log.Debug().Str("code", reminder.Code).Str("email", reminder.Email).Msg("booking reminder sent")
	}

	log.Info().Int("sent", summary.Sent).Int("failed", summary.Failed).Msg("booking reminder sweep finished")

	return summary, nil
}

// send reports a panicking notifier as an error so one recipient cannot end the sweep.
func (s *serviceImpl) send(ctx context.Context, reminder model.Reminder) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()

	subject, body, err := render(newReminderView(reminder, s.cfg.Notifier.FromName))
	if err != nil {
		return err
	}

	return s.notifier.Send(ctx, notifier.Message{ //nolint:wrapcheck
		To:      reminder.Email,
		From:    s.cfg.Notifier.FromName,
		Subject: subject,
		Body:    body,
		Ref:     reminder.Code,
	})
}

// Sweep runs the sweep on demand. An empty reference date means today.
func (s *serviceImpl) Sweep(ctx context.Context, req dto.SweepRequest) (res dto.SweepResponse, err error) {
	reference := s.clock.Now()

	if req.ReferenceDate != constant.Empty {
		reference, err = timezone.Parse(constant.DateOnly, req.ReferenceDate)
		if err != nil {
			return res, failure.BadRequestFromString("invalid reference date")
		}
	}

	summary, err := s.RunSweep(ctx, reference)
	if err != nil {
		return res, err
	}

	return dto.SweepResponse{
		TargetDate: timezone.DateKey(reference).AddDate(0, 0, 1).Format(time.DateOnly),
		Found:      summary.Found,
		Sent:       summary.Sent,
		Failed:     summary.Failed,
	}, nil
}

// Job adapts RunSweep for the scheduler.
func Job(svc Reminder, clock timezone.Clock) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := svc.RunSweep(ctx, clock.Now())

		return err
	}
}
