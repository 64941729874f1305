package scheduler

import (
	"context"
	"fmt"
	"time"

	"dipsport/infras/otel"
	"dipsport/shared/constant"
	"dipsport/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is a unit of recurring work. Runs are not time boxed and are never cancelled by the trigger.
type Job func(ctx context.Context) error

// Trigger runs jobs on cron expressions evaluated in the application timezone.
// A job still running when its next tick fires is skipped.
type Trigger struct {
	cron *cron.Cron
	otel otel.Otel
}

func New(otel otel.Otel) *Trigger {
	return &Trigger{
		cron: cron.New(
			cron.WithLocation(timezone.GetLocation()),
			cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
		),
		otel: otel,
	}
}

// Register schedules job under name on spec, a standard five field cron expression.
func (t *Trigger) Register(name, spec string, job Job) error {
	_, err := t.cron.AddFunc(spec, func() {
		ctx, scope := t.otel.NewScope(context.Background(), constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+"."+name)
		defer scope.End()

		started := timezone.Now()
		log.Info().Str("job", name).Msg("scheduled job started")

		if err := job(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("job", name).Msg("scheduled job failed")

			return
		}

		log.Info().Str("job", name).Dur("took", time.Since(started)).Msg("scheduled job finished")
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	log.Info().Str("job", name).Str("spec", spec).Str("timezone", timezone.GetLocation().String()).Msg("scheduled job registered")

	return nil
}

func (t *Trigger) Start() {
	t.cron.Start()
}

// Stop prevents new runs and waits for running jobs to finish. When ctx expires first the
// jobs keep running in the background and Stop returns.
func (t *Trigger) Stop(ctx context.Context) {
	select {
	case <-t.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("scheduler stopped before running jobs finished")
	}
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
