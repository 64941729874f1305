package di

import (
	"fmt"

	"dipsport/config"
	"dipsport/infras/otel"
	"dipsport/infras/scheduler"
	reminderService "dipsport/internal/domains/reminder/service"
	"dipsport/permissions"
	"dipsport/shared/timezone"

	"github.com/rs/zerolog/log"
)

// ProvideScheduler builds the cron trigger and registers the enabled jobs. The trigger is
// started by the HTTP server.
func ProvideScheduler(cfg *config.Config, otel otel.Otel, reminder reminderService.Reminder, clock timezone.Clock) (*scheduler.Trigger, error) {
	trigger := scheduler.New(otel)

	if !cfg.Scheduler.Reminder.Enable {
		log.Info().Msg("reminder job disabled")

		return trigger, nil
	}

	err := trigger.Register(reminderService.JobName, cfg.Scheduler.Reminder.Cron, reminderService.Job(reminder, clock))
	if err != nil {
		return nil, fmt.Errorf("register reminder job: %w", err)
	}

	return trigger, nil
}

// ProvidePermissions loads the embedded endpoint permission table.
func ProvidePermissions() (*permissions.PermissionData, error) {
	data, err := permissions.Load()
	if err != nil {
		return nil, fmt.Errorf("loading permissions: %w", err)
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("permissions loaded")

	return data, nil
}
