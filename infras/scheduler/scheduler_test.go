package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	otelMocks "dipsport/infras/otel/mocks"
	"dipsport/infras/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigger_RegisterRejectsBadSpec(t *testing.T) {
	trigger := scheduler.New(otelMocks.NewOtel())

	err := trigger.Register("reminder", "not a cron", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestTrigger_StopWaitsForRunningJob(t *testing.T) {
	trigger := scheduler.New(otelMocks.NewOtel())

	var started, finished atomic.Bool

	release := make(chan struct{})

	require.NoError(t, trigger.Register("reminder", "@every 1s", func(ctx context.Context) error {
		started.Store(true)
		<-release
		assert.NoError(t, ctx.Err())
		finished.Store(true)

		return nil
	}))

	trigger.Start()

	require.Eventually(t, started.Load, 3*time.Second, 20*time.Millisecond)

	go func() {
		time.Sleep(100 * time.Millisecond)
		close(release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	trigger.Stop(ctx)
	assert.True(t, finished.Load())
}

func TestTrigger_StopGivesUpAtDeadline(t *testing.T) {
	trigger := scheduler.New(otelMocks.NewOtel())

	var started atomic.Bool

	release := make(chan struct{})
	defer close(release)

	require.NoError(t, trigger.Register("reminder", "@every 1s", func(context.Context) error {
		started.Store(true)
		<-release

		return nil
	}))

	trigger.Start()

	require.Eventually(t, started.Load, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	begin := time.Now()
	trigger.Stop(ctx)
	assert.Less(t, time.Since(begin), time.Second)
}
