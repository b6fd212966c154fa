package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type immediateDriver struct {
	triggers []time.Time
	stopped  bool
}

func (d *immediateDriver) Start(_ context.Context, job func(time.Time)) error {
	for _, t := range d.triggers {
		job(t)
	}
	return nil
}

func (d *immediateDriver) Stop(context.Context) error {
	d.stopped = true
	return nil
}

func TestSchedulerRunsPipelinePerTrigger(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{}
	p := techPipeline(&fakeSource{}, history, PipelineOptions{})
	driver := &immediateDriver{triggers: []time.Time{trigger, trigger.Add(2 * time.Hour)}}
	s := NewScheduler(driver, p, nil)

	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, history.saved, 2)
	assert.Equal(t, "2024-01-01", history.saved[1].BatchDate)

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSchedulerWithoutDriverIsNoop(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil, nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
