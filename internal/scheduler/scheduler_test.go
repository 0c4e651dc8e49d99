package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs atomic.Int32
	err  error
	done chan struct{}
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	if j.runs.Add(1) == 1 && j.done != nil {
		close(j.done)
	}
	return j.err
}

func TestScheduler_AddJob_InvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	err := s.AddJob("not a schedule", &countingJob{})
	assert.Error(t, err)
}

func TestScheduler_AddJob_RequiresSecondsField(t *testing.T) {
	s := New(zerolog.Nop())

	assert.NoError(t, s.AddJob("0 0 22 * * MON-FRI", &countingJob{}))
	assert.Error(t, s.AddJob("0 22 * * MON-FRI", &countingJob{}))
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())
	failure := errors.New("boom")
	job := &countingJob{err: failure}

	assert.ErrorIs(t, s.RunNow(job), failure)
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestScheduler_RunsScheduledJobs(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{done: make(chan struct{}), err: errors.New("logged, not fatal")}

	require.NoError(t, s.AddJob("@every 1s", job))
	s.Start()
	defer s.Stop()

	select {
	case <-job.done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}
