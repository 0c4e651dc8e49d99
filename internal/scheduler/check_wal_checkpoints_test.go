package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	testingpkg "github.com/stockwolf/stockwolf-api/internal/testing"
	"github.com/stretchr/testify/assert"
)

type failingCheckpointer struct {
	calls int
}

func (f *failingCheckpointer) Checkpoint(ctx context.Context) (int, int, error) {
	f.calls++
	return 0, 0, errors.New("database is locked")
}

func (f *failingCheckpointer) Name() string { return "broken" }

func TestCheckWALCheckpointsJob_Name(t *testing.T) {
	job := NewCheckWALCheckpointsJob()
	assert.Equal(t, "check_wal_checkpoints", job.Name())
}

func TestCheckWALCheckpointsJob_Run_NoDatabases(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	job := NewCheckWALCheckpointsJob(nil)
	job.SetLogger(log)

	assert.NoError(t, job.Run())
}

func TestCheckWALCheckpointsJob_Run(t *testing.T) {
	store, _ := testingpkg.NewTestStore(t)
	broken := &failingCheckpointer{}

	job := NewCheckWALCheckpointsJob(broken, store.DB())
	job.SetLogger(testingpkg.SilentLogger())

	assert.NoError(t, job.Run(), "checkpoint failures are logged, not returned")
	assert.Equal(t, 1, broken.calls)
}
