package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubRevaluer struct {
	valued   int
	err      error
	deadline bool
}

func (s *stubRevaluer) RevalueAll(ctx context.Context) (int, error) {
	_, s.deadline = ctx.Deadline()
	return s.valued, s.err
}

func TestRevaluationJob_Run(t *testing.T) {
	stub := &stubRevaluer{valued: 3}
	job := NewRevaluationJob(stub, time.Minute)

	assert.Equal(t, "revalue_portfolios", job.Name())
	assert.NoError(t, job.Run())
	assert.True(t, stub.deadline)
}

func TestRevaluationJob_RunReportsFailures(t *testing.T) {
	failure := errors.New("portfolio p1: no price")
	job := NewRevaluationJob(&stubRevaluer{valued: 1, err: failure}, time.Minute)

	assert.ErrorIs(t, job.Run(), failure)
}
