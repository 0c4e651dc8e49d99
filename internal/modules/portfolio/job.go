package portfolio

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Revaluer values every stored portfolio
type Revaluer interface {
	RevalueAll(ctx context.Context) (int, error)
}

// RevaluationJob snapshots every portfolio on a schedule
type RevaluationJob struct {
	service Revaluer
	timeout time.Duration
	log     zerolog.Logger
}

// NewRevaluationJob creates a revaluation job bounded by timeout per run
func NewRevaluationJob(service Revaluer, timeout time.Duration) *RevaluationJob {
	return &RevaluationJob{
		service: service,
		timeout: timeout,
		log:     zerolog.Nop(),
	}
}

// SetLogger sets the logger for the job
func (j *RevaluationJob) SetLogger(log zerolog.Logger) {
	j.log = log.With().Str("job", j.Name()).Logger()
}

// Name returns the job name
func (j *RevaluationJob) Name() string {
	return "revalue_portfolios"
}

// Run values every portfolio; individual failures do not stop the run
func (j *RevaluationJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	valued, err := j.service.RevalueAll(ctx)
	if err != nil {
		j.log.Warn().Err(err).Int("valued", valued).Msg("Revaluation finished with errors")
		return err
	}

	j.log.Info().Int("valued", valued).Dur("duration", time.Since(start)).Msg("Portfolios revalued")
	return nil
}
