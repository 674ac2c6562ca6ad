// Package jobs runs named units of work concurrently, each under its own log
// prefix, and reports every outcome.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"loggingtalk/internal/logging"
)

// ErrJobPanicked marks the error of a job that panicked.
var ErrJobPanicked = errors.New("job panicked")

// Job is a named unit of work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Outcome records how one job ended.
type Outcome struct {
	ID       string
	Name     string
	Err      error
	Duration time.Duration
}

// Failed reports whether the job returned an error or panicked.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Option configures RunAll.
type Option func(*options)

type options struct {
	limit int
}

// WithLimit bounds the number of jobs running at once. Zero or less means no
// bound.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// RunAll runs jobs concurrently and waits for all of them. Each job runs in a
// context whose log prefix is extended by "[name] ". A failing job does not
// cancel the others; its error is logged inside its own prefix and kept in
// its Outcome. Outcomes are returned in the order of jobs.
func RunAll(ctx context.Context, logger *logging.Logger, jobs []Job, opts ...Option) []Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	outcomes := make([]Outcome, len(jobs))
	var g errgroup.Group
	if cfg.limit > 0 {
		g.SetLimit(cfg.limit)
	}
	for i, job := range jobs {
		i, job := i, job
		outcomes[i] = Outcome{ID: uuid.NewString(), Name: job.Name}
		g.Go(func() error {
			start := time.Now()
			err := logging.Scoped(ctx, "["+job.Name+"] ", func(jobCtx context.Context) error {
				err := runJob(jobCtx, job)
				if err != nil {
					logger.Errorf(jobCtx, "Job failed: %v", err)
				}
				return err
			})
			outcomes[i].Err = err
			outcomes[i].Duration = time.Since(start)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func runJob(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()
	if job.Run == nil {
		return nil
	}
	return job.Run(ctx)
}

// Errors joins the errors of failed outcomes, each prefixed with its job
// name. It returns nil when every job succeeded.
func Errors(outcomes []Outcome) error {
	var errs []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", outcome.Name, outcome.Err))
		}
	}
	return errors.Join(errs...)
}
