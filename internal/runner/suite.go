package runner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// Scenario is one unit of work for a suite run.
type Scenario struct {
	Name   string // display name, usually the source file basename
	Source string // file path, empty for inline text
	Text   string
}

// SuiteOptions configures a multi-scenario run.
type SuiteOptions struct {
	Options
	Parallel int     // worker count; <= 1 runs sequentially
	MaxRPS   float64 // request pacing across the suite; 0 disables
}

// SuiteRunner executes many scenarios. Invocations are independent and share
// no mutable state, so workers need no coordination beyond the result slots.
type SuiteRunner struct {
	runner *Runner
	log    *logrus.Logger
}

// NewSuiteRunner creates a SuiteRunner on top of an existing Runner.
func NewSuiteRunner(r *Runner, log *logrus.Logger) *SuiteRunner {
	if log == nil {
		log = logrus.New()
	}
	return &SuiteRunner{runner: r, log: log}
}

// RunSuite runs every scenario and returns the aggregate report. Scenario
// order is preserved in the result regardless of worker scheduling. A
// scenario whose text cannot be extracted still yields a terminal report
// with status "error"; the suite never aborts mid-way.
func (s *SuiteRunner) RunSuite(ctx context.Context, scenarios []Scenario, opts SuiteOptions) *domain.SuiteReport {
	suite := &domain.SuiteReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Reports:   make([]*domain.TestReport, len(scenarios)),
	}

	var limiter *rate.Limiter
	if opts.MaxRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.MaxRPS), 1)
	}

	workers := opts.Parallel
	if workers < 1 {
		workers = 1
	}
	if workers > len(scenarios) {
		workers = len(scenarios)
	}

	s.log.Infof("Running %d scenario(s) with %d worker(s)", len(scenarios), workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				suite.Reports[i] = s.runOne(ctx, scenarios[i], opts, limiter)
			}
		}()
	}
	for i := range scenarios {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	suite.Duration = time.Since(suite.StartedAt)
	s.log.Infof("Suite finished: %d passed, %d failed, %d errored",
		suite.Passed(), suite.Failed(), suite.Errored())
	return suite
}

func (s *SuiteRunner) runOne(ctx context.Context, sc Scenario, opts SuiteOptions, limiter *rate.Limiter) *domain.TestReport {
	start := time.Now()

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return errorReport(sc, "Test error: "+err.Error(), start)
		}
	}

	report, err := s.runner.Run(ctx, sc.Text, opts.Options)
	if err != nil {
		s.log.Warnf("Scenario %q: %v", sc.Name, err)
		return errorReport(sc, "Test error: "+err.Error(), start)
	}
	return report
}

// errorReport is the terminal report for scenarios that never reached the
// network, such as extraction failures.
func errorReport(sc Scenario, msg string, start time.Time) *domain.TestReport {
	return &domain.TestReport{
		ID:            uuid.NewString(),
		Status:        domain.StatusError,
		Message:       msg,
		Spec:          domain.RequestSpec{Scenario: sc.Name},
		Timestamp:     time.Now(),
		ExecutionTime: time.Since(start),
	}
}
