package runner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/phoenix-ai/apiprobe/internal/domain"
	"github.com/phoenix-ai/apiprobe/internal/extract"
	"github.com/phoenix-ai/apiprobe/internal/extractor"
	"github.com/phoenix-ai/apiprobe/internal/executor"
	"github.com/phoenix-ai/apiprobe/internal/validator"
)

// Options configures a single scenario run.
type Options struct {
	Request    domain.RequestOptions
	Extractors map[string]string // name → JSONPath over the parsed body
}

// Runner drives one scenario through the full pipeline:
// extract → execute → validate → assemble.
type Runner struct {
	extractor *extractor.Extractor
	executor  *executor.Executor
	log       *logrus.Logger
}

// New creates a Runner. The client is substitutable for tests; nil uses a
// plain http.Client.
func New(client executor.Doer, log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.New()
	}
	return &Runner{
		extractor: extractor.New(),
		executor:  executor.New(client, log),
		log:       log,
	}
}

// Run executes one scenario and returns its report. The only error case is
// extraction failure, which aborts before any network activity; every
// runtime condition after that is captured as data in the report.
func (r *Runner) Run(ctx context.Context, scenarioText string, opts Options) (*domain.TestReport, error) {
	start := time.Now()

	spec, err := r.extractor.Extract(scenarioText)
	if err != nil {
		return nil, err
	}

	r.log.Debugf("Running scenario %q: %s %s", spec.Scenario, spec.Method, spec.URL)

	outcome := r.executor.Execute(ctx, spec, opts.Request)
	assertions := validator.Validate(spec, outcome)
	extracted := extract.Values(outcome.ParsedJSON, opts.Extractors)

	report := Assemble(spec, outcome, assertions, extracted, start)
	r.log.Infof("Scenario %q finished: %s", spec.Scenario, report.Status)
	return report, nil
}

// Assemble packages a finished run into an immutable TestReport. Pure
// aggregation, no I/O. ExecutionTime spans from start (before extraction) to
// assembly, distinct from the outcome's network-only timing.
func Assemble(spec domain.RequestSpec, outcome domain.HTTPOutcome, assertions []domain.AssertionResult, extracted map[string]any, start time.Time) *domain.TestReport {
	values := make(map[string]any, len(extracted))
	for k, v := range extracted {
		values[k] = v
	}
	// Passed containment and field checks surface as boolean markers, the
	// same shape the extracted JSONPath values share the map with.
	for _, a := range assertions {
		if a.Passed && strings.HasPrefix(a.Name, "contains_") {
			values[a.Name] = true
		}
	}

	report := &domain.TestReport{
		ID:              uuid.NewString(),
		Status:          validator.StatusFor(outcome, assertions),
		Spec:            spec,
		Outcome:         outcome,
		Assertions:      assertions,
		ExtractedValues: values,
		Timestamp:       time.Now(),
		ExecutionTime:   time.Since(start),
	}
	report.Message = message(report)
	return report
}

// message is the short human-readable summary, always present.
func message(r *domain.TestReport) string {
	switch r.Status {
	case domain.StatusPassed:
		return "Test passed successfully"
	case domain.StatusError:
		return "Test error: " + r.Outcome.TransportError
	default:
		return "Test failed: " + strings.Join(r.ValidationErrors(), ", ")
	}
}
