package extractor

import (
	"net/url"
	"strings"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// Extractor turns loosely patterned Gherkin text into a RequestSpec by
// scanning lines against an ordered rule table. Matching is line-local; the
// only cross-line state is the accumulating draft.
type Extractor struct {
	rules []rule
}

// New creates an Extractor with the default rule set.
func New() *Extractor {
	return &Extractor{rules: defaultRules()}
}

// Extract scans the scenario text and returns the derived RequestSpec.
// It fails with a phase "extract" error when no line yields an endpoint or
// the endpoint is not an absolute http(s) URL. Method defaults to GET and
// expected status to 200 when the text carries no cue for them.
func (e *Extractor) Extract(scenarioText string) (domain.RequestSpec, error) {
	d := draft{}

	for _, line := range strings.Split(scenarioText, "\n") {
		for _, r := range e.rules {
			m := r.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			r.apply(m, &d)
			break
		}
	}

	if !d.urlSet {
		return domain.RequestSpec{}, domain.NewError("extract", d.spec.Scenario, 0,
			"scenario text contains no API endpoint line", nil)
	}
	if err := requireAbsoluteURL(d.spec.URL); err != nil {
		return domain.RequestSpec{}, domain.NewError("extract", d.spec.Scenario, 0,
			"endpoint is not an absolute URL", err)
	}

	if !d.methodSet {
		d.spec.Method = domain.MethodGet
	}
	if !d.statusSet {
		d.spec.ExpectedStatus = 200
	}
	if d.spec.Scenario == "" {
		d.spec.Scenario = "API Test"
	}

	return d.spec, nil
}

// requireAbsoluteURL rejects relative or schemeless endpoints.
func requireAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &url.Error{Op: "parse", URL: raw, Err: errNotAbsolute}
	}
	return nil
}

var errNotAbsolute = &notAbsoluteError{}

type notAbsoluteError struct{}

func (*notAbsoluteError) Error() string { return "expected absolute http(s) URL" }
