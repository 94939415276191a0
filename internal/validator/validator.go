package validator

import (
	"fmt"
	"strings"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// Assertion names for the singular checks. Substring and field checks derive
// their names from the asserted text.
const (
	CheckStatusCode = "status_code"
	CheckArrayShape = "json_array"
)

// Validate runs every configured check against the outcome and returns one
// AssertionResult per check, in configuration order. Checks are independent
// and never short-circuit, so the report always reflects all of them.
func Validate(spec domain.RequestSpec, outcome domain.HTTPOutcome) []domain.AssertionResult {
	results := []domain.AssertionResult{statusCheck(spec, outcome)}

	if spec.ExpectArray {
		results = append(results, arrayCheck(outcome))
	}

	for _, text := range spec.ContainsSubstrings {
		results = append(results, containsCheck(text, outcome))
	}

	for _, fa := range spec.FieldAssertions {
		results = append(results, fieldCheck(fa, outcome))
	}

	return results
}

// StatusFor derives the overall report status: error when no response was
// obtained, failed when any assertion failed, passed otherwise.
func StatusFor(outcome domain.HTTPOutcome, results []domain.AssertionResult) domain.TestStatus {
	if outcome.HasTransportError() {
		return domain.StatusError
	}
	for _, r := range results {
		if !r.Passed {
			return domain.StatusFailed
		}
	}
	return domain.StatusPassed
}

// statusCheck is auto-failed with the transport detail when the request never
// produced a response.
func statusCheck(spec domain.RequestSpec, outcome domain.HTTPOutcome) domain.AssertionResult {
	if outcome.HasTransportError() {
		return domain.AssertionResult{
			Name:   CheckStatusCode,
			Passed: false,
			Detail: outcome.TransportError,
		}
	}
	if outcome.StatusCode != spec.ExpectedStatus {
		return domain.AssertionResult{
			Name:   CheckStatusCode,
			Passed: false,
			Detail: fmt.Sprintf("Expected status %d, got %d", spec.ExpectedStatus, outcome.StatusCode),
		}
	}
	return domain.AssertionResult{
		Name:   CheckStatusCode,
		Passed: true,
		Detail: fmt.Sprintf("Status %d as expected", outcome.StatusCode),
	}
}

// arrayCheck passes only when the parsed body's top level is a JSON array.
// An object or unparsable body fails the check, it does not error the run.
func arrayCheck(outcome domain.HTTPOutcome) domain.AssertionResult {
	if _, ok := outcome.ParsedJSON.([]any); ok {
		return domain.AssertionResult{
			Name:   CheckArrayShape,
			Passed: true,
			Detail: "Response is a JSON array",
		}
	}
	return domain.AssertionResult{
		Name:   CheckArrayShape,
		Passed: false,
		Detail: "Response is not a JSON array",
	}
}

// containsCheck is a case-sensitive literal scan over the raw body. This is
// deliberately loose: the substring may match inside an unrelated field.
func containsCheck(text string, outcome domain.HTTPOutcome) domain.AssertionResult {
	name := "contains_" + strings.ReplaceAll(text, " ", "_")
	if strings.Contains(string(outcome.Body), text) {
		return domain.AssertionResult{
			Name:   name,
			Passed: true,
			Detail: fmt.Sprintf("Response contains %q", text),
		}
	}
	return domain.AssertionResult{
		Name:   name,
		Passed: false,
		Detail: fmt.Sprintf("Response does not contain '%s'", text),
	}
}

// fieldCheck matches an object field against the parsed body: either the
// top-level object itself, or any element of a top-level array.
func fieldCheck(fa domain.FieldAssertion, outcome domain.HTTPOutcome) domain.AssertionResult {
	name := fmt.Sprintf("contains_%s_with_%s", fa.Noun, fa.Field)
	if matchesField(outcome.ParsedJSON, fa) {
		return domain.AssertionResult{
			Name:   name,
			Passed: true,
			Detail: fmt.Sprintf("Response contains a %s with %s %q", fa.Noun, fa.Field, fa.Value),
		}
	}
	return domain.AssertionResult{
		Name:   name,
		Passed: false,
		Detail: fmt.Sprintf("Response does not contain a %s with %s %q", fa.Noun, fa.Field, fa.Value),
	}
}
