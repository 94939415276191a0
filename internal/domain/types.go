package domain

import (
	"encoding/json"
	"time"
)

// Method is an HTTP method accepted in scenario text.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// TestStatus is the terminal state of a scenario run.
type TestStatus string

const (
	StatusPassed TestStatus = "passed"
	StatusFailed TestStatus = "failed"
	StatusError  TestStatus = "error"
)

// AuthType selects how credentials are attached to the request.
type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthBearer AuthType = "bearer"
	AuthBasic  AuthType = "basic"
	AuthAPIKey AuthType = "api_key"
)

// FieldAssertion is a `should contain a <noun> with <field> "<value>"` check.
// Values compare type-flexibly: the string "1" matches the number 1.
type FieldAssertion struct {
	Noun  string
	Field string
	Value string
}

// RequestSpec is the immutable result of extracting one scenario text.
// Singular fields hold the first match found; ContainsSubstrings and
// FieldAssertions accumulate in document order.
type RequestSpec struct {
	Feature            string
	Scenario           string
	URL                string
	Method             Method
	ExpectedStatus     int
	ExpectArray        bool
	ContainsSubstrings []string
	FieldAssertions    []FieldAssertion
}

// RequestOptions shapes the outgoing request beyond what the scenario text
// carries: default headers, query parameters, a JSON body and auth.
type RequestOptions struct {
	Headers     map[string]string
	QueryParams map[string]string
	Body        json.RawMessage
	Auth        AuthConfig
	Timeout     time.Duration
}

// AuthConfig carries credentials for one of the supported auth schemes.
type AuthConfig struct {
	Type     AuthType
	Token    string // bearer
	Username string // basic
	Password string // basic
	Header   string // api_key: header name
	Key      string // api_key: header value
}

// HTTPOutcome is the immutable result of executing one request.
// Exactly one of StatusCode (> 0) or TransportError is set.
type HTTPOutcome struct {
	StatusCode         int
	ResponseTimeMillis float64
	Body               []byte
	ParsedJSON         any // nil when the body is not valid JSON
	TransportError     string
}

// HasTransportError reports whether no response was obtained.
func (o HTTPOutcome) HasTransportError() bool {
	return o.TransportError != ""
}

// AssertionResult records the outcome of a single configured check.
type AssertionResult struct {
	Name   string
	Passed bool
	Detail string
}

// TestReport is the terminal aggregate for one scenario run. It is assembled
// once and never mutated afterwards; the caller owns it exclusively.
type TestReport struct {
	ID              string
	Status          TestStatus
	Message         string
	Spec            RequestSpec
	Outcome         HTTPOutcome
	Assertions      []AssertionResult
	ExtractedValues map[string]any
	Timestamp       time.Time
	ExecutionTime   time.Duration
}

// ValidationErrors returns the detail text of every failed assertion,
// preserving assertion order.
func (r *TestReport) ValidationErrors() []string {
	var errs []string
	for _, a := range r.Assertions {
		if !a.Passed {
			errs = append(errs, a.Detail)
		}
	}
	return errs
}

// SuiteReport aggregates the reports of one multi-scenario run.
type SuiteReport struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Reports   []*TestReport
}

// Total returns the number of scenarios in the suite.
func (s *SuiteReport) Total() int { return len(s.Reports) }

// Passed returns the number of scenarios with status "passed".
func (s *SuiteReport) Passed() int { return s.countStatus(StatusPassed) }

// Failed returns the number of scenarios with status "failed".
func (s *SuiteReport) Failed() int { return s.countStatus(StatusFailed) }

// Errored returns the number of scenarios with status "error".
func (s *SuiteReport) Errored() int { return s.countStatus(StatusError) }

// PassRate returns the passed fraction as a percentage, 0 for empty suites.
func (s *SuiteReport) PassRate() float64 {
	if len(s.Reports) == 0 {
		return 0
	}
	return float64(s.Passed()) / float64(len(s.Reports)) * 100
}

func (s *SuiteReport) countStatus(status TestStatus) int {
	n := 0
	for _, r := range s.Reports {
		if r.Status == status {
			n++
		}
	}
	return n
}
