package report

import (
	"encoding/json"
	"time"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// Record is the wire representation of a TestReport. Field names are part of
// the external contract and must stay stable for callers built against them.
type Record struct {
	Status           string         `json:"status"`
	Message          string         `json:"message"`
	ExecutionTime    float64        `json:"execution_time"` // seconds, whole run
	Timestamp        string         `json:"timestamp"`
	APIEndpoint      string         `json:"api_endpoint"`
	StatusCode       int            `json:"status_code"`
	ResponseTimeMS   float64        `json:"response_time_ms"` // network round trip only
	FullResponse     any            `json:"full_response"`
	ExtractedValues  map[string]any `json:"extracted_values"`
	ValidationErrors []string       `json:"validation_errors"`
}

// NewRecord converts a TestReport into its wire shape.
func NewRecord(r *domain.TestReport) Record {
	rec := Record{
		Status:           string(r.Status),
		Message:          r.Message,
		ExecutionTime:    r.ExecutionTime.Seconds(),
		Timestamp:        r.Timestamp.Format(time.RFC3339Nano),
		APIEndpoint:      r.Spec.URL,
		StatusCode:       r.Outcome.StatusCode,
		ResponseTimeMS:   r.Outcome.ResponseTimeMillis,
		FullResponse:     fullResponse(r.Outcome),
		ExtractedValues:  r.ExtractedValues,
		ValidationErrors: r.ValidationErrors(),
	}
	// Empty collections serialize as {} and [], never null.
	if rec.ExtractedValues == nil {
		rec.ExtractedValues = map[string]any{}
	}
	if rec.ValidationErrors == nil {
		rec.ValidationErrors = []string{}
	}
	return rec
}

// JSON renders the record as indented JSON.
func (rec Record) JSON() ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// fullResponse mirrors the body handling of execution: the parsed JSON value
// when the body parsed, a {"text": ...} wrapper when it did not, nil when no
// response was obtained at all.
func fullResponse(o domain.HTTPOutcome) any {
	if o.ParsedJSON != nil {
		return o.ParsedJSON
	}
	if o.HasTransportError() {
		return nil
	}
	return map[string]any{"text": string(o.Body)}
}
