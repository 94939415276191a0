package report_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phoenix-ai/apiprobe/internal/domain"
	"github.com/phoenix-ai/apiprobe/internal/report"
)

func passedReport() *domain.TestReport {
	return &domain.TestReport{
		ID:      "run-1",
		Status:  domain.StatusPassed,
		Message: "Test passed successfully",
		Spec: domain.RequestSpec{
			Scenario:       "Validate users endpoint",
			URL:            "https://api.test/users",
			Method:         domain.MethodGet,
			ExpectedStatus: 200,
		},
		Outcome: domain.HTTPOutcome{
			StatusCode:         200,
			ResponseTimeMillis: 12.5,
			Body:               []byte(`[{"name":"Ada"}]`),
			ParsedJSON:         []any{map[string]any{"name": "Ada"}},
		},
		Assertions: []domain.AssertionResult{
			{Name: "status_code", Passed: true, Detail: "Status 200 as expected"},
		},
		ExtractedValues: map[string]any{"contains_Ada": true},
		Timestamp:       time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
		ExecutionTime:   150 * time.Millisecond,
	}
}

var _ = Describe("Record", func() {
	It("should serialize with the exact wire field names", func() {
		data, err := report.NewRecord(passedReport()).JSON()
		Expect(err).ToNot(HaveOccurred())

		var fields map[string]json.RawMessage
		Expect(json.Unmarshal(data, &fields)).To(Succeed())
		for _, key := range []string{
			"status", "message", "execution_time", "timestamp", "api_endpoint",
			"status_code", "response_time_ms", "full_response",
			"extracted_values", "validation_errors",
		} {
			Expect(fields).To(HaveKey(key), "missing wire field %q", key)
		}
	})

	It("should carry the report values through", func() {
		rec := report.NewRecord(passedReport())

		Expect(rec.Status).To(Equal("passed"))
		Expect(rec.Message).To(Equal("Test passed successfully"))
		Expect(rec.APIEndpoint).To(Equal("https://api.test/users"))
		Expect(rec.StatusCode).To(Equal(200))
		Expect(rec.ResponseTimeMS).To(Equal(12.5))
		Expect(rec.ExecutionTime).To(BeNumerically("~", 0.15, 0.001))
		Expect(rec.ExtractedValues).To(HaveKeyWithValue("contains_Ada", true))
		Expect(rec.ValidationErrors).To(BeEmpty())
	})

	It("should expose the parsed body as full_response", func() {
		rec := report.NewRecord(passedReport())
		Expect(rec.FullResponse).To(Equal([]any{map[string]any{"name": "Ada"}}))
	})

	It("should wrap a non-JSON body in a text object", func() {
		r := passedReport()
		r.Outcome.ParsedJSON = nil
		r.Outcome.Body = []byte("plain text")

		rec := report.NewRecord(r)
		Expect(rec.FullResponse).To(Equal(map[string]any{"text": "plain text"}))
	})

	It("should serialize empty collections as {} and [], never null", func() {
		r := passedReport()
		r.ExtractedValues = nil
		data, err := report.NewRecord(r).JSON()
		Expect(err).ToNot(HaveOccurred())

		Expect(string(data)).To(ContainSubstring(`"extracted_values": {}`))
		Expect(string(data)).To(ContainSubstring(`"validation_errors": []`))
	})

	It("should collect failed assertion details as validation errors", func() {
		r := passedReport()
		r.Status = domain.StatusFailed
		r.Assertions = append(r.Assertions, domain.AssertionResult{
			Name: "contains_Grace", Passed: false, Detail: "Response does not contain 'Grace'",
		})

		rec := report.NewRecord(r)
		Expect(rec.ValidationErrors).To(Equal([]string{"Response does not contain 'Grace'"}))
	})

	It("should leave full_response nil after a transport error", func() {
		r := passedReport()
		r.Status = domain.StatusError
		r.Outcome = domain.HTTPOutcome{TransportError: "connection refused"}

		rec := report.NewRecord(r)
		Expect(rec.FullResponse).To(BeNil())
		Expect(rec.StatusCode).To(BeZero())
	})
})
