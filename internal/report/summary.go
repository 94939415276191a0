package report

import (
	"bytes"
	"text/template"
	"time"

	"github.com/yuin/goldmark"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// summaryTemplate renders a SuiteReport as a markdown report.
const summaryTemplate = `# API Testing Report

- Run ID: {{ .RunID }}
- Generated: {{ formatTime .StartedAt }}
- Duration: {{ formatDuration .Duration }}

## Summary

- Total Tests: {{ .Total }}
- Passed: {{ .Passed }}
- Failed: {{ .Failed }}
- Errored: {{ .Errored }}
- Success Rate: {{ printf "%.1f" .PassRate }}%

## Test Results
{{ range $i, $r := .Reports }}
### Test {{ inc $i }}: {{ $r.Spec.Scenario }} {{ statusBadge $r.Status }}

- Endpoint: {{ $r.Spec.Method }} {{ $r.Spec.URL }}
{{- if gt $r.Outcome.StatusCode 0 }}
- Status Code: {{ $r.Outcome.StatusCode }}
- Response Time: {{ printf "%.1f" $r.Outcome.ResponseTimeMillis }}ms
{{- end }}
- Execution Time: {{ printf "%.2f" $r.ExecutionTime.Seconds }}s
- Message: {{ $r.Message }}
{{- if $r.ValidationErrors }}
- Errors:
{{- range $r.ValidationErrors }}
  - {{ . }}
{{- end }}
{{- end }}
{{ end -}}
`

// Summarizer renders suite reports into markdown and HTML.
type Summarizer struct {
	tmpl *template.Template
}

// NewSummarizer creates a Summarizer with the built-in template.
func NewSummarizer() (*Summarizer, error) {
	tmpl, err := template.New("summary").Funcs(summaryFuncs()).Parse(summaryTemplate)
	if err != nil {
		return nil, domain.NewError("report", "", 0, "failed to parse summary template", err)
	}
	return &Summarizer{tmpl: tmpl}, nil
}

// Markdown renders the suite summary as markdown.
func (s *Summarizer) Markdown(suite *domain.SuiteReport) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, suite); err != nil {
		return "", domain.NewError("report", "", 0, "failed to render summary", err)
	}
	return buf.String(), nil
}

// HTML renders the markdown summary to a standalone HTML document.
func (s *Summarizer) HTML(suite *domain.SuiteReport) (string, error) {
	md, err := s.Markdown(suite)
	if err != nil {
		return "", err
	}
	return HTMLPage([]byte(md))
}

// HTMLPage converts markdown into a standalone HTML document.
func HTMLPage(md []byte) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert(md, &body); err != nil {
		return "", domain.NewError("report", "", 0, "failed to convert summary to HTML", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>API Testing Report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}

func summaryFuncs() template.FuncMap {
	return template.FuncMap{
		"inc": func(i int) int { return i + 1 },
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
		"formatDuration": func(d time.Duration) string {
			return d.Round(time.Millisecond).String()
		},
		"statusBadge": func(s domain.TestStatus) string {
			switch s {
			case domain.StatusPassed:
				return "PASSED"
			case domain.StatusError:
				return "ERROR"
			default:
				return "FAILED"
			}
		},
	}
}
