package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// Writer persists per-scenario JSON records and suite summaries. The core
// pipeline holds no state between runs; writing reports is purely a caller
// concern handled here.
type Writer struct {
	dir    string
	prefix string
	log    *logrus.Logger
}

// NewWriter creates a Writer targeting the given output directory.
func NewWriter(dir, prefix string, log *logrus.Logger) *Writer {
	if log == nil {
		log = logrus.New()
	}
	return &Writer{dir: dir, prefix: prefix, log: log}
}

// WriteSuite writes one JSON record per scenario plus the summary in each of
// the requested formats ("markdown", "html"). It returns the paths written.
func (w *Writer) WriteSuite(suite *domain.SuiteReport, formats []string) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, domain.NewError("report", w.dir, 0, "failed to create output directory", err)
	}

	var written []string
	for i, r := range suite.Reports {
		name := fmt.Sprintf("%s%s.json", w.prefix, scenarioFileName(r.Spec.Scenario, i))
		path := filepath.Join(w.dir, name)

		data, err := NewRecord(r).JSON()
		if err != nil {
			return written, domain.NewError("report", path, 0, "failed to serialize report", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, domain.NewError("report", path, 0, "failed to write report file", err)
		}
		w.log.Debugf("Wrote report: %s", path)
		written = append(written, path)
	}

	summarizer, err := NewSummarizer()
	if err != nil {
		return written, err
	}

	for _, format := range formats {
		var content, ext string
		switch format {
		case "markdown", "md":
			content, err = summarizer.Markdown(suite)
			ext = "md"
		case "html":
			content, err = summarizer.HTML(suite)
			ext = "html"
		default:
			return written, domain.NewError("report", "", 0,
				fmt.Sprintf("unknown summary format %q (supported: markdown, html)", format), nil)
		}
		if err != nil {
			return written, err
		}

		path := filepath.Join(w.dir, fmt.Sprintf("%ssummary.%s", w.prefix, ext))
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return written, domain.NewError("report", path, 0, "failed to write summary file", err)
		}
		w.log.Infof("Wrote summary: %s", path)
		written = append(written, path)
	}

	return written, nil
}

// scenarioFileName converts a scenario name into a filename component,
// e.g. "Validate Users Endpoint" → "validate_users_endpoint". The scenario
// index keeps names unique when scenarios share a title.
func scenarioFileName(name string, index int) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		}
	}
	cleaned := b.String()
	for strings.Contains(cleaned, "__") {
		cleaned = strings.ReplaceAll(cleaned, "__", "_")
	}
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		cleaned = "scenario"
	}
	return fmt.Sprintf("%03d_%s", index+1, cleaned)
}
