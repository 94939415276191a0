package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// rule is one tagged line-matcher. Rules are tried in order against each
// line; the first rule whose pattern matches consumes the line. Each rule
// only updates the draft, so adding a new cue means adding one entry here.
type rule struct {
	name    string
	pattern *regexp.Regexp
	apply   func(m []string, d *draft)
}

// draft accumulates field updates during a scan. Set flags implement the
// first-match-wins policy for singular fields.
type draft struct {
	spec        domain.RequestSpec
	urlSet      bool
	methodSet   bool
	statusSet   bool
	featureSet  bool
	scenarioSet bool
}

// defaultRules returns the ordered rule table. The field-match rule precedes
// the generic substring rule so that `should contain a user with name "X"`
// is not swallowed by the looser `should contain "..."` cue.
func defaultRules() []rule {
	return []rule{
		{
			name:    "feature",
			pattern: regexp.MustCompile(`^\s*Feature:\s*(.+)$`),
			apply: func(m []string, d *draft) {
				if !d.featureSet {
					d.spec.Feature = strings.TrimSpace(m[1])
					d.featureSet = true
				}
			},
		},
		{
			name:    "scenario",
			pattern: regexp.MustCompile(`^\s*Scenario(?: Outline)?:\s*(.+)$`),
			apply: func(m []string, d *draft) {
				if !d.scenarioSet {
					d.spec.Scenario = strings.TrimSpace(m[1])
					d.scenarioSet = true
				}
			},
		},
		{
			name:    "endpoint",
			pattern: regexp.MustCompile(`(?i)\b(?:endpoint|url)\s+is\b[^"]*"([^"]+)"`),
			apply: func(m []string, d *draft) {
				if !d.urlSet {
					d.spec.URL = strings.TrimSpace(strings.Trim(m[1], `"'`))
					d.urlSet = true
				}
			},
		},
		{
			name:    "method",
			pattern: regexp.MustCompile(`(?i)\bI send an?\s+(GET|POST|PUT|PATCH|DELETE)\s+request\b`),
			apply: func(m []string, d *draft) {
				if !d.methodSet {
					d.spec.Method = domain.Method(strings.ToUpper(m[1]))
					d.methodSet = true
				}
			},
		},
		{
			name:    "status",
			pattern: regexp.MustCompile(`(?i)\b(?:status code should be|receive a)\s+(\d+)\b`),
			apply: func(m []string, d *draft) {
				if !d.statusSet {
					if code, err := strconv.Atoi(m[1]); err == nil {
						d.spec.ExpectedStatus = code
						d.statusSet = true
					}
				}
			},
		},
		{
			name:    "array_shape",
			pattern: regexp.MustCompile(`(?i)\bshould be an?\s+(?:JSON\s+)?array\b`),
			apply: func(m []string, d *draft) {
				d.spec.ExpectArray = true
			},
		},
		{
			name:    "field_match",
			pattern: regexp.MustCompile(`(?i)\bshould contain an?\s+(\w+)\s+with\s+(\w+)\s+"([^"]+)"`),
			apply: func(m []string, d *draft) {
				d.spec.FieldAssertions = append(d.spec.FieldAssertions, domain.FieldAssertion{
					Noun:  strings.ToLower(m[1]),
					Field: m[2],
					Value: m[3],
				})
			},
		},
		{
			name:    "contains",
			pattern: regexp.MustCompile(`(?i)\bshould contain\b[^"]*"([^"]+)"`),
			apply: func(m []string, d *draft) {
				d.spec.ContainsSubstrings = append(d.spec.ContainsSubstrings, m[1])
			},
		},
	}
}
