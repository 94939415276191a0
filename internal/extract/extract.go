package extract

import (
	"fmt"
	"sort"

	"github.com/PaesslerAG/jsonpath"
)

// Values evaluates named JSONPath expressions against a parsed response body
// and returns the extracted values keyed by name. Extraction problems are
// recorded as a string value rather than failing the run, matching the
// loose, report-everything posture of the rest of the pipeline.
func Values(parsed any, extractors map[string]string) map[string]any {
	if len(extractors) == 0 {
		return nil
	}

	extracted := make(map[string]any, len(extractors))
	for _, name := range sortedKeys(extractors) {
		expr := extractors[name]
		if parsed == nil {
			extracted[name] = fmt.Sprintf("Error extracting: body is not valid JSON (path %s)", expr)
			continue
		}
		value, err := jsonpath.Get(expr, parsed)
		if err != nil {
			extracted[name] = fmt.Sprintf("Error extracting: %v", err)
			continue
		}
		extracted[name] = value
	}
	return extracted
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
