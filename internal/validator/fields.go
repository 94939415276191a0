package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// matchesField checks a field assertion against the parsed JSON body.
// A top-level object matches directly; a top-level array matches when any
// object element does. Anything else (including an unparsed body) fails.
func matchesField(parsed any, fa domain.FieldAssertion) bool {
	switch v := parsed.(type) {
	case map[string]any:
		return valuesMatch(v[fa.Field], fa.Value)
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok && valuesMatch(obj[fa.Field], fa.Value) {
				return true
			}
		}
	}
	return false
}

// valuesMatch compares type-flexibly: the asserted value is always a string,
// so "1" matches the JSON number 1 and "true" matches the JSON boolean true
// regardless of case.
func valuesMatch(actual any, expected string) bool {
	if actual == nil {
		return false
	}
	if fmt.Sprint(actual) == expected {
		return true
	}
	switch v := actual.(type) {
	case float64:
		if f, err := strconv.ParseFloat(expected, 64); err == nil {
			return v == f
		}
	case bool:
		return strings.EqualFold(strconv.FormatBool(v), expected)
	}
	return false
}
