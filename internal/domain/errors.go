package domain

import "fmt"

// ProbeError is the base error type with context.
type ProbeError struct {
	Phase      string // "config", "scan", "extract", "execute", "report"
	Source     string // file path or scenario name, when known
	LineNumber int
	Message    string
	Cause      error
}

func (e *ProbeError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.Source != "" {
		s += fmt.Sprintf(" %s", e.Source)
	}
	if e.LineNumber > 0 {
		s += fmt.Sprintf(":%d", e.LineNumber)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// NewError creates a new ProbeError.
func NewError(phase, source string, line int, message string, cause error) *ProbeError {
	return &ProbeError{
		Phase:      phase,
		Source:     source,
		LineNumber: line,
		Message:    message,
		Cause:      cause,
	}
}
