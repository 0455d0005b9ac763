package domain

import "fmt"

// ValidationError reports a sensor field that failed range or number checks
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewRangeError builds the standard out-of-range error for a field
func NewRangeError(field string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("%s must be between %d-%d", field, MinReading, MaxReading),
	}
}

// RequestError reports a failed prediction request: a non-success HTTP
// status (StatusCode != 0) or a transport failure (Err != nil).
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
