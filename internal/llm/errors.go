package llm

import "fmt"

// APICallError represents a failed call to a provider
type APICallError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s API call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing a provider response
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
