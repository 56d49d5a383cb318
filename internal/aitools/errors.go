package aitools

import "fmt"

// APICallError represents an error from the model provider
type APICallError struct {
	Tool    Tool
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: API call failed: %s: %v", e.Tool, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: API call failed: %s", e.Tool, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing the model response
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

// InputError reports a request that was rejected before any model call
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}
