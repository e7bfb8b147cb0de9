package command

import (
	"fmt"
	"strings"
)

// Error codes used across the command layer. Codes are machine-readable and
// stable; messages and suggestions are free to change.
const (
	CodeCommandNotFound = "COMMAND_NOT_FOUND"
	CodeExecutionError  = "EXECUTION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeNoChanges       = "NO_CHANGES"
	CodeValidationError = "VALIDATION_ERROR"
)

// CommandError is the failure payload of a [Result]. Errors are meant to be
// actionable: the suggestion tells the caller what to do next, and the
// retryable flag tells an agent whether repeating the same request can help.
type CommandError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
	Retryable  *bool          `json:"retryable,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithSuggestion sets the recovery hint and returns the error for chaining.
func (e *CommandError) WithSuggestion(suggestion string) *CommandError {
	e.Suggestion = suggestion
	return e
}

// WithRetryable marks the error as retryable or permanent.
func (e *CommandError) WithRetryable(retryable bool) *CommandError {
	e.Retryable = &retryable
	return e
}

// WithDetails attaches debugging details.
func (e *CommandError) WithDetails(details map[string]any) *CommandError {
	e.Details = details
	return e
}

// NewError constructs a bare [CommandError] with the given code and message.
func NewError(code, message string) *CommandError {
	return &CommandError{Code: code, Message: message}
}

// NotFoundError reports that the named resource does not exist.
func NotFoundError(resource, id string) *CommandError {
	return NewError(CodeNotFound, fmt.Sprintf("%s with ID '%s' not found", resource, id)).
		WithSuggestion(fmt.Sprintf("Verify the %s ID exists and try again", strings.ToLower(resource))).
		WithRetryable(false).
		WithDetails(map[string]any{
			"resourceType": resource,
			"resourceId":   id,
		})
}

// ValidationError reports invalid command input.
func ValidationError(message, suggestion string) *CommandError {
	e := NewError(CodeValidationError, message).WithRetryable(false)
	if suggestion != "" {
		e = e.WithSuggestion(suggestion)
	}
	return e
}

// NoChangesError reports an update that carried no fields to apply.
func NoChangesError() *CommandError {
	return NewError(CodeNoChanges, "no fields provided to update").
		WithSuggestion("Provide at least one field to change").
		WithRetryable(false)
}

// ExecutionError wraps an unexpected handler failure.
func ExecutionError(err error) *CommandError {
	return NewError(CodeExecutionError, err.Error()).
		WithSuggestion("Check the command input and try again")
}

// CommandNotFoundError reports an unknown command name and lists the
// registered names so the caller can self-correct.
func CommandNotFoundError(name string, known []string) *CommandError {
	return NewError(CodeCommandNotFound, fmt.Sprintf("command '%s' is not registered", name)).
		WithSuggestion("Available commands: " + strings.Join(known, ", ")).
		WithRetryable(false)
}
