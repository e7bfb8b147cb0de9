package models

// CreateTodoRequest is the payload of the remote create mutation.
type CreateTodoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Completed   bool     `json:"completed,omitempty"`
}

// BatchToggleRequest sets the completion state for a set of todos at once.
type BatchToggleRequest struct {
	IDs       []string `json:"ids"`
	Completed bool     `json:"completed"`
}

// BatchDeleteRequest removes a set of todos at once.
type BatchDeleteRequest struct {
	IDs []string `json:"ids"`
}

// ErrorResponse is the JSON error body returned by the reference backend.
type ErrorResponse struct {
	Error string `json:"error"`
}
