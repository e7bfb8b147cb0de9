package command

import (
	"fmt"
	"slices"
)

// ParamType is the JSON schema type of a command parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeObject  ParamType = "object"
	TypeArray   ParamType = "array"
)

// Parameter describes one input field of a command. The registry validates
// decoded JSON input against the parameter list before the handler runs.
type Parameter struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
}

// validateInput checks input against the parameter definitions. It returns a
// VALIDATION_ERROR describing the first violation, or nil when the input is
// acceptable. Unknown input keys are tolerated.
func validateInput(params []Parameter, input map[string]any) *CommandError {
	for _, p := range params {
		value, present := input[p.Name]
		if !present || value == nil {
			if p.Required {
				return ValidationError(
					fmt.Sprintf("missing required parameter '%s'", p.Name),
					fmt.Sprintf("Provide '%s' (%s) in the input", p.Name, p.Type),
				)
			}
			continue
		}

		if !typeMatches(p.Type, value) {
			return ValidationError(
				fmt.Sprintf("parameter '%s' must be of type %s", p.Name, p.Type),
				fmt.Sprintf("Provide '%s' as a JSON %s", p.Name, p.Type),
			)
		}

		if len(p.Enum) > 0 {
			s, ok := value.(string)
			if !ok || !slices.Contains(p.Enum, s) {
				return ValidationError(
					fmt.Sprintf("parameter '%s' must be one of: %v", p.Name, p.Enum),
					fmt.Sprintf("Use one of the allowed values for '%s'", p.Name),
				)
			}
		}
	}
	return nil
}

// typeMatches checks a decoded JSON value against a schema type. Numbers
// arrive as float64 from encoding/json; ints are accepted for callers that
// build input maps in Go.
func typeMatches(t ParamType, value any) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	case TypeArray:
		switch value.(type) {
		case []any, []string:
			return true
		}
		return false
	}
	return false
}
