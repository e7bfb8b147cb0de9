package command

// Input is the decoded JSON argument map passed to a command handler. The
// accessors tolerate missing keys and JSON number decoding (float64).
type Input map[string]any

// String returns the string value for key, or def when absent.
func (in Input) String(key, def string) string {
	if v, ok := in[key].(string); ok {
		return v
	}
	return def
}

// StringPtr returns a pointer to the string value for key, or nil when the
// key is absent or not a string.
func (in Input) StringPtr(key string) *string {
	if v, ok := in[key].(string); ok {
		return &v
	}
	return nil
}

// Bool returns the boolean value for key, or def when absent.
func (in Input) Bool(key string, def bool) bool {
	if v, ok := in[key].(bool); ok {
		return v
	}
	return def
}

// BoolPtr returns a pointer to the boolean value for key, or nil when absent.
func (in Input) BoolPtr(key string) *bool {
	if v, ok := in[key].(bool); ok {
		return &v
	}
	return nil
}

// IntPtr returns a pointer to the integer value for key, accepting the
// float64 form produced by encoding/json. Nil when absent.
func (in Input) IntPtr(key string) *int {
	switch v := in[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	}
	return nil
}

// StringSlice returns the string slice for key. JSON arrays decode as []any;
// non-string elements are skipped.
func (in Input) StringSlice(key string) []string {
	switch v := in[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
