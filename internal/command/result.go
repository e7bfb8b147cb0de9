package command

// Metadata carries execution diagnostics alongside a result.
type Metadata struct {
	ExecutionTimeMs int64  `json:"executionTimeMs"`
	Timestamp       string `json:"timestamp,omitempty"`
}

// Result is the uniform envelope returned by every command. Exactly one of
// Data or Error is populated depending on Success.
type Result struct {
	Success    bool          `json:"success"`
	Data       any           `json:"data,omitempty"`
	Error      *CommandError `json:"error,omitempty"`
	Confidence *float64      `json:"confidence,omitempty"`
	Reasoning  string        `json:"reasoning,omitempty"`
	Metadata   *Metadata     `json:"metadata,omitempty"`
}

// Ok wraps data in a successful result.
func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

// OkWithReasoning wraps data in a successful result and explains why it was
// produced. Confidence follows the 0..1 convention.
func OkWithReasoning(data any, reasoning string, confidence float64) Result {
	return Result{
		Success:    true,
		Data:       data,
		Reasoning:  reasoning,
		Confidence: &confidence,
	}
}

// Fail wraps a command error in a failed result.
func Fail(err *CommandError) Result {
	return Result{Success: false, Error: err}
}
