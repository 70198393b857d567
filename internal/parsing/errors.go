package parsing

import "fmt"

// APICallError represents a terminal model-API failure: either a
// non-retryable error or exhausted retries inside the client.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// MalformedReplyError represents a model reply that is not valid JSON or
// does not match the extraction schema. Not retried: re-asking an ill-formed
// prompt response rarely helps. RawReply is kept (truncated) for diagnosis.
type MalformedReplyError struct {
	Message  string
	RawReply string
	Cause    error
}

func (e *MalformedReplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model reply: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model reply: %s", e.Message)
}

func (e *MalformedReplyError) Unwrap() error {
	return e.Cause
}
