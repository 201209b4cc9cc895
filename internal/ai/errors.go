package ai

import "fmt"

// InputError reports missing or unusable user input. It is raised before any
// dependency call is made, is never retried, and never counts against a
// retry budget.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// TransientError wraps a failure reported by the text generator itself:
// network, timeout or overload. It is retried by the Executor.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient service error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// MalformedResponseError indicates a Structured reply that could not be
// parsed as a single JSON value. It consumes a retry exactly like a
// transient failure, but stays distinguishable so a future policy can treat
// the two differently.
type MalformedResponseError struct {
	Err error
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed structured response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ExhaustedRetriesError is terminal: every attempt of a request failed.
// Last holds the failure of the final attempt.
type ExhaustedRetriesError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedRetriesError) Unwrap() error { return e.Last }
