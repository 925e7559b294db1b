package workflow

import "fmt"

// ValidationError reports rejected input before any external call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("workflow: invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("workflow: %s not found: %s", e.Entity, e.ID)
}

// GenerationError reports a failed call to the content generation
// service. The job row carries the message; the caller sees this type.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("workflow: generate content: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// InvalidStateError reports an operation attempted against a record in the
// wrong lifecycle state, such as publishing a job that has not completed.
type InvalidStateError struct {
	Entity string
	ID     string
	State  string
	Want   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("workflow: %s %s is %s, want %s", e.Entity, e.ID, e.State, e.Want)
}
