package bot

import "fmt"

// UnknownStateError means the persisted session state has no handler. This is
// corrupted or stale data; the caller should reset the session.
type UnknownStateError struct {
	State State
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("no handler for conversation state %q", e.State)
}

// AutoAdvanceLoopError means an auto-advance chain exceeded the dispatcher's
// iteration cap, which indicates a transition cycle.
type AutoAdvanceLoopError struct {
	Limit int
}

func (e *AutoAdvanceLoopError) Error() string {
	return fmt.Sprintf("auto-advance exceeded %d chained transitions", e.Limit)
}

// MissingSelectionError means a handler was entered without the prior
// selection its state requires. This is caller misuse (wrong state entered),
// not a recoverable runtime condition.
type MissingSelectionError struct {
	Field string
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("required session field %q not set", e.Field)
}
