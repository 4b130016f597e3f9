package knowledgebase

import (
	"fmt"
	"strings"
)

// TransportError means the knowledge base could not be reached at all. The
// turn must fail without mutating session state.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("knowledge base unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the knowledge base rejected the request or returned
// errors with no usable data. Fatal for the turn.
type ProtocolError struct {
	StatusCode int
	Messages   []string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("knowledge base error (status %d): %s", e.StatusCode, strings.Join(e.Messages, "; "))
}
