package sync

import "fmt"

// FailureKind classifies why an operation did not go through.
type FailureKind int

const (
	// FailureValidation is detected locally before any store call; the
	// collaborator is never reached.
	FailureValidation FailureKind = iota
	// FailureRejected is a business outcome reported by the store (folder
	// not empty, move refused); retryable, no state was changed.
	FailureRejected
	// FailureTransport is a backend or I/O error; treated like a rejection
	// for state purposes, but logged.
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureValidation:
		return "validation"
	case FailureRejected:
		return "rejected"
	case FailureTransport:
		return "transport"
	}
	return "unknown"
}

// OpError reports a failed operation. Local state is guaranteed untouched:
// no partial tree mutation survives a failure of any kind.
type OpError struct {
	Kind    FailureKind
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Kind, e.Message)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func validationErr(op string, err error) *OpError {
	return &OpError{Kind: FailureValidation, Op: op, Err: err}
}

func rejectedErr(op, message string) *OpError {
	return &OpError{Kind: FailureRejected, Op: op, Message: message}
}

func transportErr(op string, err error) *OpError {
	return &OpError{Kind: FailureTransport, Op: op, Err: err}
}
