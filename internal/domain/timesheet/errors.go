package timesheet

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("timesheet not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrValidationFailed  = errors.New("validation failed")
	ErrEmptyBatch        = errors.New("empty batch")
	ErrRemoteFailure     = errors.New("remote failure")
)

// GuardError names the guard that refused an operation. Kind is one of the
// sentinels above, so errors.Is keeps working on the wrapped value.
type GuardError struct {
	Kind    error
	Guard   string
	Details []string
}

func (e *GuardError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Guard != "" {
		b.WriteString(": ")
		b.WriteString(e.Guard)
	}
	if len(e.Details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Details, "; "))
		b.WriteString(")")
	}
	return b.String()
}

func (e *GuardError) Unwrap() error { return e.Kind }

func Denied(guard string) error {
	return &GuardError{Kind: ErrPermissionDenied, Guard: guard}
}

func Invalid(guard string) error {
	return &GuardError{Kind: ErrInvalidTransition, Guard: guard}
}

func Rejected(guard string, details ...string) error {
	return &GuardError{Kind: ErrValidationFailed, Guard: guard, Details: details}
}

// RemoteError wraps a failure of the store call itself. It matches both
// ErrRemoteFailure and the underlying error.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return ErrRemoteFailure.Error() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() []error { return []error{ErrRemoteFailure, e.Err} }

// Remote wraps err unless it already carries a domain error kind.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrNotFound, ErrPermissionDenied, ErrInvalidTransition, ErrValidationFailed, ErrRemoteFailure} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return &RemoteError{Op: op, Err: err}
}
