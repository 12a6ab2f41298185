package game

import (
	"errors"
	"fmt"
)

// Rejection codes are stable and safe to expose to clients.
const (
	CodeValidation       = "VALIDATION"
	CodeIllegalMove      = "ILLEGAL_MOVE"
	CodeSequenceMismatch = "SEQUENCE_MISMATCH"
	CodeInvariant        = "INVARIANT_VIOLATION"
	CodeNotFound         = "GAME_NOT_FOUND"
)

// ValidationError is a malformed action payload.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid action: " + e.Reason }
func (e *ValidationError) Code() string  { return CodeValidation }

// IllegalMoveError is a well-formed action absent from the actor's legal list.
type IllegalMoveError struct {
	Action Action
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Action, e.Reason)
}
func (e *IllegalMoveError) Code() string { return CodeIllegalMove }

// SequenceMismatchError means the caller is out of sync with the event log.
type SequenceMismatchError struct {
	Expected int
	Actual   int
}

func (e *SequenceMismatchError) Error() string {
	return fmt.Sprintf("sequence mismatch: expected %d, log has %d", e.Expected, e.Actual)
}
func (e *SequenceMismatchError) Code() string { return CodeSequenceMismatch }

// InvariantViolation is an internal consistency failure. The offending
// state is discarded.
type InvariantViolation struct {
	Err error
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Err.Error() }
func (e *InvariantViolation) Unwrap() error { return e.Err }
func (e *InvariantViolation) Code() string  { return CodeInvariant }

// NotFoundError is returned by the manager for unknown game ids.
type NotFoundError struct {
	GameID string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("game %s not found", e.GameID) }
func (e *NotFoundError) Code() string  { return CodeNotFound }

// Coder is implemented by every rejection error.
type Coder interface {
	Code() string
}

// CodeOf returns the stable code of err, or "" for untyped errors.
func CodeOf(err error) string {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func illegal(a Action, reason string) error {
	return &IllegalMoveError{Action: a, Reason: reason}
}
