// Package apperr defines the error taxonomy shared by the queue services.
// Every error that reaches a caller carries a Kind and a stable machine code.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	InvalidInput
	NotFound
	Conflict
	InvalidTransition
	Forbidden
	RaceLost
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case InvalidTransition:
		return "invalid_transition"
	case Forbidden:
		return "forbidden"
	case RaceLost:
		return "race_lost"
	default:
		return "internal"
	}
}

// Stable codes returned to clients.
const (
	CodeInvalidWindowNumber  = "INVALID_WINDOW_NUMBER"
	CodeInvalidPriorityClass = "INVALID_PRIORITY_CLASS"
	CodeInvalidTicketID      = "INVALID_TICKET_ID"
	CodeInvalidServiceDay    = "INVALID_SERVICE_DAY"
	CodeInvalidRolloverMode  = "INVALID_ROLLOVER_MODE"
	CodeInvalidStartOverride = "INVALID_START_OVERRIDE"
	CodeConfirmationMismatch = "CONFIRMATION_MISMATCH"
	CodeWindowNotFound       = "WINDOW_NOT_FOUND"
	CodeTicketNotFound       = "TICKET_NOT_FOUND"
	CodeSessionNotFound      = "SESSION_NOT_FOUND"
	CodeQueueEmpty           = "QUEUE_EMPTY"
	CodeWindowBusy           = "WINDOW_BUSY"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeNotWindowOwner       = "NOT_WINDOW_OWNER"
	CodeTicketOtherWindow    = "TICKET_OTHER_WINDOW"
	CodeRaceLost             = "RACE_LOST"
	CodeDBError              = "DB_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error

	// From and To are set for InvalidTransition errors.
	From string
	To   string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Invalid(code, message string) *Error { return New(InvalidInput, code, message) }

func Missing(code, message string) *Error { return New(NotFound, code, message) }

func Conflicting(code, message string) *Error { return New(Conflict, code, message) }

func Denied(code, message string) *Error { return New(Forbidden, code, message) }

// Transition reports a state machine precondition failure.
func Transition(from, to string) *Error {
	return &Error{
		Kind:    InvalidTransition,
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot move ticket from %s to %s", from, to),
		From:    from,
		To:      to,
	}
}

// Race wraps a serialization conflict that survived all retries.
func Race(err error) *Error {
	return &Error{Kind: RaceLost, Code: CodeRaceLost, Message: "concurrent update, retry the operation", Err: err}
}

// Storage wraps an unexpected persistence failure.
func Storage(err error) *Error {
	return &Error{Kind: Internal, Code: CodeDBError, Message: "storage failure", Err: err}
}

// KindOf returns the Kind of err, or Internal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
