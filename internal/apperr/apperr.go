package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind is the closed set of failure classes surfaced by the service layer.
// Every error leaving a domain service is one of these; raw persistence
// errors never reach handlers.
type Kind int

const (
	// Unauthenticated means no resolved user identity was present.
	Unauthenticated Kind = iota
	// NotFound means the addressed row is absent.
	NotFound
	// Validation means the input was rejected before touching storage.
	Validation
	// Upstream means the persistence call itself failed.
	Upstream
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	case Validation:
		return "validation"
	case Upstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Error carries a user-safe message plus a developer-only detail. The detail
// is only rendered when the DEBUG_ERRORS flag is set.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// DevMessage returns the detailed developer-facing text.
func (e *Error) DevMessage() string {
	if e.cause == nil {
		return e.Message
	}
	return e.cause.Error()
}

// New constructs an Error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap normalizes err into the closed taxonomy, translating
// gorm.ErrRecordNotFound to NotFound and everything else to Upstream.
// The message is the user-safe text shown to callers.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	kind := Upstream
	if errors.Is(err, gorm.ErrRecordNotFound) {
		kind = NotFound
	}
	return &Error{Kind: kind, Message: message, cause: err}
}

// KindOf extracts the Kind from err, defaulting to Upstream for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Upstream
}

// IsKind reports whether err belongs to the given Kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
