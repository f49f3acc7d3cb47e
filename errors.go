package keyset

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

// Kind classifies every failure that can cross the pagination boundary.
// No other error shapes are surfaced to callers.
type Kind string

const (
	// KindInvalidToken marks a malformed, tampered, or mismatched cursor token.
	KindInvalidToken Kind = "INVALID_TOKEN"

	// KindInvalidSort marks an empty or malformed sort set.
	KindInvalidSort Kind = "INVALID_SORT"

	// KindInvalidLimit marks a non-positive or out-of-range page size.
	KindInvalidLimit Kind = "INVALID_LIMIT"

	// KindUnexpected marks any other failure. The original cause is attached
	// and reachable through errors.Unwrap.
	KindUnexpected Kind = "UNEXPECTED_ERROR"
)

// Error is the only error type returned by this package. It carries the
// failure kind plus an optional wrapped cause.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	switch {
	case e.msg != "" && e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
}

// Unwrap exposes the original cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf reports the kind of err. Errors produced outside this package
// report KindUnexpected; nil reports an empty kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind
	}

	return KindUnexpected
}

func invalidTokenf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidToken, msg: fmt.Sprintf(format, args...)}
}

func invalidToken(cause error, msg string) *Error {
	return &Error{Kind: KindInvalidToken, msg: msg, cause: cause}
}

func invalidSortf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidSort, msg: fmt.Sprintf(format, args...)}
}

func invalidLimitf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidLimit, msg: fmt.Sprintf(format, args...)}
}

// wrapUnexpected converts err into an UNEXPECTED_ERROR unless it already is
// one of the four recognized kinds, in which case it passes through unchanged.
func wrapUnexpected(err error) error {
	if err == nil {
		return nil
	}

	var ke *Error
	if errors.As(err, &ke) {
		return err
	}

	return &Error{Kind: KindUnexpected, cause: err}
}
