package calc

import (
	"errors"
	"fmt"
)

// Kind classifies an evaluation failure.
type Kind int

const (
	KindInvalidExpression Kind = iota + 1
	KindDivisionByZero
	KindEmptyExpression
	KindOverflow
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidExpression:
		return "invalid expression"
	case KindDivisionByZero:
		return "division by zero"
	case KindEmptyExpression:
		return "empty expression"
	case KindOverflow:
		return "result out of range"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidExpression = errors.New("invalid expression")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrEmptyExpression   = errors.New("empty expression")
	ErrOverflow          = errors.New("result out of range")
)

// Error is returned by Evaluate for every failure.
type Error struct {
	Kind   Kind
	Offset int    // byte offset into the expression, -1 if not positional
	Detail string // e.g. "unexpected ')'"
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s at offset %d", e.Kind, e.Detail, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidExpression:
		return e.Kind == KindInvalidExpression
	case ErrDivisionByZero:
		return e.Kind == KindDivisionByZero
	case ErrEmptyExpression:
		return e.Kind == KindEmptyExpression
	case ErrOverflow:
		return e.Kind == KindOverflow
	}
	return false
}

// KindOf extracts the Kind from err, or 0 if err is not an evaluation error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func invalidf(offset int, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidExpression, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}
