package validation

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies where a validation failure originated.
type Kind int

const (
	// KindConfig is a missing or malformed schema definition.
	KindConfig Kind = iota + 1
	// KindDataRead is a dataset which cannot be found or parsed.
	KindDataRead
	// KindValidation is an unexpected failure while comparing.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindDataRead:
		return "data read error"
	case KindValidation:
		return "validation error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type returned by the Validator. Cause is the
// original error, reachable through errors.Is and errors.As.
type Error struct {
	Kind  Kind
	Op    string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
