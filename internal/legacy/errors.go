package legacy

import (
	"fmt"

	"casenotes/pkg/platform/sentinel"
)

// Category classifies legacy call failures.
type Category string

const (
	CategoryTimeout     Category = "timeout"
	CategoryTransport   Category = "transport"
	CategoryServer      Category = "server_error"
	CategoryRejected    Category = "rejected"
	CategoryUnexpected  Category = "unexpected_status"
	CategoryBadData     Category = "bad_data"
	CategoryCircuitOpen Category = "circuit_open"
)

// Error is a failed legacy call other than not-found. A rejected request
// matches sentinel.ErrRejected under errors.Is, every other category matches
// sentinel.ErrUnavailable.
type Error struct {
	Category  Category
	Operation string
	Status    int
	Message   string
	Err       error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("legacy %s [%s]", e.Operation, e.Category)
	if e.Status != 0 {
		msg += fmt.Sprintf(" status %d", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	if e.Category == CategoryRejected {
		return target == sentinel.ErrRejected
	}
	return target == sentinel.ErrUnavailable
}
