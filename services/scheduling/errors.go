package scheduling

import "errors"

// PreconditionError signals an operation that requires the caller to have
// identified themselves first.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func NewPreconditionError(msg string) error {
	return &PreconditionError{Message: msg}
}

func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
