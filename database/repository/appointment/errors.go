package appointmentRepo

import (
	"errors"
	"fmt"
)

// ConflictError signals that a slot already holds a confirmed appointment.
type ConflictError struct {
	Slot string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Slot %s is already booked", e.Slot)
}

// NotFoundError signals that no appointment exists with the given id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "Appointment not found"
}

// StoreError wraps an unexpected backend failure (unavailable, timeout).
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("The booking system is unavailable: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
