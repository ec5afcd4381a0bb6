package scheduling

import (
	"context"

	appointmentRepo "voicebook/database/repository/appointment"
	"voicebook/models"
)

// Engine exposes the booking operations available to the conversational
// layer. Every operation takes an explicit session handle, so one process
// can serve many concurrent conversations against the shared store.
type Engine interface {
	// Identify records the caller identity on the session. It never touches
	// the store and is idempotent.
	Identify(sess *Session, contact string)

	// AvailableSlots returns the slot catalog. Already-booked slots are not
	// filtered out; booking is the authoritative conflict check.
	AvailableSlots() []string

	// Book creates a confirmed appointment for the session's caller and
	// records it in the session's touched set.
	Book(ctx context.Context, sess *Session, slot, name string) (*models.Appointment, error)

	// Appointments returns every appointment for the session's caller.
	Appointments(ctx context.Context, sess *Session) ([]models.Appointment, error)

	// Cancel transitions the appointment to cancelled and removes it from
	// the session's touched set.
	Cancel(ctx context.Context, sess *Session, id string) (*models.Appointment, error)

	// Modify moves the appointment to a new slot and ensures it is in the
	// session's touched set.
	Modify(ctx context.Context, sess *Session, id, newSlot string) (*models.Appointment, error)
}

// SummarySink receives a publish trigger after every successful mutation.
type SummarySink interface {
	Publish(ctx context.Context, sess *Session, repo appointmentRepo.AppointmentRepository) error
}
