package appointmentRepo

import (
	"context"

	"voicebook/models"
)

// AppointmentRepository is the appointment store contract. Both variants
// (MongoDB and the local file fallback) satisfy it identically; the
// scheduling engine never knows which one is active.
//
// Mutating operations on one repository instance are serialized: the
// slot-conflict check and the write form a single atomic unit.
type AppointmentRepository interface {
	// ListSlots returns the bookable slot catalog. No conflict filtering is
	// applied; booking is the authoritative check.
	ListSlots() []string

	// Book creates a confirmed appointment at slot. Returns a ConflictError
	// if the slot already holds a confirmed appointment; no mutation occurs
	// on failure.
	Book(ctx context.Context, contact, slot, name string) (*models.Appointment, error)

	// ByContact returns all appointments for the contact, any status, in
	// store order.
	ByContact(ctx context.Context, contact string) ([]models.Appointment, error)

	// Cancel transitions the appointment to cancelled. The slot and id are
	// unchanged; the record is never deleted.
	Cancel(ctx context.Context, id string) (*models.Appointment, error)

	// Modify moves the appointment to newSlot, keeping id and status.
	// Returns a ConflictError if another confirmed appointment holds newSlot.
	Modify(ctx context.Context, id, newSlot string) (*models.Appointment, error)
}
