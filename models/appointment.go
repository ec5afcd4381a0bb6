package models

// Appointment statuses. Cancellation is a terminal status transition, never
// a physical delete, so slot history stays auditable.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment represents one booked slot for a caller.
type Appointment struct {
	ID      string `bson:"id" json:"id"`           // Store-assigned identifier
	Contact string `bson:"contact" json:"contact"` // Caller phone number
	Slot    string `bson:"slot" json:"slot"`                     // Opaque slot key, local-time ISO string without timezone suffix
	Name    string `bson:"name" json:"name"`                     // Display name given at booking time
	Status  string `bson:"status" json:"status"`                 // "confirmed" or "cancelled"
}

// Confirmed reports whether the appointment currently holds its slot.
func (a Appointment) Confirmed() bool {
	return a.Status == StatusConfirmed
}
