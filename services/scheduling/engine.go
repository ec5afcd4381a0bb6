package scheduling

import (
	"context"
	"errors"

	"go.uber.org/zap"

	appointmentRepo "voicebook/database/repository/appointment"
	"voicebook/models"
	"voicebook/utils"
)

// DefaultEngine is the invariant-preserving wrapper over the appointment
// store. Store faults never escape raw: everything that is not a typed
// booking error is converted to a StoreError with the underlying message.
type DefaultEngine struct {
	Repo    appointmentRepo.AppointmentRepository
	Summary SummarySink // optional; publish failures are logged, never fatal
}

func (se *DefaultEngine) Identify(sess *Session, contact string) {
	sess.Identify(contact)
	utils.GetLogger().Info("session identified", zap.String("contact", contact))
}

func (se *DefaultEngine) AvailableSlots() []string {
	return se.Repo.ListSlots()
}

func (se *DefaultEngine) Book(ctx context.Context, sess *Session, slot, name string) (*models.Appointment, error) {
	if !sess.Identified() {
		return nil, NewPreconditionError("Please provide your phone number first.")
	}

	appt, err := se.Repo.Book(ctx, sess.Contact(), slot, name)
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	sess.RecordBooked(appt.ID)
	se.publish(ctx, sess)
	utils.GetLogger().Info("appointment booked",
		zap.String("id", appt.ID), zap.String("slot", appt.Slot))
	return appt, nil
}

func (se *DefaultEngine) Appointments(ctx context.Context, sess *Session) ([]models.Appointment, error) {
	if !sess.Identified() {
		return nil, NewPreconditionError("Please identify yourself first.")
	}

	appts, err := se.Repo.ByContact(ctx, sess.Contact())
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return appts, nil
}

func (se *DefaultEngine) Cancel(ctx context.Context, sess *Session, id string) (*models.Appointment, error) {
	appt, err := se.Repo.Cancel(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	sess.RecordCancelled(id)
	se.publish(ctx, sess)
	utils.GetLogger().Info("appointment cancelled",
		zap.String("id", id), zap.String("slot", appt.Slot))
	return appt, nil
}

func (se *DefaultEngine) Modify(ctx context.Context, sess *Session, id, newSlot string) (*models.Appointment, error) {
	appt, err := se.Repo.Modify(ctx, id, newSlot)
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	sess.RecordModified(id)
	se.publish(ctx, sess)
	utils.GetLogger().Info("appointment rescheduled",
		zap.String("id", id), zap.String("slot", newSlot))
	return appt, nil
}

func (se *DefaultEngine) publish(ctx context.Context, sess *Session) {
	if se.Summary == nil {
		return
	}
	if err := se.Summary.Publish(ctx, sess, se.Repo); err != nil {
		utils.GetLogger().Warn("summary publish failed", zap.Error(err))
	}
}

// wrapStoreErr passes typed booking errors through and converts anything
// else into a StoreError, so the conversational layer always receives a
// speakable failure.
func wrapStoreErr(err error) error {
	if appointmentRepo.IsConflict(err) || appointmentRepo.IsNotFound(err) {
		return err
	}
	var se *appointmentRepo.StoreError
	if errors.As(err, &se) {
		return err
	}
	return &appointmentRepo.StoreError{Err: err}
}
