package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"voicebook/services/scheduling"
	"voicebook/utils"
)

// Tool names callable by the conversational layer.
const (
	ToolIdentifyUser         = "identify_user"
	ToolFetchSlots           = "fetch_slots"
	ToolBookAppointment      = "book_appointment"
	ToolRetrieveAppointments = "retrieve_appointments"
	ToolCancelAppointment    = "cancel_appointment"
	ToolModifyAppointment    = "modify_appointment"
	ToolEndConversation      = "end_conversation"
)

const farewellText = "I'm ending the call now. Thank you for booking with us. Goodbye!"

// Dispatch executes a named tool and returns a speakable response. It never
// fails upward: unknown tools and backend errors come back as guiding
// strings the conversational layer can voice directly. A tool call arriving
// after end_conversation cancels the pending teardown.
func (a *Assistant) Dispatch(ctx context.Context, tool string, args map[string]string) string {
	a.cancelPendingTeardown()

	switch tool {
	case ToolIdentifyUser:
		return a.identifyUser(ctx, args["phone_number"])
	case ToolFetchSlots:
		return a.fetchSlots()
	case ToolBookAppointment:
		return a.bookAppointment(ctx, args["slot"], args["name"])
	case ToolRetrieveAppointments:
		return a.retrieveAppointments(ctx)
	case ToolCancelAppointment:
		return a.cancelAppointment(ctx, args["appointment_id"])
	case ToolModifyAppointment:
		return a.modifyAppointment(ctx, args["appointment_id"], args["new_slot"])
	case ToolEndConversation:
		return a.endConversation(ctx)
	default:
		return fmt.Sprintf("Tool %s is not available. Try identify_user, fetch_slots, book_appointment, retrieve_appointments, cancel_appointment, modify_appointment or end_conversation.", tool)
	}
}

func (a *Assistant) identifyUser(ctx context.Context, phone string) string {
	if phone == "" {
		return "Please provide a phone number to identify yourself."
	}
	a.Engine.Identify(a.sess, phone)
	a.publish(ctx)
	return fmt.Sprintf("User identified as %s. Checking for existing appointments...", phone)
}

func (a *Assistant) fetchSlots() string {
	slots := a.Engine.AvailableSlots()
	return "Available slots: " + strings.Join(slots, ", ")
}

func (a *Assistant) bookAppointment(ctx context.Context, slot, name string) string {
	appt, err := a.Engine.Book(ctx, a.sess, slot, name)
	if err != nil {
		if scheduling.IsPrecondition(err) {
			return "Please provide your phone number first using 'identify_user'."
		}
		return fmt.Sprintf("Failed to book: %s", err)
	}
	return fmt.Sprintf("Appointment confirmed for %s on %s.", appt.Name, appt.Slot)
}

func (a *Assistant) retrieveAppointments(ctx context.Context) string {
	appts, err := a.Engine.Appointments(ctx, a.sess)
	if err != nil {
		if scheduling.IsPrecondition(err) {
			return "Please identify yourself first."
		}
		return "Error retrieving appointments."
	}
	if len(appts) == 0 {
		return "No appointments found."
	}
	lines := make([]string, 0, len(appts))
	for _, appt := range appts {
		lines = append(lines, fmt.Sprintf("ID: %s - Slot: %s (%s)", appt.ID, appt.Slot, appt.Status))
	}
	return "Your appointments:\n" + strings.Join(lines, "\n")
}

func (a *Assistant) cancelAppointment(ctx context.Context, id string) string {
	appt, err := a.Engine.Cancel(ctx, a.sess, id)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	return fmt.Sprintf("Appointment %s cancelled.", appt.ID)
}

func (a *Assistant) modifyAppointment(ctx context.Context, id, newSlot string) string {
	appt, err := a.Engine.Modify(ctx, a.sess, id, newSlot)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	return fmt.Sprintf("Appointment rescheduled to %s.", appt.Slot)
}

// endConversation publishes the current summary, voices the farewell, and
// arms the teardown timer so playback finishes before the session dies.
func (a *Assistant) endConversation(ctx context.Context) string {
	a.publish(ctx)

	if a.Speaker != nil {
		if err := a.Speaker.Say(ctx, farewellText); err != nil {
			utils.GetLogger().Warn("farewell playback failed", zap.Error(err))
		}
	}

	a.scheduleTeardown()
	return "Ending the call. Goodbye!"
}

func (a *Assistant) publish(ctx context.Context) {
	if err := a.Summary.Publish(ctx, a.sess, a.Repo); err != nil {
		utils.GetLogger().Warn("summary publish failed", zap.Error(err))
	}
}
