package scheduling

// Session tracks one conversation: the identified caller and the set of
// appointment ids touched since the conversation started. Each session is
// owned by a single conversation and its tool calls run sequentially, so it
// carries no lock. It is discarded at teardown; only the published summary
// survives.
type Session struct {
	contact string
	touched map[string]struct{}
}

func NewSession() *Session {
	return &Session{touched: make(map[string]struct{})}
}

// Identify records the caller identity. Idempotent; the last identification wins.
func (s *Session) Identify(contact string) {
	s.contact = contact
}

func (s *Session) Contact() string {
	return s.contact
}

func (s *Session) Identified() bool {
	return s.contact != ""
}

// RecordBooked marks an appointment as created during this session.
func (s *Session) RecordBooked(id string) {
	s.touched[id] = struct{}{}
}

// RecordModified marks an appointment as touched; a modification counts the
// same as a booking for summary scoping.
func (s *Session) RecordModified(id string) {
	s.touched[id] = struct{}{}
}

// RecordCancelled drops the appointment from the touched set if present.
func (s *Session) RecordCancelled(id string) {
	delete(s.touched, id)
}

// Touched reports whether the appointment was booked or modified this session.
func (s *Session) Touched(id string) bool {
	_, ok := s.touched[id]
	return ok
}

func (s *Session) TouchedCount() int {
	return len(s.touched)
}
