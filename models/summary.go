package models

import "time"

// SessionSummary is the point-in-time snapshot of a conversation's outcome,
// persisted wholesale for the status endpoint. Last write wins.
type SessionSummary struct {
	Text         string        `json:"text"`
	Appointments []Appointment `json:"appointments"`
	Timestamp    time.Time     `json:"timestamp"` // UTC
}
