package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	appointmentRepo "voicebook/database/repository/appointment"
	"voicebook/models"
	"voicebook/services/scheduling"
	"voicebook/utils"
)

// ErrNoSummary is returned by ReadLatest when nothing has been published.
var ErrNoSummary = errors.New("no summary has been published")

const (
	statusText  = "The conversation has ended. Thank you for using our AI booking assistant."
	closingText = "The conversation has ended."
)

// Publisher persists the latest session summary as a single JSON document,
// fully overwritten on every publish, so the status endpoint can serve it
// statelessly. Writes go through a temp file and an atomic rename; readers
// never see a partial document.
type Publisher struct {
	path string
	mu   sync.Mutex
}

func NewPublisher(path string) *Publisher {
	return &Publisher{path: path}
}

// Publish writes a mid-session snapshot: confirmed appointments of the
// identified caller, scoped to the ids touched during this session, in
// store order. An unidentified session publishes an empty list.
func (p *Publisher) Publish(ctx context.Context, sess *scheduling.Session, repo appointmentRepo.AppointmentRepository) error {
	snap := models.SessionSummary{
		Text:         statusText,
		Appointments: []models.Appointment{},
		Timestamp:    time.Now().UTC(),
	}

	if sess.Identified() {
		records, err := repo.ByContact(ctx, sess.Contact())
		if err != nil {
			return fmt.Errorf("failed to load appointments for summary: %w", err)
		}
		for _, a := range records {
			if a.Confirmed() && sess.Touched(a.ID) {
				snap.Appointments = append(snap.Appointments, a)
			}
		}
	}

	if err := p.write(snap); err != nil {
		return err
	}
	utils.GetLogger().Info("summary updated",
		zap.Int("appointments", len(snap.Appointments)))
	return nil
}

// PublishFinal writes the closing snapshot at conversation teardown. Unlike
// mid-session publishes it includes every appointment for the contact,
// regardless of the session's touched set, as a best-effort closing record.
func (p *Publisher) PublishFinal(ctx context.Context, contact string, repo appointmentRepo.AppointmentRepository) error {
	snap := models.SessionSummary{
		Text:         closingText,
		Appointments: []models.Appointment{},
		Timestamp:    time.Now().UTC(),
	}

	if contact != "" {
		records, err := repo.ByContact(ctx, contact)
		if err != nil {
			return fmt.Errorf("failed to load appointments for final summary: %w", err)
		}
		if records != nil {
			snap.Appointments = records
		}
	}

	if err := p.write(snap); err != nil {
		return err
	}
	utils.GetLogger().Info("final summary saved",
		zap.Int("appointments", len(snap.Appointments)))
	return nil
}

// ReadLatest returns the most recently published snapshot, or ErrNoSummary
// if none exists.
func (p *Publisher) ReadLatest() (*models.SessionSummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSummary
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read summary file: %w", err)
	}
	var snap models.SessionSummary
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode summary file: %w", err)
	}
	return &snap, nil
}

// Clear removes any stale snapshot; called when a new conversation starts.
func (p *Publisher) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear summary file: %w", err)
	}
	return nil
}

func (p *Publisher) write(snap models.SessionSummary) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to ensure summary dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(p.path), filepath.Base(p.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp summary file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close summary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace summary file: %w", err)
	}
	return nil
}
