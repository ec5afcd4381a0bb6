package appointmentRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"voicebook/models"
)

// FileAppointmentRepo is the local fallback store: one JSON document holding
// the full appointment list, rewritten wholesale under the repository mutex.
// Reads take the same mutex so they never observe a half-applied mutation.
type FileAppointmentRepo struct {
	path    string
	catalog []string
	mu      sync.Mutex
}

// NewFileAppointmentRepo constructs the file-backed store variant.
func NewFileAppointmentRepo(path string, catalog []string) (*FileAppointmentRepo, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to ensure store dir: %w", err)
		}
	}
	return &FileAppointmentRepo{path: path, catalog: catalog}, nil
}

func (repo *FileAppointmentRepo) ListSlots() []string {
	return append([]string(nil), repo.catalog...)
}

func (repo *FileAppointmentRepo) Book(ctx context.Context, contact, slot, name string) (*models.Appointment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, &StoreError{Err: err}
	}

	records, err := repo.load()
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	for _, a := range records {
		if a.Slot == slot && a.Status == models.StatusConfirmed {
			return nil, &ConflictError{Slot: slot}
		}
	}

	appt := models.Appointment{
		ID:      strconv.Itoa(len(records) + 1),
		Contact: contact,
		Slot:    slot,
		Name:    name,
		Status:  models.StatusConfirmed,
	}
	records = append(records, appt)
	if err := repo.save(records); err != nil {
		return nil, &StoreError{Err: err}
	}
	return &appt, nil
}

func (repo *FileAppointmentRepo) ByContact(ctx context.Context, contact string) ([]models.Appointment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, &StoreError{Err: err}
	}

	records, err := repo.load()
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	var appts []models.Appointment
	for _, a := range records {
		if a.Contact == contact {
			appts = append(appts, a)
		}
	}
	return appts, nil
}

func (repo *FileAppointmentRepo) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, &StoreError{Err: err}
	}

	records, err := repo.load()
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	for i := range records {
		if records[i].ID == id {
			records[i].Status = models.StatusCancelled
			if err := repo.save(records); err != nil {
				return nil, &StoreError{Err: err}
			}
			appt := records[i]
			return &appt, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

func (repo *FileAppointmentRepo) Modify(ctx context.Context, id, newSlot string) (*models.Appointment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, &StoreError{Err: err}
	}

	records, err := repo.load()
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	for i := range records {
		if records[i].ID != id {
			continue
		}
		for _, other := range records {
			if other.ID != id && other.Slot == newSlot && other.Status == models.StatusConfirmed {
				return nil, &ConflictError{Slot: newSlot}
			}
		}
		records[i].Slot = newSlot
		if err := repo.save(records); err != nil {
			return nil, &StoreError{Err: err}
		}
		appt := records[i]
		return &appt, nil
	}
	return nil, &NotFoundError{ID: id}
}

// load reads the full record list. A missing or unreadable file counts as an
// empty store, matching first-run behavior.
func (repo *FileAppointmentRepo) load() ([]models.Appointment, error) {
	data, err := os.ReadFile(repo.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	var records []models.Appointment
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil
	}
	return records, nil
}

// save rewrites the document atomically: write to a temp file, then rename,
// so a concurrent reader never sees a partial write.
func (repo *FileAppointmentRepo) save(records []models.Appointment) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(repo.path), filepath.Base(repo.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), repo.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
