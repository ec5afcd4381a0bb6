package appointmentRepo

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicebook/models"
)

var testSlots = []string{
	"2026-01-20T10:00:00",
	"2026-01-20T11:00:00",
	"2026-01-20T14:00:00",
	"2026-01-21T09:00:00",
}

func newTestRepo(t *testing.T) (*FileAppointmentRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mock_db.json")
	repo, err := NewFileAppointmentRepo(path, testSlots)
	require.NoError(t, err)
	return repo, path
}

func TestFileRepoListSlots(t *testing.T) {
	repo, _ := newTestRepo(t)

	slots := repo.ListSlots()
	assert.Equal(t, testSlots, slots)

	// Mutating the returned slice must not touch the catalog.
	slots[0] = "mutated"
	assert.Equal(t, testSlots[0], repo.ListSlots()[0])
}

func TestFileRepoBookConflict(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, first.Status)
	assert.Equal(t, "+100", first.Contact)
	assert.Equal(t, "Ann", first.Name)
	assert.NotEmpty(t, first.ID)

	_, err = repo.Book(ctx, "+200", testSlots[0], "Bob")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), testSlots[0])

	// The failed booking must leave no record behind.
	appts, err := repo.ByContact(ctx, "+200")
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestFileRepoCancelFreesSlot(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)

	cancelled, err := repo.Cancel(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, cancelled.ID)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	// Cancellation keeps the slot on the record for auditability.
	assert.Equal(t, testSlots[0], cancelled.Slot)

	second, err := repo.Book(ctx, "+200", testSlots[0], "Bob")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, second.Status)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestFileRepoModifyPreservesIdentity(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	appt, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)

	moved, err := repo.Modify(ctx, appt.ID, testSlots[1])
	require.NoError(t, err)
	assert.Equal(t, appt.ID, moved.ID)
	assert.Equal(t, testSlots[1], moved.Slot)
	assert.Equal(t, models.StatusConfirmed, moved.Status)

	// The vacated slot is bookable again.
	_, err = repo.Book(ctx, "+200", testSlots[0], "Bob")
	require.NoError(t, err)

	// And moving back fails now that someone else holds it.
	_, err = repo.Modify(ctx, appt.ID, testSlots[0])
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	appts, err := repo.ByContact(ctx, "+100")
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, appt.ID, appts[0].ID)
	assert.Equal(t, testSlots[1], appts[0].Slot)
}

func TestFileRepoModifyBackToFreedSlot(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	appt, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)

	_, err = repo.Modify(ctx, appt.ID, testSlots[1])
	require.NoError(t, err)

	// Nobody took the old slot, so moving back succeeds.
	moved, err := repo.Modify(ctx, appt.ID, testSlots[0])
	require.NoError(t, err)
	assert.Equal(t, testSlots[0], moved.Slot)
}

func TestFileRepoNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Cancel(ctx, "999")
	assert.True(t, IsNotFound(err))

	_, err = repo.Modify(ctx, "999", testSlots[0])
	assert.True(t, IsNotFound(err))
}

func TestFileRepoConcurrentBookingSameSlot(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

func TestFileRepoPersistsAcrossReopen(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	appt, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)

	reopened, err := NewFileAppointmentRepo(path, testSlots)
	require.NoError(t, err)

	appts, err := reopened.ByContact(ctx, "+100")
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, appt.ID, appts[0].ID)

	// The persisted confirmed slot still blocks new bookings.
	_, err = reopened.Book(ctx, "+200", testSlots[0], "Bob")
	assert.True(t, IsConflict(err))
}

func TestFileRepoByContactStoreOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	a1, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)
	_, err = repo.Book(ctx, "+200", testSlots[1], "Bob")
	require.NoError(t, err)
	a2, err := repo.Book(ctx, "+100", testSlots[2], "Ann")
	require.NoError(t, err)

	appts, err := repo.ByContact(ctx, "+100")
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, a1.ID, appts[0].ID)
	assert.Equal(t, a2.ID, appts[1].ID)
}
