package summary

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentRepo "voicebook/database/repository/appointment"
	"voicebook/models"
	"voicebook/services/scheduling"
)

var testSlots = []string{
	"2026-01-20T10:00:00",
	"2026-01-20T11:00:00",
	"2026-01-20T14:00:00",
	"2026-01-21T09:00:00",
}

func newFixture(t *testing.T) (*Publisher, *appointmentRepo.FileAppointmentRepo) {
	t.Helper()
	dir := t.TempDir()
	repo, err := appointmentRepo.NewFileAppointmentRepo(filepath.Join(dir, "mock_db.json"), testSlots)
	require.NoError(t, err)
	return NewPublisher(filepath.Join(dir, "latest_summary.json")), repo
}

func TestReadLatestBeforeAnyPublish(t *testing.T) {
	pub, _ := newFixture(t)

	_, err := pub.ReadLatest()
	assert.ErrorIs(t, err, ErrNoSummary)
}

func TestPublishScopedToSessionTouchedSet(t *testing.T) {
	pub, repo := newFixture(t)
	ctx := context.Background()

	// A confirmed appointment from a previous conversation.
	prior, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)

	sess := scheduling.NewSession()
	sess.Identify("+100")
	a1, err := repo.Book(ctx, "+100", testSlots[1], "Ann")
	require.NoError(t, err)
	sess.RecordBooked(a1.ID)
	a2, err := repo.Book(ctx, "+100", testSlots[2], "Ann")
	require.NoError(t, err)
	sess.RecordBooked(a2.ID)

	require.NoError(t, pub.Publish(ctx, sess, repo))

	snap, err := pub.ReadLatest()
	require.NoError(t, err)
	require.Len(t, snap.Appointments, 2)
	assert.Equal(t, a1.ID, snap.Appointments[0].ID)
	assert.Equal(t, a2.ID, snap.Appointments[1].ID)
	for _, appt := range snap.Appointments {
		assert.NotEqual(t, prior.ID, appt.ID)
	}
	assert.NotEmpty(t, snap.Text)
	assert.WithinDuration(t, time.Now().UTC(), snap.Timestamp, 5*time.Second)
}

func TestPublishExcludesCancelled(t *testing.T) {
	pub, repo := newFixture(t)
	ctx := context.Background()

	sess := scheduling.NewSession()
	sess.Identify("+100")
	appt, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)
	sess.RecordBooked(appt.ID)

	_, err = repo.Cancel(ctx, appt.ID)
	require.NoError(t, err)

	// Still in the touched set, but no longer confirmed.
	require.NoError(t, pub.Publish(ctx, sess, repo))

	snap, err := pub.ReadLatest()
	require.NoError(t, err)
	assert.Empty(t, snap.Appointments)
}

func TestPublishUnidentifiedSession(t *testing.T) {
	pub, repo := newFixture(t)

	require.NoError(t, pub.Publish(context.Background(), scheduling.NewSession(), repo))

	snap, err := pub.ReadLatest()
	require.NoError(t, err)
	assert.NotNil(t, snap.Appointments)
	assert.Empty(t, snap.Appointments)
}

func TestPublishFinalIsUnscoped(t *testing.T) {
	pub, repo := newFixture(t)
	ctx := context.Background()

	// One prior confirmed, one touched confirmed, one touched cancelled.
	_, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)
	a1, err := repo.Book(ctx, "+100", testSlots[1], "Ann")
	require.NoError(t, err)
	_, err = repo.Cancel(ctx, a1.ID)
	require.NoError(t, err)

	require.NoError(t, pub.PublishFinal(ctx, "+100", repo))

	snap, err := pub.ReadLatest()
	require.NoError(t, err)
	// Everything for the contact, any status, regardless of the session.
	require.Len(t, snap.Appointments, 2)
	statuses := []string{snap.Appointments[0].Status, snap.Appointments[1].Status}
	assert.Contains(t, statuses, models.StatusConfirmed)
	assert.Contains(t, statuses, models.StatusCancelled)
}

func TestPublishOverwritesWholesale(t *testing.T) {
	pub, repo := newFixture(t)
	ctx := context.Background()

	sess := scheduling.NewSession()
	sess.Identify("+100")
	appt, err := repo.Book(ctx, "+100", testSlots[0], "Ann")
	require.NoError(t, err)
	sess.RecordBooked(appt.ID)
	require.NoError(t, pub.Publish(ctx, sess, repo))

	// A later publish from an empty session replaces the whole snapshot.
	require.NoError(t, pub.Publish(ctx, scheduling.NewSession(), repo))

	snap, err := pub.ReadLatest()
	require.NoError(t, err)
	assert.Empty(t, snap.Appointments)
}

func TestClearRemovesSnapshot(t *testing.T) {
	pub, repo := newFixture(t)
	ctx := context.Background()

	require.NoError(t, pub.Publish(ctx, scheduling.NewSession(), repo))
	require.NoError(t, pub.Clear())

	_, err := pub.ReadLatest()
	assert.ErrorIs(t, err, ErrNoSummary)

	// Clearing an already-absent snapshot is fine.
	assert.NoError(t, pub.Clear())
}
