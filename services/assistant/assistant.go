package assistant

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"voicebook/config"
	appointmentRepo "voicebook/database/repository/appointment"
	"voicebook/services/scheduling"
	"voicebook/services/summary"
	"voicebook/utils"
)

// Speaker voices assistant output through the external TTS/transport stack.
// A nil Speaker is valid; the farewell is then only returned as text.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// Assistant owns one conversation: a session handle, the tool surface the
// conversational layer invokes, and the farewell/teardown sequencing.
type Assistant struct {
	Engine  scheduling.Engine
	Repo    appointmentRepo.AppointmentRepository
	Summary *summary.Publisher
	Speaker Speaker

	// Grace is the delay between the farewell and teardown, long enough
	// for playback to finish.
	Grace time.Duration

	// OnClose runs once, after the terminal summary has been written. The
	// transport layer hooks its shutdown here.
	OnClose func()

	sess     *scheduling.Session
	mu       sync.Mutex
	teardown *time.Timer
	closed   bool
}

// NewAssistant starts a fresh conversation. Any stale summary snapshot from
// a previous conversation is cleared so the status endpoint never serves
// another session's outcome.
func NewAssistant(engine scheduling.Engine, repo appointmentRepo.AppointmentRepository, pub *summary.Publisher, speaker Speaker) *Assistant {
	if err := pub.Clear(); err != nil {
		utils.GetLogger().Warn("failed to clear stale summary", zap.Error(err))
	}
	return &Assistant{
		Engine:  engine,
		Repo:    repo,
		Summary: pub,
		Speaker: speaker,
		Grace:   config.AppConfig.FarewellGrace(),
		sess:    scheduling.NewSession(),
	}
}

// Session exposes the conversation's session handle.
func (a *Assistant) Session() *scheduling.Session {
	return a.sess
}

// Close tears the conversation down: it cancels any pending teardown timer,
// writes the terminal summary (unscoped: every appointment for the contact),
// and fires OnClose. Safe to call more than once.
func (a *Assistant) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	if a.teardown != nil {
		a.teardown.Stop()
		a.teardown = nil
	}
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), config.AppConfig.StoreTimeout())
	defer cancel()
	if err := a.Summary.PublishFinal(ctx, a.sess.Contact(), a.Repo); err != nil {
		utils.GetLogger().Warn("final summary publish failed", zap.Error(err))
	}

	if a.OnClose != nil {
		a.OnClose()
	}
}

// scheduleTeardown arms the post-farewell timer. A later session event
// cancels it through cancelPendingTeardown.
func (a *Assistant) scheduleTeardown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.teardown != nil {
		a.teardown.Stop()
	}
	a.teardown = time.AfterFunc(a.Grace, a.Close)
}

func (a *Assistant) cancelPendingTeardown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.teardown != nil {
		a.teardown.Stop()
		a.teardown = nil
	}
}
