// Package session drives a user through the level lifecycle: generate a
// level, collect answers, evaluate them, fold the result into the profile
// and history, and persist the snapshot.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/coaching"
	"github.com/abhisek/iq360/internal/history"
	"github.com/abhisek/iq360/internal/levelgen"
	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/profile"
	"github.com/abhisek/iq360/internal/store"
)

// Machine is the session state machine. All methods are safe for
// concurrent use. Collaborator and storage calls run without holding the
// lock, so navigation and rendering stay responsive while a level is
// generated, evaluated or saved.
type Machine struct {
	gen    levelgen.Generator
	eval   coaching.Evaluator
	store  store.SnapshotStore
	logger *zap.Logger
	now    func() time.Time

	// io serializes storage calls. It is taken before mu, and mu is never
	// held while the store is called.
	io sync.Mutex

	mu        sync.Mutex
	sessionID string
	state     State
	returnTo  State // state Back returns to from Dashboard or History

	profile   profile.Profile
	history   []history.Entry
	level     *assessment.Level
	responses []assessment.UserResponse
	coaching  *assessment.Feedback
	err       error

	loaded     bool
	degraded   bool
	generating bool
	evaluating bool

	// epoch is bumped by Reset. Calls that started in an older epoch
	// drop their results.
	epoch uint64
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp history entries.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(m *Machine) {
		if id != "" {
			m.sessionID = id
		}
	}
}

// New creates a machine in the Welcome state with the default profile.
// Call Load before anything is persisted. A nil snapshot store runs the
// session in memory only.
func New(gen levelgen.Generator, eval coaching.Evaluator, snapshots store.SnapshotStore, opts ...Option) *Machine {
	m := &Machine{
		gen:       gen,
		eval:      eval,
		store:     snapshots,
		logger:    zap.NewNop(),
		now:       time.Now,
		sessionID: uuid.New().String(),
		state:     StateWelcome,
		profile:   profile.Default(),
		degraded:  snapshots == nil,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("session_id", m.sessionID))
	return m
}

// SessionID returns the id attached to every collaborator request.
func (m *Machine) SessionID() string {
	return m.sessionID
}

// Load reads the stored snapshot once and settles the in-memory session
// from it. Nothing is saved until Load has run. Storage failures switch
// the machine to memory-only mode with defaults; they are not returned.
func (m *Machine) Load(ctx context.Context) error {
	m.io.Lock()
	defer m.io.Unlock()

	m.mu.Lock()
	if m.loaded || m.store == nil {
		m.loaded = true
		m.mu.Unlock()
		return nil
	}
	epoch := m.epoch
	m.mu.Unlock()

	snap, err := m.store.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch {
		m.logger.Info("dropping snapshot loaded before reset")
		return nil
	}
	m.loaded = true
	if err != nil {
		m.degrade("load", err)
		return nil
	}
	if snap == nil {
		m.logger.Info("no saved session, starting fresh")
		return nil
	}

	m.profile = snap.Profile
	m.history = snap.History
	if next := history.NextLevel(m.history); snap.LevelNumber != next {
		m.logger.Warn("stored level number disagrees with history, using history",
			zap.Int("stored", snap.LevelNumber),
			zap.Int("derived", next),
		)
	}
	m.logger.Info("session restored",
		zap.Int("completed_levels", len(m.history)),
		zap.Int("cii", m.profile.CII),
	)
	return nil
}

// StartLevel requests the next level from the generator and makes it
// active. The level number always comes from the history. Allowed from
// Welcome and History. On failure the state is unchanged and a
// *ContentGenerationError is returned.
func (m *Machine) StartLevel(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateWelcome && m.state != StateHistory {
		from := m.state
		m.mu.Unlock()
		return invalid("start level", from)
	}
	if m.generating {
		m.mu.Unlock()
		return ErrBusy
	}
	m.generating = true
	m.err = nil
	epoch := m.epoch
	levelNumber := history.NextLevel(m.history)
	p := m.profile
	m.mu.Unlock()

	m.logger.Info("generating level", zap.Int("level", levelNumber))
	var (
		lvl *assessment.Level
		err error
	)
	if m.gen == nil {
		err = ErrNoCollaborator
	} else {
		lvl, err = m.gen.Generate(m.collabContext(ctx), levelNumber, p)
	}
	if err == nil && lvl == nil {
		err = errors.New("generator returned no level")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch {
		m.logger.Info("dropping level generated before reset", zap.Int("level", levelNumber))
		return ErrDiscarded
	}
	m.generating = false

	if err != nil {
		m.logger.Warn("level generation failed", zap.Int("level", levelNumber), zap.Error(err))
		m.err = &ContentGenerationError{LevelNumber: levelNumber, Err: err}
		return m.err
	}

	m.level = lvl.Clone()
	m.level.ID = levelNumber
	m.responses = nil
	m.coaching = nil
	m.state = StateLevelActive
	return nil
}

// RecordResponse stores the answer to a question of the active level,
// replacing any earlier answer to the same question.
func (m *Machine) RecordResponse(questionID, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = assessment.Upsert(m.responses, questionID, answer)
}

// SubmitAnswers sends the active level's answers for evaluation. Every
// question must have a non-blank answer; otherwise a *ValidationError is
// returned and the evaluator is not called. On success the profile patch
// is applied, a history entry is appended, the snapshot is saved and the
// machine moves to Coaching. On failure it stays in LevelActive and an
// *EvaluationError is returned.
func (m *Machine) SubmitAnswers(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateLevelActive || m.level == nil {
		from := m.state
		m.mu.Unlock()
		return invalid("submit answers", from)
	}
	if m.evaluating {
		m.mu.Unlock()
		return ErrBusy
	}
	if missing := assessment.Missing(m.level, m.responses); len(missing) > 0 {
		verr := &ValidationError{Missing: missing, Total: len(m.level.Questions)}
		m.err = verr
		m.mu.Unlock()
		return verr
	}
	m.evaluating = true
	m.err = nil
	epoch := m.epoch
	lvl := m.level.Clone()
	responses := assessment.Ordered(lvl, m.responses)
	p := m.profile
	m.mu.Unlock()

	m.logger.Info("evaluating level", zap.Int("level", lvl.ID), zap.Int("responses", len(responses)))
	var (
		fb  *assessment.Feedback
		err error
	)
	if m.eval == nil {
		err = ErrNoCollaborator
	} else {
		fb, err = m.eval.Evaluate(m.collabContext(ctx), lvl.ID, responses, p)
	}
	if err == nil && fb == nil {
		err = errors.New("evaluator returned no feedback")
	}

	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		m.logger.Info("dropping evaluation finished after reset", zap.Int("level", lvl.ID))
		return ErrDiscarded
	}
	m.evaluating = false

	if err != nil {
		m.logger.Warn("evaluation failed", zap.Int("level", lvl.ID), zap.Error(err))
		eerr := &EvaluationError{LevelNumber: lvl.ID, Err: err}
		m.err = eerr
		m.mu.Unlock()
		return eerr
	}

	m.profile = profile.ApplyUpdate(m.profile, fb.UpdatedProfile)
	entry := history.NewEntry(lvl.ID, lvl.Title, *fb, m.profile.CII, m.now())
	m.history = history.Append(m.history, entry)
	m.coaching = fb.Clone()
	m.state = StateCoaching

	m.logger.Info("level completed",
		zap.Int("level", lvl.ID),
		zap.Int("cii", m.profile.CII),
		zap.Bool("profile_updated", fb.UpdatedProfile != nil),
	)
	m.mu.Unlock()

	m.persist(ctx, epoch)
	return nil
}

// ProceedToNext leaves Coaching for Welcome. The next level number is
// derived from the history.
func (m *Machine) ProceedToNext() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateCoaching {
		return invalid("proceed", m.state)
	}
	m.level = nil
	m.responses = nil
	m.coaching = nil
	m.err = nil
	m.state = StateWelcome
	return nil
}

// Reset clears stored progress and returns to a fresh Welcome state.
// Allowed from any state; asking the user to confirm is the caller's
// job. Collaborator calls still in flight have their results dropped.
// The stored snapshot is cleared even in memory-only mode, so a reset
// survives a restart once storage works again.
func (m *Machine) Reset(ctx context.Context) error {
	m.mu.Lock()
	m.epoch++
	m.generating = false
	m.evaluating = false
	m.profile = profile.Default()
	m.history = nil
	m.level = nil
	m.responses = nil
	m.coaching = nil
	m.err = nil
	m.state = StateWelcome
	m.returnTo = StateWelcome
	m.loaded = true
	m.mu.Unlock()
	m.logger.Info("session reset")

	if m.store == nil {
		return nil
	}
	m.io.Lock()
	defer m.io.Unlock()
	if err := m.store.Clear(ctx); err != nil {
		m.mu.Lock()
		m.degrade("clear", err)
		m.mu.Unlock()
	}
	return nil
}

// ShowDashboard opens the profile view from Welcome or Coaching.
func (m *Machine) ShowDashboard() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateWelcome && m.state != StateCoaching {
		return invalid("show dashboard", m.state)
	}
	m.returnTo = m.state
	m.state = StateDashboard
	return nil
}

// ShowHistory opens the history view from Welcome.
func (m *Machine) ShowHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateWelcome {
		return invalid("show history", m.state)
	}
	m.returnTo = m.state
	m.state = StateHistory
	return nil
}

// Back leaves Dashboard or History for the state it was opened from.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDashboard && m.state != StateHistory {
		return invalid("back", m.state)
	}
	m.state = m.returnTo
	return nil
}

// View returns a deep copy of the session for rendering.
func (m *Machine) View() ViewModel {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := history.NextLevel(m.history)
	v := ViewModel{
		State:               m.state,
		LevelNumber:         next,
		Tier:                profile.Tier(next),
		TierName:            assessment.LevelTierName(next),
		Profile:             m.profile,
		History:             history.Clone(m.history),
		Coaching:            m.coaching.Clone(),
		Responses:           append([]assessment.UserResponse(nil), m.responses...),
		Loading:             m.generating || m.evaluating,
		Generating:          m.generating,
		Evaluating:          m.evaluating,
		Err:                 m.err,
		PersistenceDegraded: m.degraded,
		Loaded:              m.loaded,
		SessionID:           m.sessionID,
	}
	if m.state == StateLevelActive || m.state == StateCoaching {
		v.Level = m.level.Clone()
	}
	if m.state == StateLevelActive && m.level != nil {
		v.LevelNumber = m.level.ID
		v.Tier = profile.Tier(m.level.ID)
		v.TierName = assessment.LevelTierName(m.level.ID)
	}
	return v
}

func (m *Machine) collabContext(ctx context.Context) context.Context {
	return llm.WithSession(ctx, m.sessionID)
}

// persist saves the current snapshot. Nothing is written once a reset
// has moved past epoch. Callers must not hold m.mu.
func (m *Machine) persist(ctx context.Context, epoch uint64) {
	m.io.Lock()
	defer m.io.Unlock()

	m.mu.Lock()
	if !m.loaded {
		m.mu.Unlock()
		m.logger.Debug("skipping save before load")
		return
	}
	if m.degraded || epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	snap := store.NewSnapshot(m.profile, history.Clone(m.history))
	m.mu.Unlock()

	if err := m.store.Save(ctx, snap); err != nil {
		m.mu.Lock()
		m.degrade("save", err)
		m.mu.Unlock()
	}
}

// degrade switches to memory-only mode. Callers hold m.mu.
func (m *Machine) degrade(op string, err error) {
	m.degraded = true
	m.logger.Warn("persistence unavailable, continuing in memory",
		zap.String("op", op),
		zap.Bool("storage_error", errors.Is(err, store.ErrUnavailable)),
		zap.Error(err),
	)
}
