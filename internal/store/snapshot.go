package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/history"
	"github.com/abhisek/iq360/internal/profile"
)

// DefaultSnapshotKey is the fixed key the session snapshot is stored under.
const DefaultSnapshotKey = "iq360_state_v2"

var (
	// ErrCorrupt reports a stored snapshot that could not be decoded.
	// Load recovers from it by reporting the snapshot as absent.
	ErrCorrupt = errors.New("snapshot corrupt")

	// ErrUnavailable reports that the backing storage could not be reached.
	ErrUnavailable = errors.New("snapshot storage unavailable")
)

// SessionSnapshot is the persisted session state.
type SessionSnapshot struct {
	Profile     profile.Profile `json:"profile"`
	LevelNumber int             `json:"levelNumber"`
	History     []history.Entry `json:"history"`
}

// NewSnapshot builds a snapshot whose level number is derived from h.
func NewSnapshot(p profile.Profile, h []history.Entry) *SessionSnapshot {
	if h == nil {
		h = []history.Entry{}
	}
	return &SessionSnapshot{
		Profile:     p,
		LevelNumber: history.NextLevel(h),
		History:     h,
	}
}

// SnapshotStore loads and saves the single session snapshot.
type SnapshotStore interface {
	// Load returns the stored snapshot, or nil when none exists or the
	// stored blob is corrupt. Errors wrap ErrUnavailable.
	Load(ctx context.Context) (*SessionSnapshot, error)

	// Save overwrites the stored snapshot.
	Save(ctx context.Context, snap *SessionSnapshot) error

	// Clear removes the stored snapshot entirely.
	Clear(ctx context.Context) error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// EncodeSnapshot serializes snap to the persisted JSON layout.
func EncodeSnapshot(snap *SessionSnapshot) ([]byte, error) {
	out := *snap
	if out.History == nil {
		out.History = []history.Entry{}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// rawSnapshot mirrors SessionSnapshot with every field optional so that
// records written by older schemas decode field by field.
type rawSnapshot struct {
	Profile     *rawProfile `json:"profile"`
	LevelNumber *float64    `json:"levelNumber"`
	History     []rawEntry  `json:"history"`
}

type rawProfile struct {
	CII           *float64   `json:"cii"`
	Scores        *rawScores `json:"scores"`
	ThinkingStyle *string    `json:"thinkingStyle"`
}

type rawScores struct {
	LogicalReasoning    *float64 `json:"logicalReasoning"`
	ExecutiveFunction   *float64 `json:"executiveFunction"`
	InnovationIndex     *float64 `json:"innovationIndex"`
	EmotionalRegulation *float64 `json:"emotionalRegulation"`
	StrategicThinking   *float64 `json:"strategicThinking"`
	DecisionConsistency *float64 `json:"decisionConsistency"`
}

type rawEntry struct {
	LevelNumber float64     `json:"levelNumber"`
	Timestamp   float64     `json:"timestamp"`
	CII         float64     `json:"cii"`
	Feedback    rawFeedback `json:"feedback"`
	Title       string      `json:"title"`
}

type rawFeedback struct {
	ThinkingInsight      string      `json:"thinkingInsight"`
	LifeApplication      string      `json:"lifeApplication"`
	BusinessApplication  string      `json:"businessApplication"`
	CoachRecommendation  string      `json:"coachRecommendation"`
	LevelProgressSummary string      `json:"levelProgressSummary"`
	UpdatedProfile       *rawProfile `json:"updatedProfile"`
}

// DecodeSnapshot parses a stored blob. Missing fields take their
// defaults individually: the default profile (per sub-field), level 1,
// and an empty history. Numbers too large for an int also fall back to
// the field default. Unparseable input yields ErrCorrupt.
func DecodeSnapshot(data []byte) (*SessionSnapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	snap := &SessionSnapshot{
		Profile:     raw.Profile.toProfile(),
		LevelNumber: 1,
		History:     make([]history.Entry, 0, len(raw.History)),
	}
	if raw.LevelNumber != nil && *raw.LevelNumber >= 1 {
		snap.LevelNumber = roundInt(*raw.LevelNumber, 1)
	}
	for i, e := range raw.History {
		snap.History = append(snap.History, e.toEntry(i+1))
	}
	return snap, nil
}

func (r *rawProfile) toProfile() profile.Profile {
	p := profile.Default()
	if r == nil {
		return p
	}
	if r.CII != nil {
		p.CII = roundInt(*r.CII, profile.DefaultCII)
	}
	if r.ThinkingStyle != nil {
		p.ThinkingStyle = *r.ThinkingStyle
	}
	if s := r.Scores; s != nil {
		setIf(&p.Scores.LogicalReasoning, s.LogicalReasoning)
		setIf(&p.Scores.ExecutiveFunction, s.ExecutiveFunction)
		setIf(&p.Scores.InnovationIndex, s.InnovationIndex)
		setIf(&p.Scores.EmotionalRegulation, s.EmotionalRegulation)
		setIf(&p.Scores.StrategicThinking, s.StrategicThinking)
		setIf(&p.Scores.DecisionConsistency, s.DecisionConsistency)
	}
	return p
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// roundInt rounds f to the nearest int, or returns def when the result
// would not fit.
func roundInt(f float64, def int) int {
	r := math.Round(f)
	if math.IsNaN(r) || r < math.MinInt || r >= math.MaxInt {
		return def
	}
	return int(r)
}

// toEntry converts the entry stored at 1-based position pos, which
// stands in for a level number that cannot be represented.
func (r rawEntry) toEntry(pos int) history.Entry {
	fb := assessment.Feedback{
		ThinkingInsight:      r.Feedback.ThinkingInsight,
		LifeApplication:      r.Feedback.LifeApplication,
		BusinessApplication:  r.Feedback.BusinessApplication,
		CoachRecommendation:  r.Feedback.CoachRecommendation,
		LevelProgressSummary: r.Feedback.LevelProgressSummary,
	}
	if r.Feedback.UpdatedProfile != nil {
		p := r.Feedback.UpdatedProfile.toProfile()
		fb.UpdatedProfile = &p
	}
	return history.Entry{
		LevelNumber: roundInt(r.LevelNumber, pos),
		Timestamp:   int64(roundInt(r.Timestamp, 0)),
		CII:         roundInt(r.CII, profile.DefaultCII),
		Feedback:    fb,
		Title:       r.Title,
	}
}
