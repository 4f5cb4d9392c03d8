package history

import (
	"time"

	"github.com/abhisek/iq360/internal/assessment"
)

// Entry records one completed level. Entries are never mutated once
// appended; only a full session reset removes them.
type Entry struct {
	LevelNumber int                 `json:"levelNumber"`
	Timestamp   int64               `json:"timestamp"` // epoch milliseconds
	CII         int                 `json:"cii"`
	Feedback    assessment.Feedback `json:"feedback"`
	Title       string              `json:"title"`
}

// NewEntry builds an entry stamped with now.
func NewEntry(levelNumber int, title string, feedback assessment.Feedback, cii int, now time.Time) Entry {
	fb := feedback.Clone()
	return Entry{
		LevelNumber: levelNumber,
		Timestamp:   now.UnixMilli(),
		CII:         cii,
		Feedback:    *fb,
		Title:       title,
	}
}

// Time returns the entry's timestamp as a time.Time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Append returns a new log with e appended. The input slice is never
// modified and entries are not deduplicated by level number.
func Append(h []Entry, e Entry) []Entry {
	out := make([]Entry, len(h), len(h)+1)
	copy(out, h)
	return append(out, e)
}

// NextLevel returns the level that follows the last entry, or 1 for an
// empty log. It is the only source of the next level number.
func NextLevel(h []Entry) int {
	if len(h) == 0 {
		return 1
	}
	return h[len(h)-1].LevelNumber + 1
}

// Clone returns a deep copy of the log.
func Clone(h []Entry) []Entry {
	if h == nil {
		return nil
	}
	out := make([]Entry, len(h))
	for i, e := range h {
		out[i] = e
		out[i].Feedback = *e.Feedback.Clone()
	}
	return out
}

// NewestFirst returns a reversed copy for display.
func NewestFirst(h []Entry) []Entry {
	out := make([]Entry, len(h))
	for i, e := range h {
		out[len(h)-1-i] = e
	}
	return out
}

// CIITrend returns the CII recorded by each entry in chronological order.
func CIITrend(h []Entry) []int {
	out := make([]int, len(h))
	for i, e := range h {
		out[i] = e.CII
	}
	return out
}
