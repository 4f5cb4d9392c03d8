package history

import (
	"testing"
	"time"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/profile"
)

func entry(level, cii int) Entry {
	return Entry{LevelNumber: level, CII: cii, Title: "L"}
}

func TestNextLevel_Empty(t *testing.T) {
	if got := NextLevel(nil); got != 1 {
		t.Errorf("NextLevel(nil) = %d, want 1", got)
	}
}

func TestAppend_SequenceOfLevels(t *testing.T) {
	var h []Entry
	for n := 1; n <= 5; n++ {
		h = Append(h, entry(NextLevel(h), 100+n))
		if len(h) != n {
			t.Fatalf("after %d appends len = %d", n, len(h))
		}
		if got := NextLevel(h); got != n+1 {
			t.Fatalf("after %d appends NextLevel = %d, want %d", n, got, n+1)
		}
	}
}

func TestAppend_DoesNotMutateInput(t *testing.T) {
	h := make([]Entry, 1, 4)
	h[0] = entry(1, 100)

	a := Append(h, entry(2, 101))
	b := Append(h, entry(2, 999))

	if a[1].CII != 101 {
		t.Errorf("first append was clobbered by second: CII = %d", a[1].CII)
	}
	if len(h) != 1 {
		t.Errorf("input length changed to %d", len(h))
	}
	if b[1].CII != 999 {
		t.Errorf("second append CII = %d", b[1].CII)
	}
}

func TestAppend_AllowsRepeatedLevelNumbers(t *testing.T) {
	h := Append(nil, entry(1, 100))
	h = Append(h, entry(1, 104))
	if len(h) != 2 {
		t.Fatalf("len = %d, want 2", len(h))
	}
	if NextLevel(h) != 2 {
		t.Errorf("NextLevel = %d, want 2", NextLevel(h))
	}
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := profile.Default()
	fb := assessment.Feedback{LevelProgressSummary: "ok", UpdatedProfile: &p}

	e := NewEntry(3, "Tradeoffs", fb, 117, now)
	if e.Timestamp != now.UnixMilli() {
		t.Errorf("Timestamp = %d, want %d", e.Timestamp, now.UnixMilli())
	}
	if !e.Time().Equal(now) {
		t.Errorf("Time() = %v, want %v", e.Time(), now)
	}
	if e.LevelNumber != 3 || e.CII != 117 || e.Title != "Tradeoffs" {
		t.Errorf("unexpected entry %+v", e)
	}

	p.CII = 1
	if e.Feedback.UpdatedProfile.CII != 100 {
		t.Error("entry must not alias the caller's profile patch")
	}
}

func TestNewestFirstAndTrend(t *testing.T) {
	h := []Entry{entry(1, 100), entry(2, 108), entry(3, 112)}

	rev := NewestFirst(h)
	if rev[0].LevelNumber != 3 || rev[2].LevelNumber != 1 {
		t.Errorf("NewestFirst = %+v", rev)
	}
	if h[0].LevelNumber != 1 {
		t.Error("NewestFirst mutated its input")
	}

	trend := CIITrend(h)
	want := []int{100, 108, 112}
	for i := range want {
		if trend[i] != want[i] {
			t.Errorf("trend[%d] = %d, want %d", i, trend[i], want[i])
		}
	}
}

func TestClone(t *testing.T) {
	p := profile.Default()
	h := []Entry{{LevelNumber: 1, Feedback: assessment.Feedback{UpdatedProfile: &p}}}
	c := Clone(h)
	c[0].Feedback.UpdatedProfile.CII = 5
	if h[0].Feedback.UpdatedProfile.CII != 100 {
		t.Error("Clone shares profile patch pointer")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
