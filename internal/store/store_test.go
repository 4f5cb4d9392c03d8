package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/history"
	"github.com/abhisek/iq360/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSnapshot() *SessionSnapshot {
	p := profile.Default()
	p.CII = 112
	fb := assessment.Feedback{
		ThinkingInsight:      "You weighed tradeoffs",
		LevelProgressSummary: "Solid start",
		UpdatedProfile:       &p,
	}
	h := []history.Entry{
		history.NewEntry(1, "Foundations", fb, 112, time.UnixMilli(1_700_000_000_000)),
	}
	return NewSnapshot(p, h)
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("iq360.db")
	if !strings.HasPrefix(got, "iq360.db?_pragma=") || strings.Count(got, "_pragma=") != len(pragmas) {
		t.Errorf("withPragmas(path) = %q", got)
	}
	got = withPragmas("file:x?mode=memory")
	if !strings.HasPrefix(got, "file:x?mode=memory&_pragma=") {
		t.Errorf("withPragmas(uri) = %q", got)
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iq360.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"session_snapshots", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestSQLiteSnapshotLoadEmpty(t *testing.T) {
	s := openTestStore(t)
	snap, err := s.SnapshotStore("").Load(context.Background())
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exists")
	}
}

func TestSQLiteSnapshotSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotStore("")
	ctx := context.Background()

	want := sampleSnapshot()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if got.Profile.CII != 112 {
		t.Errorf("profile.cii = %d, want 112", got.Profile.CII)
	}
	if got.LevelNumber != 2 {
		t.Errorf("levelNumber = %d, want 2", got.LevelNumber)
	}
	if len(got.History) != 1 || got.History[0].Title != "Foundations" {
		t.Errorf("history = %+v", got.History)
	}
}

func TestSQLiteSnapshotOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotStore("")
	ctx := context.Background()

	first := sampleSnapshot()
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	second := NewSnapshot(profile.Default(), nil)
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	var rows int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM session_snapshots").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Profile.CII != profile.DefaultCII || len(got.History) != 0 {
		t.Errorf("expected second snapshot, got %+v", got)
	}
}

func TestSQLiteSnapshotClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotStore("")
	ctx := context.Background()

	if err := repo.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after clear, got %+v", got)
	}

	// Clearing an absent snapshot is not an error.
	if err := repo.Clear(ctx); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestSQLiteSnapshotCorruptTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(
		"INSERT INTO session_snapshots (snapshot_key, data, updated_at_ms) VALUES (?, ?, ?)",
		DefaultSnapshotKey, "{not json", 0,
	)
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	got, err := s.SnapshotStore("").Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for corrupt snapshot, got %+v", got)
	}
}

func TestSQLiteSnapshotKeysAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SnapshotStore("a").Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.SnapshotStore("b").Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Error("snapshot leaked across keys")
	}
}

func TestSQLiteSnapshotUnavailableAfterClose(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotStore("")
	s.Close()

	_, err := repo.Load(context.Background())
	if err == nil {
		t.Fatal("expected error from closed store")
	}
	if !isUnavailable(err) {
		t.Errorf("error %v does not wrap ErrUnavailable", err)
	}
}

func TestEventRepoAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{SessionID: "s1", Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "level-gen", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true},
		{SessionID: "s1", Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "evaluation", InputTokens: 300, OutputTokens: 200, LatencyMs: 1100, Success: true, RequestBody: "{}", ResponseBody: "{}"},
		{SessionID: "s2", Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "level-gen", LatencyMs: 50, Success: false, ErrorMessage: "rate limited"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ID < all[1].ID {
		t.Error("expected newest first")
	}
	if all[0].ErrorMessage != "rate limited" || all[0].Success {
		t.Errorf("newest = %+v", all[0])
	}

	gen, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "level-gen"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(gen) != 2 {
		t.Errorf("level-gen events = %d, want 2", len(gen))
	}

	s1, err := repo.QueryLLMEvents(ctx, QueryOpts{SessionID: "s1", Limit: 1})
	if err != nil {
		t.Fatalf("query session: %v", err)
	}
	if len(s1) != 1 || s1[0].Purpose != "evaluation" {
		t.Errorf("session s1 limited = %+v", s1)
	}

	one, err := repo.GetLLMEvent(ctx, s1[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.RequestBody != "{}" {
		t.Errorf("get = %+v", one)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestEventRepoUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "m1", Purpose: "evaluation", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Model: "m1", Purpose: "evaluation", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Model: "m2", Purpose: "level-gen", InputTokens: 5, OutputTokens: 6, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	eval := byPurpose[0]
	if eval.Purpose != "evaluation" || eval.Calls != 2 || eval.InputTokens != 40 || eval.OutputTokens != 60 || eval.AvgLatencyMs != 200 {
		t.Errorf("evaluation usage = %+v", eval)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].Calls != 2 {
		t.Errorf("usage by model = %+v", byModel)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "iq360.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open in created dir: %v", err)
	}
	s.Close()
}

func TestDefaultDBPathHonorsEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom", "x.db")
	t.Setenv("IQ360_DB", want)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathUsesXDG(t *testing.T) {
	t.Setenv("IQ360_DB", "")
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dataHome, "iq360", "iq360.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
