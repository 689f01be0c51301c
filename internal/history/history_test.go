package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kryonis/lazysusan/pkg/models"
)

// setupTestStore creates a temporary history store.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func testResult(id string, ts time.Time) *models.Result {
	return &models.Result{
		ID:        id,
		Question:  "What is the strategic outlook?",
		Lang:      models.LangEnglish,
		Verbosity: models.VerbosityStandard,
		Timestamp: ts,
		Agents: []models.AgentResult{
			{Agent: "Architect", Role: "systems analyst", Model: "anthropic/claude-opus-4", Response: "scaffold"},
			{Agent: "Red Team", Role: "critic", Model: "openai/gpt-4o", Err: "rate limited"},
		},
		Synthesis: "combined view",
	}
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		t.Errorf("parent directories not created")
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestSaveAndGet(t *testing.T) {
	s := setupTestStore(t)

	want := testResult("sess-1", time.Now().UTC().Truncate(time.Second))
	if err := s.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Get("sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.Question != want.Question {
		t.Errorf("Question = %q, want %q", got.Question, want.Question)
	}
	if got.Lang != want.Lang || got.Verbosity != want.Verbosity {
		t.Errorf("Lang/Verbosity = %s/%s, want %s/%s", got.Lang, got.Verbosity, want.Lang, want.Verbosity)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, want.Timestamp)
	}
	if len(got.Agents) != 2 {
		t.Fatalf("Agents count = %d, want 2", len(got.Agents))
	}
	if got.Agents[1].Err != "rate limited" {
		t.Errorf("failed agent result not preserved: %+v", got.Agents[1])
	}
	if got.Synthesis != "combined view" {
		t.Errorf("Synthesis = %q", got.Synthesis)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSave_Replaces(t *testing.T) {
	s := setupTestStore(t)

	res := testResult("sess-1", time.Now().UTC())
	if err := s.Save(res); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	res.Synthesis = "revised"
	if err := s.Save(res); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := s.Get("sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Synthesis != "revised" {
		t.Errorf("Synthesis = %q, want %q", got.Synthesis, "revised")
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	s := setupTestStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		res := testResult(fmt.Sprintf("sess-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := s.Save(res); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := s.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent returned %d sessions, want 3", len(got))
	}
	for i, want := range []string{"sess-4", "sess-3", "sess-2"} {
		if got[i].ID != want {
			t.Errorf("Recent[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestRecent_DefaultLimit(t *testing.T) {
	s := setupTestStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < DefaultRecentLimit+5; i++ {
		res := testResult(fmt.Sprintf("sess-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := s.Save(res); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != DefaultRecentLimit {
		t.Errorf("Recent returned %d sessions, want %d", len(got), DefaultRecentLimit)
	}
}

func TestPurge(t *testing.T) {
	s := setupTestStore(t)

	old := testResult("old", time.Now().UTC().Add(-48*time.Hour))
	fresh := testResult("fresh", time.Now().UTC())
	if err := s.Save(old); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(fresh); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	n, err := s.Purge(24 * time.Hour)
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Purge removed %d sessions, want 1", n)
	}

	if _, err := s.Get("old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old session should be gone, got %v", err)
	}
	if _, err := s.Get("fresh"); err != nil {
		t.Errorf("fresh session should remain: %v", err)
	}
}
