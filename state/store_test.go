package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tweet-relay-bot/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(filepath.Join(dir, "seen_tweets.json"), filepath.Join(dir, "poll_state.json"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	seen := models.SeenSet{"1": true, "2": true}
	last := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	if err := s.Save(seen, &last); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	gotSeen, gotLast := s.Load()
	if len(gotSeen) != 2 || !gotSeen["1"] || !gotSeen["2"] {
		t.Errorf("unexpected seen set: %v", gotSeen)
	}
	if gotLast == nil || !gotLast.Equal(last) {
		t.Errorf("unexpected last fetch time: %v", gotLast)
	}
}

func TestLoadMissingFilesStartsEmpty(t *testing.T) {
	s := newTestStore(t)

	seen, last := s.Load()
	if len(seen) != 0 {
		t.Errorf("expected empty seen set, got %v", seen)
	}
	if last != nil {
		t.Errorf("expected nil last fetch time, got %v", last)
	}
}

func TestLoadCorruptFilesStartsEmpty(t *testing.T) {
	s := newTestStore(t)
	os.MkdirAll(filepath.Dir(s.seenPath), 0755)
	os.WriteFile(s.seenPath, []byte("{broken"), 0644)
	os.WriteFile(s.cyclePath, []byte("also broken"), 0644)

	seen, last := s.Load()
	if len(seen) != 0 || last != nil {
		t.Errorf("expected empty state, got %v / %v", seen, last)
	}
}

func TestResetDeletesBothFilesAndToleratesAbsence(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	if err := s.Save(models.SeenSet{"1": true}, &now); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	for _, path := range []string{s.seenPath, s.cyclePath} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected %s to be gone", path)
		}
	}

	// A second reset with nothing on disk is a no-op.
	if err := s.Reset(); err != nil {
		t.Fatalf("reset on absent files errored: %v", err)
	}
}
