package ledger

import (
	"errors"
	"testing"
)

func TestMemoryStore_CreateNamed(t *testing.T) {
	s := NewMemoryStore()

	l, err := s.CreateNamed("scores")
	if err != nil {
		t.Fatalf("CreateNamed failed: %v", err)
	}
	if l.Name() != "scores" {
		t.Errorf("expected name %q, got %q", "scores", l.Name())
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 ledger, got %d", s.Count())
	}
}

func TestMemoryStore_CreateNamed_Duplicate(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.CreateNamed("scores"); err != nil {
		t.Fatalf("CreateNamed failed: %v", err)
	}
	_, err := s.CreateNamed("scores")
	if !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
}

func TestMemoryStore_GetNamed(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.GetNamed("missing"); ok {
		t.Error("expected GetNamed to miss")
	}

	created, _ := s.CreateNamed("scores")
	got, ok := s.GetNamed("scores")
	if !ok {
		t.Fatal("expected GetNamed to hit")
	}
	if got != created {
		t.Error("expected GetNamed to return the created ledger")
	}
}

func TestMemoryStore_DeleteNamed(t *testing.T) {
	s := NewMemoryStore()

	if err := s.DeleteNamed("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	s.CreateNamed("scores")
	if err := s.DeleteNamed("scores"); err != nil {
		t.Fatalf("DeleteNamed failed: %v", err)
	}
	if _, ok := s.GetNamed("scores"); ok {
		t.Error("expected ledger to be gone after delete")
	}
}

func TestMemoryLedger_SetEntry(t *testing.T) {
	s := NewMemoryStore()
	l, _ := s.CreateNamed("scores")

	if err := l.SetEntry("alpha", 0); err != nil {
		t.Fatalf("SetEntry failed: %v", err)
	}
	if err := l.SetEntry("beta", 1); err != nil {
		t.Fatalf("SetEntry failed: %v", err)
	}

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestMemoryLedger_SetEntry_UpdatesScore(t *testing.T) {
	s := NewMemoryStore()
	l, _ := s.CreateNamed("scores")

	l.SetEntry("alpha", 0)
	l.SetEntry("alpha", 7)

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Score != 7 {
		t.Errorf("expected score 7, got %d", entries[0].Score)
	}
}

func TestMemoryLedger_RemoveEntry(t *testing.T) {
	s := NewMemoryStore()
	l, _ := s.CreateNamed("scores")

	if err := l.RemoveEntry("alpha"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}

	l.SetEntry("alpha", 0)
	l.SetEntry("beta", 1)
	if err := l.RemoveEntry("alpha"); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}

	entries := l.Entries()
	if len(entries) != 1 || entries[0].Label != "beta" {
		t.Errorf("expected only beta to remain, got %v", entries)
	}
}

func TestMemoryLedger_EntriesSnapshot(t *testing.T) {
	s := NewMemoryStore()
	l, _ := s.CreateNamed("scores")
	l.SetEntry("alpha", 0)

	snap := l.Entries()
	snap[0].Label = "mutated"

	fresh := l.Entries()
	if fresh[0].Label != "alpha" {
		t.Error("Entries must return a copy, not the backing slice")
	}
}
