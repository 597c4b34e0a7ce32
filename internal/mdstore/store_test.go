package mdstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadSessionOrdersBySequence(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := store.SaveFragment(ctx, "repl", "frag-1", "let x = 1", now); err != nil {
		t.Fatalf("SaveFragment: %v", err)
	}
	if err := store.SaveFragment(ctx, "repl", "frag-2", "let y = x + 1", now.Add(time.Second)); err != nil {
		t.Fatalf("SaveFragment: %v", err)
	}

	fragments, err := store.LoadSession(ctx, "repl")
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if len(fragments) != 2 {
		t.Fatalf("len(fragments) = %d, want 2", len(fragments))
	}
	if fragments[0].Source != "let x = 1" || fragments[1].Source != "let y = x + 1" {
		t.Errorf("unexpected fragment order: %+v", fragments)
	}
	if fragments[0].Sequence != 0 || fragments[1].Sequence != 1 {
		t.Errorf("unexpected sequence numbers: %d, %d", fragments[0].Sequence, fragments[1].Sequence)
	}
}

func TestLoadSessionEmptyForUnknownSession(t *testing.T) {
	store := openTestStore(t)
	fragments, err := store.LoadSession(context.Background(), "missing")
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if len(fragments) != 0 {
		t.Errorf("len(fragments) = %d, want 0", len(fragments))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	if err := store.SaveFragment(ctx, "a", "frag-a", "let x = 1", now); err != nil {
		t.Fatalf("SaveFragment: %v", err)
	}
	if err := store.SaveFragment(ctx, "b", "frag-b", "let y = 2", now); err != nil {
		t.Fatalf("SaveFragment: %v", err)
	}

	fromA, err := store.LoadSession(ctx, "a")
	if err != nil {
		t.Fatalf("LoadSession(a): %v", err)
	}
	if len(fromA) != 1 || fromA[0].Source != "let x = 1" {
		t.Errorf("session a = %+v, want just let x = 1", fromA)
	}
}
