package mandalang

import (
	"path/filepath"
	"testing"

	"github.com/ortfero/mandalang/internal/mdir"
)

func TestNewSeedsPreludeBuiltins(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, err := engine.EvaluateExpression("max(3, 9)")
	if err != nil {
		t.Fatalf("EvaluateExpression: %v", err)
	}
	if v.Int != 9 {
		t.Errorf("max(3, 9) = %d, want 9", v.Int)
	}
}

func TestEngineDefinitionsPersistAcrossCalls(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := engine.EvaluateDefinitionOrExpression("let x = 10"); err != nil {
		t.Fatalf("define x: %v", err)
	}
	v, err := engine.EvaluateExpression("x * 4")
	if err != nil {
		t.Fatalf("EvaluateExpression: %v", err)
	}
	if v.Int != 40 {
		t.Errorf("x * 4 = %d, want 40", v.Int)
	}
}

func TestEngineRedefine(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	engine.Redefine("answer", mdir.IntValue(42))
	v, err := engine.EvaluateExpression("answer")
	if err != nil {
		t.Fatalf("EvaluateExpression: %v", err)
	}
	if v.Int != 42 {
		t.Errorf("answer = %d, want 42", v.Int)
	}
}

func TestSaveAndLoadSessionRoundTrips(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")

	first, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := first.EvaluateDefinitionOrExpression("let x = 21"); err != nil {
		t.Fatalf("define x: %v", err)
	}
	if _, err := first.EvaluateDefinitionOrExpression("let y = x * 2"); err != nil {
		t.Fatalf("define y: %v", err)
	}
	if err := first.SaveSession(dbPath, "session-a"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	second, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n, err := second.LoadSession(dbPath, "session-a")
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if n != 2 {
		t.Fatalf("LoadSession replayed %d fragments, want 2", n)
	}

	v, err := second.EvaluateExpression("y")
	if err != nil {
		t.Fatalf("EvaluateExpression: %v", err)
	}
	if v.Int != 42 {
		t.Errorf("y = %d, want 42", v.Int)
	}
}

func TestSaveSessionIsIdempotentForUnchangedFragments(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")

	engine, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := engine.EvaluateDefinitionOrExpression("let x = 1"); err != nil {
		t.Fatalf("define x: %v", err)
	}
	if err := engine.SaveSession(dbPath, "s"); err != nil {
		t.Fatalf("first SaveSession: %v", err)
	}
	if err := engine.SaveSession(dbPath, "s"); err != nil {
		t.Fatalf("second SaveSession: %v", err)
	}

	replay, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n, err := replay.LoadSession(dbPath, "s")
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if n != 1 {
		t.Errorf("LoadSession replayed %d fragments, want 1 (no duplicate rows)", n)
	}
}
