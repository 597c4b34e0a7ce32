package mdmodule

import (
	"testing"

	"github.com/ortfero/mandalang/internal/mderror"
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/internal/mdprelude"
)

func newModule(t *testing.T) *Module {
	t.Helper()
	m := New()
	if err := m.Import(mdprelude.Exported()); err != nil {
		t.Fatalf("Import: %v", err)
	}
	return m
}

func TestEvaluateExpressionDoesNotRetainFragment(t *testing.T) {
	m := newModule(t)
	v, err := m.EvaluateExpression("1 + 2")
	if err != nil {
		t.Fatalf("EvaluateExpression: %v", err)
	}
	if v.Int != 3 {
		t.Errorf("value = %d, want 3", v.Int)
	}
	if len(m.Fragments()) != 0 {
		t.Errorf("Fragments() = %d, want 0", len(m.Fragments()))
	}
}

func TestEvaluateDefinitionOrExpressionBareExpression(t *testing.T) {
	m := newModule(t)
	result, err := m.EvaluateDefinitionOrExpression("2 * 3")
	if err != nil {
		t.Fatalf("EvaluateDefinitionOrExpression: %v", err)
	}
	if result.IsSym {
		t.Errorf("expected a bare value result, got a symbol")
	}
	if result.Value.Int != 6 {
		t.Errorf("value = %d, want 6", result.Value.Int)
	}
}

func TestEvaluateDefinitionOrExpressionValueDefinition(t *testing.T) {
	m := newModule(t)
	result, err := m.EvaluateDefinitionOrExpression("let x = 40 + 2")
	if err != nil {
		t.Fatalf("EvaluateDefinitionOrExpression: %v", err)
	}
	if !result.IsSym {
		t.Fatalf("expected a symbol result for a let definition")
	}
	if result.Symbol.Name != "x" || result.Symbol.Value.Int != 42 {
		t.Errorf("got %s = %v, want x = 42", result.Symbol.Name, result.Symbol.Value)
	}
	if len(m.Fragments()) != 1 {
		t.Fatalf("Fragments() = %d, want 1", len(m.Fragments()))
	}
	if m.Fragments()[0].Source != "let x = 40 + 2" {
		t.Errorf("fragment source = %q", m.Fragments()[0].Source)
	}

	found := m.Globals().FindLocal("x")
	if found == nil || found.Value.Int != 42 {
		t.Errorf("expected x = 42 bound in globals")
	}
}

func TestEvaluateDefinitionOrExpressionRedefinesExistingName(t *testing.T) {
	m := newModule(t)
	if _, err := m.EvaluateDefinitionOrExpression("let x = 1"); err != nil {
		t.Fatalf("first definition: %v", err)
	}
	result, err := m.EvaluateDefinitionOrExpression("let x = 2")
	if err != nil {
		t.Fatalf("second definition: %v", err)
	}
	if result.Symbol.Value.Int != 2 {
		t.Errorf("x = %d, want 2 after redefinition", result.Symbol.Value.Int)
	}
	if len(m.Fragments()) != 2 {
		t.Errorf("Fragments() = %d, want 2", len(m.Fragments()))
	}
	// Most-recently-accepted fragment comes first.
	if m.Fragments()[0].Source != "let x = 2" {
		t.Errorf("Fragments()[0] = %q, want most recent first", m.Fragments()[0].Source)
	}
}

func TestEvaluateDefinitionOrExpressionTypeDefinition(t *testing.T) {
	m := newModule(t)
	result, err := m.EvaluateDefinitionOrExpression("type myint = integer")
	if err != nil {
		t.Fatalf("EvaluateDefinitionOrExpression: %v", err)
	}
	if !result.IsSym || result.Symbol.Tag != mdir.SymbolType {
		t.Fatalf("expected a type symbol result")
	}

	found := m.Globals().FindLocal("myint")
	if found == nil || found.Tag != mdir.SymbolType {
		t.Errorf("expected myint bound as a type in globals")
	}
}

func TestEvaluateDefinitionOrExpressionUnknownNameError(t *testing.T) {
	m := newModule(t)
	if _, err := m.EvaluateDefinitionOrExpression("missing + 1"); !mderror.Is(err, mderror.UnknownName) {
		t.Errorf("expected UnknownName error, got %v", err)
	}
}

func TestRedefineBindsDirectly(t *testing.T) {
	m := newModule(t)
	m.Redefine("answer", mdir.IntValue(42))
	found := m.Globals().FindLocal("answer")
	if found == nil || found.Value.Int != 42 {
		t.Errorf("expected answer = 42 bound in globals")
	}
}

func TestLaterDefinitionsCanReferenceEarlierOnes(t *testing.T) {
	m := newModule(t)
	if _, err := m.EvaluateDefinitionOrExpression("let x = 10"); err != nil {
		t.Fatalf("first definition: %v", err)
	}
	result, err := m.EvaluateDefinitionOrExpression("let y = x + 5")
	if err != nil {
		t.Fatalf("second definition: %v", err)
	}
	if result.Symbol.Value.Int != 15 {
		t.Errorf("y = %d, want 15", result.Symbol.Value.Int)
	}
}

// Comparisons don't chain: "1 < 2 < 3" parses "1 < 2" and leaves "< 3"
// unconsumed, which must be rejected rather than silently dropped.
func TestEvaluateExpressionRejectsChainedComparison(t *testing.T) {
	m := newModule(t)
	if _, err := m.EvaluateExpression("1 < 2 < 3"); !mderror.Is(err, mderror.InvalidExpression) {
		t.Errorf("expected InvalidExpression error, got %v", err)
	}
}

func TestEvaluateDefinitionOrExpressionRejectsTrailingTokens(t *testing.T) {
	m := newModule(t)
	if _, err := m.EvaluateDefinitionOrExpression("1 + 2 3"); !mderror.Is(err, mderror.InvalidExpression) {
		t.Errorf("expected InvalidExpression error, got %v", err)
	}
}

func TestEvaluateRecursiveFactorialThroughSource(t *testing.T) {
	m := newModule(t)
	if _, err := m.EvaluateDefinitionOrExpression(
		"let fact = fn (integer n) -> integer if n <= 1 then 1 else n * self(n - 1)"); err != nil {
		t.Fatalf("definition: %v", err)
	}
	v, err := m.EvaluateExpression("fact(5)")
	if err != nil {
		t.Fatalf("EvaluateExpression: %v", err)
	}
	if v.Int != 120 {
		t.Errorf("fact(5) = %d, want 120", v.Int)
	}
}
