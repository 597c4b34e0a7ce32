package mdtypesolver

import (
	"testing"

	"github.com/ortfero/mandalang/internal/mderror"
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/internal/mdtype"
)

func TestSolveLiterals(t *testing.T) {
	s := New()
	f := mdir.Float(3.14, 1)
	if err := s.Solve(f); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !f.Type.Equal(mdtype.Floating) {
		t.Errorf("float literal type = %v, want floating point", f.Type)
	}

	i := mdir.Int(7, 1)
	if err := s.Solve(i); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !i.Type.Equal(mdtype.Int) {
		t.Errorf("int literal type = %v, want integer", i.Type)
	}
}

func TestSolveIntAddSpecializesKind(t *testing.T) {
	node := mdir.Binary(mdir.NodeAdd, mdir.Int(1, 1), mdir.Int(2, 1), 1)
	s := New()
	if err := s.Solve(node); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if node.Kind != mdir.NodeIntAdd {
		t.Errorf("Kind = %v, want NodeIntAdd", node.Kind)
	}
	if !node.Type.Equal(mdtype.Int) {
		t.Errorf("Type = %v, want integer", node.Type)
	}
}

func TestSolveFloatDivideSpecializesKind(t *testing.T) {
	node := mdir.Binary(mdir.NodeDivide, mdir.Float(1, 1), mdir.Float(2, 1), 1)
	s := New()
	if err := s.Solve(node); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if node.Kind != mdir.NodeFloatDivide {
		t.Errorf("Kind = %v, want NodeFloatDivide", node.Kind)
	}
}

func TestSolveMismatchedOperandTypes(t *testing.T) {
	node := mdir.Binary(mdir.NodeAdd, mdir.Int(1, 1), mdir.Float(2, 1), 1)
	s := New()
	err := s.Solve(node)
	if !mderror.Is(err, mderror.OperandsShouldHaveSameType) {
		t.Fatalf("expected OperandsShouldHaveSameType, got %v", err)
	}
}

func TestSolveNegateNonNumeric(t *testing.T) {
	boolSymbol := mdir.NewValueSymbol("b", mdir.BoolValue(true))
	name := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: boolSymbol, Line: 1}
	node := mdir.Unary(mdir.NodeNegate, name, 1)
	s := New()
	err := s.Solve(node)
	if !mderror.Is(err, mderror.UnaryMinusShouldHaveNumericalOperand) {
		t.Fatalf("expected UnaryMinusShouldHaveNumericalOperand, got %v", err)
	}
}

func TestSolveBooleanComparisonSpecializesToBooleanKind(t *testing.T) {
	leftSymbol := mdir.NewValueSymbol("a", mdir.BoolValue(true))
	rightSymbol := mdir.NewValueSymbol("b", mdir.BoolValue(false))
	left := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: leftSymbol, Line: 1}
	right := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: rightSymbol, Line: 1}
	node := mdir.Binary(mdir.NodeEqualsTo, left, right, 1)

	s := New()
	if err := s.Solve(node); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if node.Kind != mdir.NodeBooleanEqualsTo {
		t.Errorf("Kind = %v, want NodeBooleanEqualsTo", node.Kind)
	}
	if !node.Type.Equal(mdtype.Bool) {
		t.Errorf("Type = %v, want boolean", node.Type)
	}
}

func TestSolveConditionalRequiresBooleanCondition(t *testing.T) {
	node := mdir.Conditional(mdir.Int(1, 1), mdir.Int(1, 1), mdir.Int(2, 1), 1)
	s := New()
	err := s.Solve(node)
	if !mderror.Is(err, mderror.ConditionShouldBeBoolean) {
		t.Fatalf("expected ConditionShouldBeBoolean, got %v", err)
	}
}

func TestSolveConditionalRequiresMatchingBranchTypes(t *testing.T) {
	boolSymbol := mdir.NewValueSymbol("cond", mdir.BoolValue(true))
	cond := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: boolSymbol, Line: 1}
	node := mdir.Conditional(cond, mdir.Int(1, 1), mdir.Float(2, 1), 1)
	s := New()
	err := s.Solve(node)
	if !mderror.Is(err, mderror.ConditionalExpressionTypesMismatch) {
		t.Fatalf("expected ConditionalExpressionTypesMismatch, got %v", err)
	}
}

// fn (integer a) -> integer a
func TestSolveFunctionAndCall(t *testing.T) {
	scope := mdir.NewFunctionScope(nil, 1)
	scope.Define(mdir.NewExpressionSymbol("self", nil))
	scope.Define(mdir.NewFnParameterSymbol("a", 0))

	integerType := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: mdir.NewTypeSymbol("integer", mdtype.Int), Line: 1}
	result := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: mdir.NewTypeSymbol("integer", mdtype.Int), Line: 1}
	param := mdir.TypedName(integerType, "a", 1)
	body := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: scope.FindLocal("a"), Line: 1}

	fn := mdir.Function(1, param, result, body, 1)
	fn.Kind = mdir.NodeResolvedFunction
	fn.FuncScope = scope
	scope.FindLocal("self").Expression = body

	s := New()
	if err := s.Solve(fn); err != nil {
		t.Fatalf("Solve function: %v", err)
	}
	if fn.Type.Tag != mdtype.Composite || fn.Type.Composite.Tag != mdtype.Function {
		t.Fatalf("function type not composite function, got %v", fn.Type)
	}
	if fn.Type.Composite.Function.Arity != 1 {
		t.Errorf("Arity = %d, want 1", fn.Type.Composite.Function.Arity)
	}

	callee := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: mdir.NewValueSymbol("f", mdir.NativeFunctionValue(fn.Type, fn.Body, scope)), Line: 1}
	arg := mdir.FunctionArgument(mdir.Int(5, 1), nil, 1)
	call := mdir.FunctionCall(callee, 1, arg, 1)
	call.Kind = mdir.NodeResolvedFunctionCall

	if err := s.Solve(call); err != nil {
		t.Fatalf("Solve call: %v", err)
	}
	if !call.Type.Equal(mdtype.Int) {
		t.Errorf("call Type = %v, want integer", call.Type)
	}
}

func TestSolveFunctionCallArityMismatch(t *testing.T) {
	calleeType := mdtype.NewFunction(mdtype.Int, []mdtype.Type{mdtype.Int})
	callee := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: mdir.NewValueSymbol("f", mdir.NativeFunctionValue(calleeType, nil, nil)), Line: 1}
	call := mdir.FunctionCall(callee, 0, nil, 1)
	call.Kind = mdir.NodeResolvedFunctionCall

	s := New()
	err := s.Solve(call)
	if !mderror.Is(err, mderror.MismatchParametersAndArgumentsCount) {
		t.Fatalf("expected MismatchParametersAndArgumentsCount, got %v", err)
	}
}

func TestSolveVectorType(t *testing.T) {
	itemType := &mdir.Node{Kind: mdir.NodeResolvedName, ResolvedSymbol: mdir.NewTypeSymbol("integer", mdtype.Int), Line: 1}
	vectorType := mdir.TypeVector(itemType, 1)

	s := New()
	if err := s.solveType(vectorType); err != nil {
		t.Fatalf("solveType: %v", err)
	}
	if vectorType.Type.Tag != mdtype.Composite || vectorType.Type.Composite.Tag != mdtype.Vector {
		t.Fatalf("expected a composite vector type, got %v", vectorType.Type)
	}
	if !vectorType.Type.Composite.Item.Equal(mdtype.Int) {
		t.Errorf("vector item type = %v, want integer", vectorType.Type.Composite.Item)
	}
}
