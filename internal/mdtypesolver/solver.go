// Package mdtypesolver walks a resolved mdir.Node tree bottom-up,
// assigning every node its solved mdtype.Type and rewriting generic
// operator kinds (NodeAdd, NodeMultiply, ...) into the type-specialized
// kind the evaluator actually dispatches on (NodeIntAdd, NodeFloatAdd,
// ...).
package mdtypesolver

import (
	"github.com/ortfero/mandalang/internal/config"
	"github.com/ortfero/mandalang/internal/mderror"
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/internal/mdtype"
)

// Solver solves and specializes node types. It is stateless; a single
// value can solve any number of independent expressions.
type Solver struct{}

// New creates a Solver.
func New() *Solver {
	return &Solver{}
}

// Solve assigns node.Type (and, for generic operators, rewrites node.Kind
// to its type-specialized form) for node and every node it contains.
func (s *Solver) Solve(node *mdir.Node) error {
	switch node.Kind {
	case mdir.NodeFloat:
		node.Type = mdtype.Floating
		return nil
	case mdir.NodeInt:
		node.Type = mdtype.Int
		return nil
	case mdir.NodeResolvedName:
		return s.solveName(node)
	case mdir.NodeSubexpression:
		return s.solveSubexpression(node)
	case mdir.NodeNegate:
		return s.solveNegate(node)
	case mdir.NodeBooleanNot:
		return s.solveBooleanNot(node)
	case mdir.NodeMultiply:
		return s.solveArithmetic(node, mdir.NodeFloatMultiply, mdir.NodeIntMultiply)
	case mdir.NodeDivide:
		return s.solveArithmetic(node, mdir.NodeFloatDivide, mdir.NodeIntDivide)
	case mdir.NodeAdd:
		return s.solveArithmetic(node, mdir.NodeFloatAdd, mdir.NodeIntAdd)
	case mdir.NodeSubtract:
		return s.solveArithmetic(node, mdir.NodeFloatSubtract, mdir.NodeIntSubtract)
	case mdir.NodeBooleanOr, mdir.NodeBooleanAnd:
		return s.solveBooleanBinary(node)
	case mdir.NodeEqualsTo:
		return s.solveComparison(node, mdir.NodeFloatEqualsTo, mdir.NodeIntEqualsTo, mdir.NodeBooleanEqualsTo)
	case mdir.NodeNotEqualsTo:
		return s.solveComparison(node, mdir.NodeFloatNotEqualsTo, mdir.NodeIntNotEqualsTo, mdir.NodeBooleanNotEqualsTo)
	case mdir.NodeGreaterThan:
		return s.solveOrdering(node, mdir.NodeFloatGreaterThan, mdir.NodeIntGreaterThan)
	case mdir.NodeGreaterOrEquals:
		return s.solveOrdering(node, mdir.NodeFloatGreaterOrEquals, mdir.NodeIntGreaterOrEquals)
	case mdir.NodeLessThan:
		return s.solveOrdering(node, mdir.NodeFloatLessThan, mdir.NodeIntLessThan)
	case mdir.NodeLessOrEquals:
		return s.solveOrdering(node, mdir.NodeFloatLessOrEquals, mdir.NodeIntLessOrEquals)
	case mdir.NodeResolvedFunction:
		return s.solveFunction(node)
	case mdir.NodeResolvedFunctionCall:
		return s.solveFunctionCall(node)
	case mdir.NodeConditional:
		return s.solveConditional(node)
	default:
		return mderror.At(mderror.InvalidNodeToSolveType, node.Line)
	}
}

func (s *Solver) solveName(node *mdir.Node) error {
	symbol := node.ResolvedSymbol
	switch symbol.Tag {
	case mdir.SymbolValue:
		node.Type = symbol.Value.Type
	case mdir.SymbolExpression:
		node.Type = symbol.Expression.Type
	case mdir.SymbolType:
		node.Type = symbol.Type
	case mdir.SymbolFnParameter:
		node.Type = symbol.Parameter.Type
	default:
		return mderror.At(mderror.InvalidTypeResolving, node.Line)
	}
	return nil
}

func (s *Solver) solveSubexpression(node *mdir.Node) error {
	if err := s.Solve(node.Unary); err != nil {
		return err
	}
	node.Type = node.Unary.Type
	return nil
}

func (s *Solver) solveNegate(node *mdir.Node) error {
	if err := s.Solve(node.Unary); err != nil {
		return err
	}
	switch node.Unary.Type.Tag {
	case mdtype.FloatingPoint:
		node.Kind = mdir.NodeFloatNegate
		node.Type = mdtype.Floating
	case mdtype.Integer:
		node.Kind = mdir.NodeIntNegate
		node.Type = mdtype.Int
	default:
		return mderror.At(mderror.UnaryMinusShouldHaveNumericalOperand, node.Line)
	}
	return nil
}

func (s *Solver) solveBooleanNot(node *mdir.Node) error {
	if err := s.Solve(node.Unary); err != nil {
		return err
	}
	if node.Unary.Type.Tag != mdtype.Boolean {
		return mderror.At(mderror.BooleanNotShouldHaveBooleanOperand, node.Line)
	}
	node.Type = mdtype.Bool
	return nil
}

func (s *Solver) solveOperands(node *mdir.Node) error {
	if err := s.Solve(node.Left); err != nil {
		return err
	}
	if err := s.Solve(node.Right); err != nil {
		return err
	}
	if !node.Left.Type.Equal(node.Right.Type) {
		return mderror.At(mderror.OperandsShouldHaveSameType, node.Line)
	}
	return nil
}

func (s *Solver) solveArithmetic(node *mdir.Node, floatKind, intKind mdir.NodeKind) error {
	if err := s.solveOperands(node); err != nil {
		return err
	}
	switch node.Left.Type.Tag {
	case mdtype.FloatingPoint:
		node.Kind = floatKind
		node.Type = mdtype.Floating
	case mdtype.Integer:
		node.Kind = intKind
		node.Type = mdtype.Int
	default:
		return mderror.At(mderror.OperandsShouldHaveNumericalTypes, node.Line)
	}
	return nil
}

func (s *Solver) solveBooleanBinary(node *mdir.Node) error {
	if err := s.solveOperandsIndependently(node); err != nil {
		return err
	}
	if node.Left.Type.Tag != mdtype.Boolean || node.Right.Type.Tag != mdtype.Boolean {
		return mderror.At(mderror.OperandsShouldHaveBooleanType, node.Line)
	}
	node.Type = mdtype.Bool
	return nil
}

func (s *Solver) solveOperandsIndependently(node *mdir.Node) error {
	if err := s.Solve(node.Left); err != nil {
		return err
	}
	return s.Solve(node.Right)
}

func (s *Solver) solveComparison(node *mdir.Node, floatKind, intKind, boolKind mdir.NodeKind) error {
	if err := s.solveOperands(node); err != nil {
		return err
	}
	switch node.Left.Type.Tag {
	case mdtype.FloatingPoint:
		node.Kind = floatKind
	case mdtype.Integer:
		node.Kind = intKind
	case mdtype.Boolean:
		node.Kind = boolKind
	default:
		return mderror.At(mderror.OperandsShouldHaveNumericalTypes, node.Line)
	}
	node.Type = mdtype.Bool
	return nil
}

func (s *Solver) solveOrdering(node *mdir.Node, floatKind, intKind mdir.NodeKind) error {
	if err := s.solveOperands(node); err != nil {
		return err
	}
	switch node.Left.Type.Tag {
	case mdtype.FloatingPoint:
		node.Kind = floatKind
	case mdtype.Integer:
		node.Kind = intKind
	default:
		return mderror.At(mderror.OperandsShouldHaveNumericalTypes, node.Line)
	}
	node.Type = mdtype.Bool
	return nil
}

func (s *Solver) solveFunction(node *mdir.Node) error {
	if err := s.solveType(node.Result); err != nil {
		return err
	}

	var parameters [config.MaxFunctionParameters]mdtype.Type
	count := uint(0)
	for p := node.Parameters; p != nil; p = p.TypedNameNext {
		if err := s.solveType(p.TypedNameType); err != nil {
			return err
		}
		parameterSymbol := node.FuncScope.FindLocal(p.TypedNameName)
		if parameterSymbol == nil {
			return mderror.WithDetails(mderror.InvalidTypeResolving, node.Line, p.TypedNameName)
		}
		parameterSymbol.Parameter.Type = p.TypedNameType.Type
		parameters[count] = p.TypedNameType.Type
		count++
	}

	node.Type = mdtype.NewFunction(node.Result.Type, parameters[:count])

	self := node.FuncScope.FindLocal("self")
	if self == nil {
		return mderror.At(mderror.InvalidTypeResolving, node.Line)
	}
	self.Value.Type = node.Type

	if err := s.Solve(node.Body); err != nil {
		return err
	}
	if !node.Result.Type.Equal(node.Body.Type) {
		return mderror.At(mderror.MismatchFunctionTypeAndExpression, node.Line)
	}
	return nil
}

func (s *Solver) solveFunctionCall(node *mdir.Node) error {
	if err := s.Solve(node.Callee); err != nil {
		return err
	}
	calleeType := node.Callee.Type
	if calleeType.Tag != mdtype.Composite || calleeType.Composite.Tag != mdtype.Function {
		return mderror.At(mderror.ExpectedFunctionToCall, node.Line)
	}
	if node.Callee.Kind == mdir.NodeResolvedName {
		switch node.Callee.ResolvedSymbol.Tag {
		case mdir.SymbolFnParameter, mdir.SymbolValue:
		default:
			return mderror.At(mderror.ExpectedFunctionToCall, node.Line)
		}
	}

	functionType := calleeType.Composite.Function
	if functionType.Arity != node.ArgumentsCount {
		return mderror.At(mderror.MismatchParametersAndArgumentsCount, node.Line)
	}

	index := uint(0)
	for argument := node.Arguments; argument != nil; argument = argument.Right {
		if err := s.Solve(argument.Left); err != nil {
			return err
		}
		if !argument.Left.Type.Equal(functionType.Parameters[index]) {
			return mderror.At(mderror.MismatchParameterAndArgumentTypes, node.Line)
		}
		index++
	}

	node.Type = functionType.Result
	return nil
}

func (s *Solver) solveConditional(node *mdir.Node) error {
	if err := s.Solve(node.Condition); err != nil {
		return err
	}
	if node.Condition.Type.Tag != mdtype.Boolean {
		return mderror.At(mderror.ConditionShouldBeBoolean, node.Line)
	}
	if err := s.Solve(node.Then); err != nil {
		return err
	}
	if err := s.Solve(node.Else); err != nil {
		return err
	}
	if !node.Then.Type.Equal(node.Else.Type) {
		return mderror.At(mderror.ConditionalExpressionTypesMismatch, node.Line)
	}
	node.Type = node.Then.Type
	return nil
}

// SolveType solves a `type` definition's right-hand side, the type-level
// counterpart to Solve for an ordinary value expression.
func (s *Solver) SolveType(node *mdir.Node) error {
	return s.solveType(node)
}

func (s *Solver) solveType(node *mdir.Node) error {
	switch node.Kind {
	case mdir.NodeResolvedName:
		if node.ResolvedSymbol.Tag != mdir.SymbolType {
			return mderror.At(mderror.TypeNameExpected, node.Line)
		}
		node.Type = node.ResolvedSymbol.Type
		return nil
	case mdir.NodeTypeFunction:
		return s.solveFunctionType(node)
	case mdir.NodeTypeVector:
		if err := s.solveType(node.Unary); err != nil {
			return err
		}
		node.Type = mdtype.NewVector(node.Unary.Type)
		return nil
	default:
		return mderror.At(mderror.InvalidTypeSyntax, node.Line)
	}
}

func (s *Solver) solveFunctionType(node *mdir.Node) error {
	if err := s.solveType(node.Result); err != nil {
		return err
	}
	var parameters [config.MaxFunctionParameters]mdtype.Type
	count := uint(0)
	for p := node.Parameters; p != nil; p = p.TypeItemNext {
		if err := s.solveType(p.TypeItemType); err != nil {
			return err
		}
		parameters[count] = p.TypeItemType.Type
		count++
	}
	node.Type = mdtype.NewFunction(node.Result.Type, parameters[:count])
	return nil
}
