// Package mdeval tree-walks a fully resolved and type-solved mdir.Node,
// producing an mdir.Value. Function parameters are addressed through an
// activation-frame stack rather than captured closures: calling a native
// function with at least one argument pushes one frame holding its
// arguments, evaluates its body, then pops the frame (a call with no
// arguments pushes nothing), and a parameter reference reads back across that
// stack using the per-occurrence depth the resolver computed.
package mdeval

import (
	"github.com/ortfero/mandalang/internal/mderror"
	"github.com/ortfero/mandalang/internal/mdir"
)

// Frame is one function activation: the values bound to its parameters,
// in declaration order.
type Frame []mdir.Value

// Evaluator holds the activation-frame stack live during one evaluation.
// It is not safe for concurrent use; create a fresh Evaluator (or reuse
// one sequentially) per module, matching the single-threaded contract
// the rest of the pipeline assumes.
type Evaluator struct {
	stack []Frame
}

// New creates an Evaluator with an empty stack.
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes the value of a resolved, type-solved node.
func (e *Evaluator) Evaluate(node *mdir.Node) (mdir.Value, error) {
	switch node.Kind {
	case mdir.NodeFloat:
		return mdir.FloatValue(node.Float), nil
	case mdir.NodeInt:
		return mdir.IntValue(node.Int), nil
	case mdir.NodeResolvedName:
		return e.evaluateSymbol(node)
	case mdir.NodeSubexpression:
		return e.Evaluate(node.Unary)
	case mdir.NodeIntNegate:
		return e.evaluateUnary(node.Unary, func(v mdir.Value) mdir.Value { return mdir.IntValue(-v.Int) })
	case mdir.NodeFloatNegate:
		return e.evaluateUnary(node.Unary, func(v mdir.Value) mdir.Value { return mdir.FloatValue(-v.Float) })
	case mdir.NodeBooleanNot:
		return e.evaluateUnary(node.Unary, func(v mdir.Value) mdir.Value { return mdir.BoolValue(!v.Bool) })

	case mdir.NodeIntMultiply:
		return e.evaluateIntBinary(node, func(l, r int64) int64 { return l * r })
	case mdir.NodeIntAdd:
		return e.evaluateIntBinary(node, func(l, r int64) int64 { return l + r })
	case mdir.NodeIntSubtract:
		return e.evaluateIntBinary(node, func(l, r int64) int64 { return l - r })
	case mdir.NodeIntDivide:
		return e.evaluateIntDivide(node)

	case mdir.NodeFloatMultiply:
		return e.evaluateFloatBinary(node, func(l, r float64) float64 { return l * r })
	case mdir.NodeFloatDivide:
		return e.evaluateFloatBinary(node, func(l, r float64) float64 { return l / r })
	case mdir.NodeFloatAdd:
		return e.evaluateFloatBinary(node, func(l, r float64) float64 { return l + r })
	case mdir.NodeFloatSubtract:
		return e.evaluateFloatBinary(node, func(l, r float64) float64 { return l - r })

	case mdir.NodeBooleanAnd:
		return e.evaluateBooleanAnd(node.Left, node.Right)
	case mdir.NodeBooleanOr:
		return e.evaluateBooleanOr(node.Left, node.Right)

	case mdir.NodeIntEqualsTo:
		return e.evaluateIntComparison(node, func(l, r int64) bool { return l == r })
	case mdir.NodeFloatEqualsTo:
		return e.evaluateFloatComparison(node, func(l, r float64) bool { return l == r })
	case mdir.NodeBooleanEqualsTo:
		return e.evaluateBoolComparison(node, func(l, r bool) bool { return l == r })
	case mdir.NodeIntNotEqualsTo:
		return e.evaluateIntComparison(node, func(l, r int64) bool { return l != r })
	case mdir.NodeFloatNotEqualsTo:
		return e.evaluateFloatComparison(node, func(l, r float64) bool { return l != r })
	case mdir.NodeBooleanNotEqualsTo:
		return e.evaluateBoolComparison(node, func(l, r bool) bool { return l != r })
	case mdir.NodeIntGreaterThan:
		return e.evaluateIntComparison(node, func(l, r int64) bool { return l > r })
	case mdir.NodeFloatGreaterThan:
		return e.evaluateFloatComparison(node, func(l, r float64) bool { return l > r })
	case mdir.NodeIntGreaterOrEquals:
		return e.evaluateIntComparison(node, func(l, r int64) bool { return l >= r })
	case mdir.NodeFloatGreaterOrEquals:
		return e.evaluateFloatComparison(node, func(l, r float64) bool { return l >= r })
	case mdir.NodeIntLessThan:
		return e.evaluateIntComparison(node, func(l, r int64) bool { return l < r })
	case mdir.NodeFloatLessThan:
		return e.evaluateFloatComparison(node, func(l, r float64) bool { return l < r })
	case mdir.NodeIntLessOrEquals:
		return e.evaluateIntComparison(node, func(l, r int64) bool { return l <= r })
	case mdir.NodeFloatLessOrEquals:
		return e.evaluateFloatComparison(node, func(l, r float64) bool { return l <= r })

	case mdir.NodeResolvedFunction:
		return mdir.NativeFunctionValue(node.Type, node.Body, node.FuncScope), nil
	case mdir.NodeResolvedFunctionCall:
		return e.evaluateCall(node)
	case mdir.NodeConditional:
		return e.evaluateConditional(node)
	default:
		return mdir.Value{}, mderror.At(mderror.InvalidNodeToEvaluate, node.Line)
	}
}

func (e *Evaluator) evaluateSymbol(node *mdir.Node) (mdir.Value, error) {
	symbol := node.ResolvedSymbol
	switch symbol.Tag {
	case mdir.SymbolFnParameter:
		if len(e.stack) == 0 {
			return mdir.Value{}, mderror.At(mderror.InvalidStackOperation, node.Line)
		}
		return e.evaluateFunctionParameter(node), nil
	case mdir.SymbolExpression:
		return e.Evaluate(symbol.Expression)
	case mdir.SymbolValue:
		return symbol.Value, nil
	default:
		return mdir.Value{}, mderror.WithDetails(mderror.InvalidSymbol, node.Line, symbol.Name)
	}
}

func (e *Evaluator) evaluateFunctionParameter(node *mdir.Node) mdir.Value {
	frame := e.stack[uint(len(e.stack))-1-node.ResolvedDepth]
	return frame[node.ResolvedSymbol.Parameter.Index]
}

func (e *Evaluator) evaluateUnary(operand *mdir.Node, apply func(mdir.Value) mdir.Value) (mdir.Value, error) {
	v, err := e.Evaluate(operand)
	if err != nil {
		return mdir.Value{}, err
	}
	return apply(v), nil
}

func (e *Evaluator) evaluateIntBinary(node *mdir.Node, apply func(l, r int64) int64) (mdir.Value, error) {
	left, right, err := e.evaluateOperands(node.Left, node.Right)
	if err != nil {
		return mdir.Value{}, err
	}
	return mdir.IntValue(apply(left.Int, right.Int)), nil
}

func (e *Evaluator) evaluateIntDivide(node *mdir.Node) (mdir.Value, error) {
	left, right, err := e.evaluateOperands(node.Left, node.Right)
	if err != nil {
		return mdir.Value{}, err
	}
	if right.Int == 0 {
		return mdir.Value{}, mderror.At(mderror.DivisionByZero, node.Line)
	}
	return mdir.IntValue(left.Int / right.Int), nil
}

func (e *Evaluator) evaluateFloatBinary(node *mdir.Node, apply func(l, r float64) float64) (mdir.Value, error) {
	left, right, err := e.evaluateOperands(node.Left, node.Right)
	if err != nil {
		return mdir.Value{}, err
	}
	return mdir.FloatValue(apply(left.Float, right.Float)), nil
}

func (e *Evaluator) evaluateIntComparison(node *mdir.Node, apply func(l, r int64) bool) (mdir.Value, error) {
	left, right, err := e.evaluateOperands(node.Left, node.Right)
	if err != nil {
		return mdir.Value{}, err
	}
	return mdir.BoolValue(apply(left.Int, right.Int)), nil
}

func (e *Evaluator) evaluateFloatComparison(node *mdir.Node, apply func(l, r float64) bool) (mdir.Value, error) {
	left, right, err := e.evaluateOperands(node.Left, node.Right)
	if err != nil {
		return mdir.Value{}, err
	}
	return mdir.BoolValue(apply(left.Float, right.Float)), nil
}

func (e *Evaluator) evaluateBoolComparison(node *mdir.Node, apply func(l, r bool) bool) (mdir.Value, error) {
	left, right, err := e.evaluateOperands(node.Left, node.Right)
	if err != nil {
		return mdir.Value{}, err
	}
	return mdir.BoolValue(apply(left.Bool, right.Bool)), nil
}

func (e *Evaluator) evaluateOperands(leftNode, rightNode *mdir.Node) (mdir.Value, mdir.Value, error) {
	left, err := e.Evaluate(leftNode)
	if err != nil {
		return mdir.Value{}, mdir.Value{}, err
	}
	right, err := e.Evaluate(rightNode)
	if err != nil {
		return mdir.Value{}, mdir.Value{}, err
	}
	return left, right, nil
}

// evaluateBooleanAnd and evaluateBooleanOr short-circuit: the right
// operand is only evaluated when the left one doesn't already decide
// the result.
func (e *Evaluator) evaluateBooleanAnd(leftNode, rightNode *mdir.Node) (mdir.Value, error) {
	left, err := e.Evaluate(leftNode)
	if err != nil {
		return mdir.Value{}, err
	}
	if !left.Bool {
		return mdir.BoolValue(false), nil
	}
	return e.Evaluate(rightNode)
}

func (e *Evaluator) evaluateBooleanOr(leftNode, rightNode *mdir.Node) (mdir.Value, error) {
	left, err := e.Evaluate(leftNode)
	if err != nil {
		return mdir.Value{}, err
	}
	if left.Bool {
		return mdir.BoolValue(true), nil
	}
	return e.Evaluate(rightNode)
}

func (e *Evaluator) evaluateConditional(node *mdir.Node) (mdir.Value, error) {
	condition, err := e.Evaluate(node.Condition)
	if err != nil {
		return mdir.Value{}, err
	}
	if condition.Bool {
		return e.Evaluate(node.Then)
	}
	return e.Evaluate(node.Else)
}

// evaluateCall evaluates a resolved call's callee down to a callable
// value, evaluates its arguments left to right, then either pushes a
// fresh activation frame and evaluates the native body or invokes the
// builtin directly. A call with no arguments pushes no frame.
func (e *Evaluator) evaluateCall(node *mdir.Node) (mdir.Value, error) {
	callee, err := e.evaluateCallee(node.Callee)
	if err != nil {
		return mdir.Value{}, err
	}

	if node.ArgumentsCount == 0 {
		if callee.Native != nil {
			return e.Evaluate(callee.Native)
		}
		return callee.Builtin(nil)
	}

	args, err := e.evaluateArguments(node.Arguments)
	if err != nil {
		return mdir.Value{}, err
	}
	if callee.Native != nil {
		e.stack = append(e.stack, Frame(args))
		result, err := e.Evaluate(callee.Native)
		e.stack = e.stack[:len(e.stack)-1]
		return result, err
	}
	return callee.Builtin(args)
}

// evaluateCallee resolves node down to a callable FunctionValue. It goes
// through the ordinary evaluate dispatch rather than special-casing each
// node shape that can precede a call: a resolved name might be a plain
// value symbol, the `self` value symbol, or (for higher-order
// functions) a function-typed parameter read off the activation stack,
// and evaluate already knows how to fetch each of those correctly.
func (e *Evaluator) evaluateCallee(node *mdir.Node) (mdir.FunctionValue, error) {
	v, err := e.Evaluate(node)
	if err != nil {
		return mdir.FunctionValue{}, err
	}
	if v.Tag != mdir.ValueFunction {
		return mdir.FunctionValue{}, mderror.At(mderror.ExpectedFunctionToCall, node.Line)
	}
	return v.Function, nil
}

func (e *Evaluator) evaluateArguments(argument *mdir.Node) ([]mdir.Value, error) {
	var args []mdir.Value
	for argument != nil {
		v, err := e.Evaluate(argument.Left)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		argument = argument.Right
	}
	return args, nil
}
