// Package mdresolver binds names to symbols and rewrites mdir.Node name
// references into resolved-name references, ready for type solving.
package mdresolver

import (
	"github.com/ortfero/mandalang/internal/mderror"
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/internal/mdtype"
)

// Resolver walks an expression tree, replacing NodeName/NodeFunction/
// NodeFunctionCall nodes with their resolved counterparts.
type Resolver struct{}

// New creates a Resolver. It is stateless; a single value can resolve
// any number of independent expressions.
func New() *Resolver {
	return &Resolver{}
}

// ResolveExpression resolves node against scope. depth counts how many
// enclosing function bodies surround node; it starts at 0 for a
// top-level expression and increases by one for every body entered of a
// NodeFunction with at least one parameter (see resolveFunction), so a
// resolved reference to a SymbolFnParameter records in its ResolvedDepth
// the correct number of activation frames between it and its binder.
func (r *Resolver) ResolveExpression(scope *mdir.Scope, node *mdir.Node, depth uint) error {
	switch node.Kind {
	case mdir.NodeFloat, mdir.NodeInt:
		return nil
	case mdir.NodeName:
		return r.resolveName(scope, node, depth)
	case mdir.NodeSubexpression, mdir.NodeNegate, mdir.NodeBooleanNot:
		return r.ResolveExpression(scope, node.Unary, depth)
	case mdir.NodeMultiply, mdir.NodeDivide, mdir.NodeAdd, mdir.NodeSubtract,
		mdir.NodeBooleanOr, mdir.NodeBooleanAnd,
		mdir.NodeEqualsTo, mdir.NodeNotEqualsTo,
		mdir.NodeGreaterThan, mdir.NodeGreaterOrEquals,
		mdir.NodeLessThan, mdir.NodeLessOrEquals:
		return r.resolveBinaryOperation(scope, node.Left, node.Right, depth)
	case mdir.NodeFunction:
		return r.resolveFunction(scope, node, depth)
	case mdir.NodeFunctionCall:
		return r.resolveFunctionCall(scope, node, depth)
	case mdir.NodeConditional:
		return r.resolveConditional(scope, node, depth)
	default:
		return mderror.At(mderror.InvalidNodeToResolve, node.Line)
	}
}

func (r *Resolver) resolveName(scope *mdir.Scope, node *mdir.Node, depth uint) error {
	symbol, owner := findWithScope(scope, node.Name)
	if symbol == nil {
		return mderror.WithDetails(mderror.UnknownName, node.Line, node.Name)
	}
	node.Kind = mdir.NodeResolvedName
	node.ResolvedSymbol = symbol
	if symbol.Tag == mdir.SymbolFnParameter {
		node.ResolvedDepth = depth - owner.FrameDepth
	}
	return nil
}

// findWithScope walks the scope chain like Scope.Find, but also returns the
// scope the symbol was actually bound in, so the resolver can compare its
// FrameDepth against the depth of the occurrence doing the lookup.
func findWithScope(scope *mdir.Scope, name string) (*mdir.Symbol, *mdir.Scope) {
	for s := scope; s != nil; s = s.Outer() {
		if found := s.FindLocal(name); found != nil {
			return found, s
		}
	}
	return nil, nil
}

func (r *Resolver) resolveBinaryOperation(scope *mdir.Scope, left, right *mdir.Node, depth uint) error {
	if err := r.ResolveExpression(scope, left, depth); err != nil {
		return err
	}
	return r.ResolveExpression(scope, right, depth)
}

func (r *Resolver) resolveFunction(scope *mdir.Scope, node *mdir.Node, depth uint) error {
	if err := r.resolveType(scope, node.Result); err != nil {
		return err
	}
	// A call with zero arguments never pushes an activation frame (the
	// evaluator reuses whatever frame is already on top, since there is
	// nothing to store), so a zero-arity function's body resolves at the
	// same depth as its surrounding context rather than one deeper.
	// Otherwise a parameter reference reached through such a function
	// would look one frame further back than the stack actually is.
	innerDepth := depth
	if node.Arity > 0 {
		innerDepth = depth + 1
	}
	local := mdir.NewFunctionScope(scope, innerDepth)
	node.FuncScope = local

	// self is a value symbol holding a native function over this same
	// body and scope, not an expression symbol: a call through self must
	// push its own activation frame like any other call, not re-evaluate
	// the enclosing body in place against the caller's frame. The type
	// solver fills in self's type once node.Type is known.
	self := mdir.NewValueSymbol("self", mdir.NativeFunctionValue(mdtype.Type{}, node.Body, local))
	if _, err := local.Define(self); err != nil {
		return err
	}

	index := uint(0)
	for p := node.Parameters; p != nil; p = p.TypedNameNext {
		if err := r.resolveType(scope, p.TypedNameType); err != nil {
			return err
		}
		parameterSymbol := mdir.NewFnParameterSymbol(p.TypedNameName, index)
		if _, err := local.Define(parameterSymbol); err != nil {
			return err
		}
		index++
	}

	node.Kind = mdir.NodeResolvedFunction
	return r.ResolveExpression(local, node.Body, innerDepth)
}

func (r *Resolver) resolveFunctionCall(scope *mdir.Scope, node *mdir.Node, depth uint) error {
	if err := r.ResolveExpression(scope, node.Callee, depth); err != nil {
		return err
	}
	for arg := node.Arguments; arg != nil; arg = arg.Right {
		if err := r.ResolveExpression(scope, arg.Left, depth); err != nil {
			return err
		}
	}
	node.Kind = mdir.NodeResolvedFunctionCall
	return nil
}

func (r *Resolver) resolveConditional(scope *mdir.Scope, node *mdir.Node, depth uint) error {
	if err := r.ResolveExpression(scope, node.Condition, depth); err != nil {
		return err
	}
	if err := r.ResolveExpression(scope, node.Then, depth); err != nil {
		return err
	}
	return r.ResolveExpression(scope, node.Else, depth)
}

// ResolveType resolves a `type` definition's right-hand side: a type
// name, a function-type prototype, or a vector-of-type.
func (r *Resolver) ResolveType(scope *mdir.Scope, node *mdir.Node) error {
	return r.resolveType(scope, node)
}

func (r *Resolver) resolveType(scope *mdir.Scope, node *mdir.Node) error {
	switch node.Kind {
	case mdir.NodeName:
		return r.resolveTypeName(scope, node)
	case mdir.NodeTypeFunction:
		return r.resolveTypeFunction(scope, node)
	case mdir.NodeTypeVector:
		return r.resolveType(scope, node.Unary)
	default:
		return mderror.At(mderror.InvalidNodeToResolve, node.Line)
	}
}

func (r *Resolver) resolveTypeName(scope *mdir.Scope, node *mdir.Node) error {
	symbol := scope.Find(node.Name)
	if symbol == nil {
		return mderror.WithDetails(mderror.UnknownName, node.Line, node.Name)
	}
	if symbol.Tag != mdir.SymbolType {
		return mderror.WithDetails(mderror.TypeNameExpected, node.Line, node.Name)
	}
	node.Kind = mdir.NodeResolvedName
	node.ResolvedSymbol = symbol
	return nil
}

func (r *Resolver) resolveTypeFunction(scope *mdir.Scope, node *mdir.Node) error {
	if err := r.resolveType(scope, node.Result); err != nil {
		return err
	}
	for p := node.Parameters; p != nil; p = p.TypeItemNext {
		if err := r.resolveType(scope, p.TypeItemType); err != nil {
			return err
		}
	}
	return nil
}
