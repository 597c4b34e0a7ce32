// Package mdir defines Mandalang's intermediate representation: a single
// mutable-discriminant Node type rewritten in place as it passes through
// the resolver and type solver, plus the Symbol and Scope types that
// bind names to meaning.
//
// A generic node (e.g. NodeAdd) is rewritten to a type-specialized one
// (NodeIntAdd or NodeFloatAdd) by the type solver; a name node becomes
// NodeResolvedName once the resolver has looked it up. No node keeps both
// its generic and specialized identity at once; Kind always reflects the
// most recent stage to touch it.
package mdir

import "github.com/ortfero/mandalang/internal/mdtype"

// NodeKind discriminates the payload carried by a Node.
type NodeKind int

const (
	NodeFloat NodeKind = iota
	NodeInt
	NodeName
	NodeSubexpression
	NodeResolvedName

	NodeNegate
	NodeAdd
	NodeSubtract
	NodeMultiply
	NodeDivide

	NodeFloatNegate
	NodeFloatAdd
	NodeFloatSubtract
	NodeFloatMultiply
	NodeFloatDivide

	NodeIntNegate
	NodeIntAdd
	NodeIntSubtract
	NodeIntMultiply
	NodeIntDivide

	NodeBooleanOr
	NodeBooleanAnd
	NodeBooleanNot

	NodeEqualsTo
	NodeNotEqualsTo
	NodeGreaterThan
	NodeGreaterOrEquals
	NodeLessThan
	NodeLessOrEquals

	NodeFloatEqualsTo
	NodeFloatNotEqualsTo
	NodeFloatGreaterThan
	NodeFloatGreaterOrEquals
	NodeFloatLessThan
	NodeFloatLessOrEquals

	NodeIntEqualsTo
	NodeIntNotEqualsTo
	NodeIntGreaterThan
	NodeIntGreaterOrEquals
	NodeIntLessThan
	NodeIntLessOrEquals

	NodeBooleanEqualsTo
	NodeBooleanNotEqualsTo

	NodeFunction
	NodeTypedName
	NodeTypeItem
	NodeResolvedFunction

	NodeFunctionCall
	NodeFunctionArgument
	NodeResolvedFunctionCall

	NodeTypeFunction
	NodeTypeVector

	NodeConditional
)

// Node is Mandalang's only IR node type. Only the fields relevant to Kind
// are meaningful at any point; the rest are zero.
type Node struct {
	Kind NodeKind
	Line uint
	Type mdtype.Type

	Float float64
	Int   int64
	Name  string

	Unary *Node

	Left  *Node
	Right *Node

	// NodeFunction / NodeResolvedFunction / NodeTypeFunction (prototype)
	Arity      uint
	Parameters *Node // linked list of NodeTypedName (function) or NodeTypeItem (type) nodes
	Result     *Node
	Body       *Node
	FuncScope  *Scope

	// NodeFunctionCall / NodeResolvedFunctionCall
	Callee         *Node
	ArgumentsCount uint
	Arguments      *Node // linked list of NodeFunctionArgument nodes via Right

	// NodeTypedName: a `type name` pair inside a parameter list
	TypedNameType *Node
	TypedNameName string
	TypedNameNext *Node

	// NodeTypeItem: an element of a function-type parameter list
	TypeItemType *Node
	TypeItemNext *Node

	// NodeConditional
	Condition *Node
	Then      *Node
	Else      *Node

	ResolvedSymbol *Symbol

	// ResolvedDepth holds, for a NodeResolvedName referring to a
	// SymbolFnParameter, the number of activation frames between this
	// occurrence and the frame that owns the parameter. It is computed
	// per occurrence rather than stored on the shared Symbol, since the
	// same parameter can be referenced at different nesting depths from
	// different places (directly in its own function's body, and again
	// from inside a nested function literal defined within that body).
	ResolvedDepth uint
}

func Float(v float64, line uint) *Node {
	return &Node{Kind: NodeFloat, Float: v, Line: line}
}

func Int(v int64, line uint) *Node {
	return &Node{Kind: NodeInt, Int: v, Line: line}
}

func NameNode(name string, line uint) *Node {
	return &Node{Kind: NodeName, Name: name, Line: line}
}

func Unary(kind NodeKind, operand *Node, line uint) *Node {
	return &Node{Kind: kind, Unary: operand, Line: line}
}

func Binary(kind NodeKind, left, right *Node, line uint) *Node {
	return &Node{Kind: kind, Left: left, Right: right, Line: line}
}

func Subexpression(inner *Node, line uint) *Node {
	return &Node{Kind: NodeSubexpression, Unary: inner, Line: line}
}

func TypedName(typeNode *Node, name string, line uint) *Node {
	return &Node{Kind: NodeTypedName, TypedNameType: typeNode, TypedNameName: name, Line: line}
}

func TypeItem(typeNode *Node, line uint) *Node {
	return &Node{Kind: NodeTypeItem, TypeItemType: typeNode, Line: line}
}

func FunctionHeader(arity uint, parameters, result *Node, line uint) *Node {
	return &Node{Kind: NodeTypeFunction, Arity: arity, Parameters: parameters, Result: result, Line: line}
}

func Function(arity uint, parameters, result, body *Node, line uint) *Node {
	return &Node{Kind: NodeFunction, Arity: arity, Parameters: parameters, Result: result, Body: body, Line: line}
}

func FunctionCall(callee *Node, argumentsCount uint, arguments *Node, line uint) *Node {
	return &Node{Kind: NodeFunctionCall, Callee: callee, ArgumentsCount: argumentsCount, Arguments: arguments, Line: line}
}

func FunctionArgument(expr, next *Node, line uint) *Node {
	return &Node{Kind: NodeFunctionArgument, Left: expr, Right: next, Line: line}
}

func Conditional(condition, then, els *Node, line uint) *Node {
	return &Node{Kind: NodeConditional, Condition: condition, Then: then, Else: els, Line: line}
}

func TypeVector(item *Node, line uint) *Node {
	return &Node{Kind: NodeTypeVector, Unary: item, Line: line}
}
