package mdir

import (
	"fmt"

	"github.com/ortfero/mandalang/internal/mdtype"
)

// SymbolTag discriminates what a name in scope is bound to.
type SymbolTag int

const (
	SymbolValue SymbolTag = iota
	SymbolExpression
	SymbolTypeExpression
	SymbolType
	SymbolFnParameter
)

// FnParameter describes a function parameter binding: its position within
// the parameter list (Index) and its solved type. How many activation
// frames separate a particular reference from this parameter's defining
// frame varies by occurrence, so that distance is not stored here; see
// Node.ResolvedDepth.
type FnParameter struct {
	Index uint
	Type  mdtype.Type
}

// Symbol is a name bound in a Scope: a value, an unevaluated expression
// (a `let` definition before it is forced), a type, a type expression
// (a `type` definition before it is solved), or a function parameter.
type Symbol struct {
	Name       string
	Tag        SymbolTag
	Value      Value
	Expression *Node
	Type       mdtype.Type
	Parameter  FnParameter
}

func NewValueSymbol(name string, value Value) *Symbol {
	return &Symbol{Name: name, Tag: SymbolValue, Value: value}
}

func NewExpressionSymbol(name string, expression *Node) *Symbol {
	return &Symbol{Name: name, Tag: SymbolExpression, Expression: expression}
}

func NewTypeExpressionSymbol(name string, expression *Node) *Symbol {
	return &Symbol{Name: name, Tag: SymbolTypeExpression, Expression: expression}
}

func NewTypeSymbol(name string, typ mdtype.Type) *Symbol {
	return &Symbol{Name: name, Tag: SymbolType, Type: typ}
}

func NewFnParameterSymbol(name string, index uint) *Symbol {
	return &Symbol{Name: name, Tag: SymbolFnParameter, Parameter: FnParameter{Index: index}}
}

func (s *Symbol) String() string {
	switch s.Tag {
	case SymbolValue:
		return fmt.Sprintf("%s = %s", s.Name, s.Value)
	case SymbolExpression:
		return fmt.Sprintf("%s = <expression>", s.Name)
	case SymbolTypeExpression:
		return fmt.Sprintf("%s = <type expression>", s.Name)
	case SymbolType:
		return fmt.Sprintf("%s = %s", s.Name, s.Type)
	case SymbolFnParameter:
		return fmt.Sprintf("%s = %s parameter", s.Name, s.Parameter.Type)
	default:
		return fmt.Sprintf("%s = <unknown>", s.Name)
	}
}

// SymbolOrExpression is what the parser returns from a top-level line:
// either a completed `let`/`type` Symbol or a bare expression Node.
type SymbolOrExpression struct {
	Symbol     *Symbol
	Expression *Node
}

// SymbolOrValue is what evaluating a top-level line produces: the Symbol
// that was just (re)defined, or a bare Value from an expression.
type SymbolOrValue struct {
	Symbol *Symbol
	Value  Value
	IsSym  bool
}
