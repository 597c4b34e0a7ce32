package mdir

import (
	"fmt"

	"github.com/ortfero/mandalang/internal/mdtype"
)

// ValueTag discriminates the payload of a Value.
type ValueTag int

const (
	ValueFloat ValueTag = iota
	ValueInt
	ValueBool
	ValueFunction
)

// FunctionValue is a callable: either Native, a function body to be
// evaluated against a captured Scope, or Builtin, a host function.
type FunctionValue struct {
	Native  *Node
	Scope   *Scope
	Builtin func(args []Value) (Value, error)
}

// Value is a fully evaluated Mandalang runtime value.
type Value struct {
	Type     mdtype.Type
	Tag      ValueTag
	Float    float64
	Int      int64
	Bool     bool
	Function FunctionValue
}

func FloatValue(v float64) Value {
	return Value{Type: mdtype.Floating, Tag: ValueFloat, Float: v}
}

func IntValue(v int64) Value {
	return Value{Type: mdtype.Int, Tag: ValueInt, Int: v}
}

func BoolValue(v bool) Value {
	return Value{Type: mdtype.Bool, Tag: ValueBool, Bool: v}
}

func NativeFunctionValue(typ mdtype.Type, body *Node, scope *Scope) Value {
	return Value{Type: typ, Tag: ValueFunction, Function: FunctionValue{Native: body, Scope: scope}}
}

func BuiltinFunctionValue(typ mdtype.Type, fn func(args []Value) (Value, error)) Value {
	return Value{Type: typ, Tag: ValueFunction, Function: FunctionValue{Builtin: fn}}
}

func (v Value) String() string {
	switch v.Tag {
	case ValueFloat:
		return fmt.Sprintf("%g", v.Float)
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueFunction:
		return v.Type.String()
	default:
		return "<unknown>"
	}
}
