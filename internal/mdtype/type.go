// Package mdtype implements Mandalang's structural type system: a small,
// closed set of scalar tags plus composite function and vector types.
package mdtype

import (
	"fmt"
	"strings"

	"github.com/ortfero/mandalang/internal/config"
)

// Tag discriminates the kind of a Type.
type Tag int

const (
	FloatingPoint Tag = iota
	Integer
	Boolean
	Composite
)

// Type is a value type: either one of the three scalars or a pointer to a
// Composite describing a function or vector shape.
type Type struct {
	Tag       Tag
	Composite *CompositeType
}

// CompositeTag discriminates the two composite shapes.
type CompositeTag int

const (
	Function CompositeTag = iota
	Vector
)

// FunctionType describes a callable's result and fixed-arity parameters.
type FunctionType struct {
	Result     Type
	Arity      uint
	Parameters [config.MaxFunctionParameters]Type
}

// Equal reports structural equality between two FunctionTypes.
func (f FunctionType) Equal(other FunctionType) bool {
	if f.Arity != other.Arity {
		return false
	}
	if !f.Result.Equal(other.Result) {
		return false
	}
	for i := uint(0); i < f.Arity; i++ {
		if !f.Parameters[i].Equal(other.Parameters[i]) {
			return false
		}
	}
	return true
}

// CompositeType is the payload of a Composite Type: either a FunctionType
// or a vector's element Type.
type CompositeType struct {
	Tag      CompositeTag
	Function FunctionType
	Item     Type
}

// Equal reports structural equality between two composite types.
func (c *CompositeType) Equal(other *CompositeType) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Tag != other.Tag {
		return false
	}
	switch c.Tag {
	case Function:
		return c.Function.Equal(other.Function)
	case Vector:
		return c.Item.Equal(other.Item)
	default:
		return true
	}
}

// NewFunction builds a Type wrapping a FunctionType.
func NewFunction(result Type, parameters []Type) Type {
	ft := FunctionType{Result: result, Arity: uint(len(parameters))}
	copy(ft.Parameters[:], parameters)
	return Type{Tag: Composite, Composite: &CompositeType{Tag: Function, Function: ft}}
}

// NewVector builds a Type wrapping a vector element Type.
func NewVector(item Type) Type {
	return Type{Tag: Composite, Composite: &CompositeType{Tag: Vector, Item: item}}
}

// Equal reports structural equality: scalars compare by tag, composites
// compare recursively.
func (t Type) Equal(other Type) bool {
	if t.Tag != other.Tag {
		return false
	}
	if t.Tag == Composite {
		return t.Composite.Equal(other.Composite)
	}
	return true
}

func (t Type) String() string {
	switch t.Tag {
	case FloatingPoint:
		return "double"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case Composite:
		return t.Composite.String()
	default:
		return "unknown"
	}
}

func (c *CompositeType) String() string {
	if c == nil {
		return "unknown"
	}
	switch c.Tag {
	case Function:
		var b strings.Builder
		b.WriteString("fn (")
		for i := uint(0); i < c.Function.Arity; i++ {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Function.Parameters[i].String())
		}
		b.WriteString(") -> ")
		b.WriteString(c.Function.Result.String())
		return b.String()
	case Vector:
		return fmt.Sprintf("vector[%s]", c.Item.String())
	default:
		return "unknown"
	}
}

// Floating, Int, Bool are the prelude scalar types.
var (
	Floating = Type{Tag: FloatingPoint}
	Int      = Type{Tag: Integer}
	Bool     = Type{Tag: Boolean}
)
