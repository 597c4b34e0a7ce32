// Package mdprelude seeds the set of names every Mandalang module starts
// with: the scalar type names, the two boolean literals, and a small set
// of builtin functions.
package mdprelude

import (
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/internal/mdtype"
)

// Exported builds the scope a fresh module imports from. It mirrors
// modules/prelude.hpp's `initialize`, plus min/max/abs builtins that
// exercise the evaluator's builtin-call path, which the original prelude
// never wires to anything concrete.
func Exported() *mdir.Scope {
	exported := mdir.NewScope(nil)
	exported.Define(mdir.NewTypeSymbol("integer", mdtype.Int))
	exported.Define(mdir.NewTypeSymbol("double", mdtype.Floating))
	exported.Define(mdir.NewTypeSymbol("boolean", mdtype.Bool))
	exported.Define(mdir.NewValueSymbol("false", mdir.BoolValue(false)))
	exported.Define(mdir.NewValueSymbol("true", mdir.BoolValue(true)))

	exported.Define(mdir.NewValueSymbol("max", mdir.BuiltinFunctionValue(
		mdtype.NewFunction(mdtype.Int, []mdtype.Type{mdtype.Int, mdtype.Int}), maxInt)))
	exported.Define(mdir.NewValueSymbol("min", mdir.BuiltinFunctionValue(
		mdtype.NewFunction(mdtype.Int, []mdtype.Type{mdtype.Int, mdtype.Int}), minInt)))
	exported.Define(mdir.NewValueSymbol("abs", mdir.BuiltinFunctionValue(
		mdtype.NewFunction(mdtype.Int, []mdtype.Type{mdtype.Int}), absInt)))

	return exported
}

func maxInt(args []mdir.Value) (mdir.Value, error) {
	if args[0].Int >= args[1].Int {
		return args[0], nil
	}
	return args[1], nil
}

func minInt(args []mdir.Value) (mdir.Value, error) {
	if args[0].Int <= args[1].Int {
		return args[0], nil
	}
	return args[1], nil
}

func absInt(args []mdir.Value) (mdir.Value, error) {
	v := args[0].Int
	if v < 0 {
		v = -v
	}
	return mdir.IntValue(v), nil
}
