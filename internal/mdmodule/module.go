// Package mdmodule ties the scanner/parser/resolver/type-solver/evaluator
// pipeline into a single persistent unit: a Module holds the globals a
// session accumulates across many accepted lines of source, and retains
// one Fragment (source text and identity) per accepted `let`/`type`
// definition.
package mdmodule

import (
	"github.com/ortfero/mandalang/internal/mderror"
	"github.com/ortfero/mandalang/internal/mdeval"
	"github.com/ortfero/mandalang/internal/mdfragment"
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/internal/mdparser"
	"github.com/ortfero/mandalang/internal/mdresolver"
	"github.com/ortfero/mandalang/internal/mdtype"
	"github.com/ortfero/mandalang/internal/mdtypesolver"
)

// Module is one Mandalang session: a growing global scope plus the
// fragments that back its definitions.
type Module struct {
	globals   *mdir.Scope
	fragments []*mdfragment.Fragment
}

// New creates an empty Module.
func New() *Module {
	return &Module{globals: mdir.NewScope(nil)}
}

// Globals exposes the module's global scope, mainly so a caller can list
// what is currently defined.
func (m *Module) Globals() *mdir.Scope {
	return m.globals
}

// Fragments returns the retained fragments in most-recently-accepted-first
// order, matching the original engine's push_front retention order.
func (m *Module) Fragments() []*mdfragment.Fragment {
	return m.fragments
}

// Import copies every name from other into the module's globals, failing
// if any name is already defined. Used once at startup to bring in
// internal/mdprelude's exported scope.
func (m *Module) Import(other *mdir.Scope) error {
	return m.globals.ImportAll(other)
}

// Redefine (re)binds name to value in the module's globals.
func (m *Module) Redefine(name string, value mdir.Value) *mdir.Symbol {
	return m.globals.RedefineValue(name, value)
}

// EvaluateExpression parses source as a single expression and evaluates
// it against the module's globals. The expression is not retained: no
// fragment is kept and no name is bound, matching the original engine's
// evaluate_expression (only accepted definitions retain a fragment).
func (m *Module) EvaluateExpression(source string) (mdir.Value, error) {
	parser := mdparser.New(source)
	node, err := parser.ParseExpression()
	if err != nil {
		return mdir.Value{}, err
	}
	if err := parser.ExpectEOF(); err != nil {
		return mdir.Value{}, err
	}
	return m.runExpression(node)
}

// EvaluateDefinitionOrExpression parses source as one top-level REPL
// line: a `let` definition, a `type` definition, or a bare expression.
// Definitions are evaluated and bound into globals, and their fragment is
// retained; a bare expression is evaluated and returned without being
// retained or bound to any name.
func (m *Module) EvaluateDefinitionOrExpression(source string) (mdir.SymbolOrValue, error) {
	parser := mdparser.New(source)
	parsed, err := parser.ParseDefinitionOrExpression()
	if err != nil {
		return mdir.SymbolOrValue{}, err
	}
	if err := parser.ExpectEOF(); err != nil {
		return mdir.SymbolOrValue{}, err
	}

	if parsed.Symbol == nil {
		value, err := m.runExpression(parsed.Expression)
		if err != nil {
			return mdir.SymbolOrValue{}, err
		}
		return mdir.SymbolOrValue{Value: value}, nil
	}

	fragment := mdfragment.New(source)

	switch parsed.Symbol.Tag {
	case mdir.SymbolExpression:
		return m.evaluateValueDefinition(fragment, parsed.Symbol)
	case mdir.SymbolTypeExpression:
		return m.evaluateTypeDefinition(fragment, parsed.Symbol)
	default:
		return mdir.SymbolOrValue{}, mderror.WithDetails(mderror.InvalidSymbolToEvaluate, 0, parsed.Symbol.Name)
	}
}

func (m *Module) evaluateValueDefinition(fragment *mdfragment.Fragment, symbol *mdir.Symbol) (mdir.SymbolOrValue, error) {
	value, err := m.runExpression(symbol.Expression)
	if err != nil {
		return mdir.SymbolOrValue{}, err
	}
	redefined := m.globals.RedefineValue(symbol.Name, value)
	m.fragments = append([]*mdfragment.Fragment{fragment}, m.fragments...)
	return mdir.SymbolOrValue{Symbol: redefined, IsSym: true}, nil
}

func (m *Module) evaluateTypeDefinition(fragment *mdfragment.Fragment, symbol *mdir.Symbol) (mdir.SymbolOrValue, error) {
	typ, err := m.runType(symbol.Expression)
	if err != nil {
		return mdir.SymbolOrValue{}, err
	}
	redefined := m.globals.RedefineType(symbol.Name, typ)
	m.fragments = append([]*mdfragment.Fragment{fragment}, m.fragments...)
	return mdir.SymbolOrValue{Symbol: redefined, IsSym: true}, nil
}

// runExpression resolves and type-solves expression against the module's
// globals, then evaluates it. Each call gets its own resolver, solver and
// evaluator: all three are stateless or carry only the state of the one
// expression being run, so there is nothing to share across calls.
func (m *Module) runExpression(expression *mdir.Node) (mdir.Value, error) {
	if err := mdresolver.New().ResolveExpression(m.globals, expression, 0); err != nil {
		return mdir.Value{}, err
	}
	if err := mdtypesolver.New().Solve(expression); err != nil {
		return mdir.Value{}, err
	}
	return mdeval.New().Evaluate(expression)
}

// runType resolves and type-solves expression as a type expression and
// returns the type it names, without evaluating it as a value.
func (m *Module) runType(expression *mdir.Node) (mdtype.Type, error) {
	if err := mdresolver.New().ResolveType(m.globals, expression); err != nil {
		return mdtype.Type{}, err
	}
	if err := mdtypesolver.New().SolveType(expression); err != nil {
		return mdtype.Type{}, err
	}
	return expression.Type, nil
}
