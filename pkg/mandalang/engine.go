// Package mandalang is the public surface of the Mandalang interpreter:
// a small interactive, strongly-typed, expression-oriented language with
// a persistent session of `let`/`type` definitions.
package mandalang

import (
	"context"
	"time"

	"github.com/ortfero/mandalang/internal/mdfragment"
	"github.com/ortfero/mandalang/internal/mdir"
	"github.com/ortfero/mandalang/internal/mdmodule"
	"github.com/ortfero/mandalang/internal/mdprelude"
	"github.com/ortfero/mandalang/internal/mdstore"
)

// Value is the result of evaluating an expression.
type Value = mdir.Value

// SymbolOrValue is the result of evaluating a top-level definition-or-
// expression line: either the Symbol a `let`/`type` definition bound, or
// a bare Value from a plain expression.
type SymbolOrValue = mdir.SymbolOrValue

// Engine is one running Mandalang session: a default module seeded with
// the prelude, ready to evaluate expressions and accumulate definitions.
type Engine struct {
	module *mdmodule.Module
}

// New creates an Engine with a fresh module imported from the prelude's
// exported scope.
func New() (*Engine, error) {
	module := mdmodule.New()
	if err := module.Import(mdprelude.Exported()); err != nil {
		return nil, err
	}
	return &Engine{module: module}, nil
}

// EvaluateExpression parses and evaluates source as a single expression,
// without binding any name or retaining it in the session.
func (e *Engine) EvaluateExpression(source string) (Value, error) {
	return e.module.EvaluateExpression(source)
}

// EvaluateDefinitionOrExpression parses and evaluates source as one
// top-level REPL line: a `let` definition, a `type` definition, or a
// bare expression. Definitions are bound into the session's globals.
func (e *Engine) EvaluateDefinitionOrExpression(source string) (SymbolOrValue, error) {
	return e.module.EvaluateDefinitionOrExpression(source)
}

// Redefine (re)binds name to value directly, bypassing parsing. Useful
// for host programs exposing their own values into the session.
func (e *Engine) Redefine(name string, value Value) *mdir.Symbol {
	return e.module.Redefine(name, value)
}

// Fragments returns the source lines the session has accepted as
// definitions so far, most recently accepted first.
func (e *Engine) Fragments() []*mdfragment.Fragment {
	return e.module.Fragments()
}

// SaveSession persists every fragment the engine has accepted so far
// into the SQLite database at dbPath, under the given session name.
// Fragments already present are left as is; only new ones are appended.
func (e *Engine) SaveSession(dbPath, session string) error {
	store, err := mdstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	existing, err := store.LoadSession(ctx, session)
	if err != nil {
		return err
	}
	saved := make(map[string]bool, len(existing))
	for _, f := range existing {
		saved[f.ID] = true
	}

	fragments := e.module.Fragments()
	for i := len(fragments) - 1; i >= 0; i-- {
		fragment := fragments[i]
		id := fragment.ID.String()
		if saved[id] {
			continue
		}
		if err := store.SaveFragment(ctx, session, id, fragment.Source, time.Now().UTC()); err != nil {
			return err
		}
	}
	return nil
}

// LoadSession replays every fragment previously saved under session from
// the SQLite database at dbPath, re-accepting each as a definition
// against this engine's current globals, in the order it was originally
// accepted. It returns the number of fragments replayed.
func (e *Engine) LoadSession(dbPath, session string) (int, error) {
	store, err := mdstore.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	saved, err := store.LoadSession(context.Background(), session)
	if err != nil {
		return 0, err
	}

	for i, fragment := range saved {
		if _, err := e.module.EvaluateDefinitionOrExpression(fragment.Source); err != nil {
			return i, err
		}
	}
	return len(saved), nil
}
