package mdir

import (
	"github.com/ortfero/mandalang/internal/mderror"
	"github.com/ortfero/mandalang/internal/mdtype"
)

// Scope is a lexical scope: a flat name table plus a link to the
// enclosing scope. Lookups walk outward until a name is found or the
// chain is exhausted. Mandalang's evaluator runs single-threaded, so
// Scope carries no synchronization.
//
// FrameDepth is meaningful only for scopes created by a function
// literal (see NewFunctionScope): it records the activation-stack depth
// at which that function's own body is resolved, which the resolver uses
// to compute how many stack frames separate a parameter reference from
// the frame that owns it.
type Scope struct {
	outer      *Scope
	symbols    map[string]*Symbol
	FrameDepth uint
	IsFrame    bool
}

// NewScope creates a scope nested inside outer. outer may be nil for the
// module's global scope.
func NewScope(outer *Scope) *Scope {
	return &Scope{outer: outer, symbols: make(map[string]*Symbol)}
}

// NewFunctionScope creates a scope for a function literal's own body,
// recording frameDepth as described on Scope.FrameDepth.
func NewFunctionScope(outer *Scope, frameDepth uint) *Scope {
	return &Scope{outer: outer, symbols: make(map[string]*Symbol), FrameDepth: frameDepth, IsFrame: true}
}

// Outer returns the enclosing scope, or nil for the global scope.
func (s *Scope) Outer() *Scope { return s.outer }

// Define binds a new symbol in this scope, failing if the name already
// exists locally.
func (s *Scope) Define(symbol *Symbol) (*Symbol, error) {
	if _, exists := s.symbols[symbol.Name]; exists {
		return nil, mderror.WithDetails(mderror.DuplicatedName, 0, symbol.Name)
	}
	s.symbols[symbol.Name] = symbol
	return symbol, nil
}

// RedefineValue (re)binds name to a value, creating the symbol if absent
// and overwriting tag and value in place otherwise, matching the original
// engine's common-symbol-pool semantics for top-level `let` statements.
func (s *Scope) RedefineValue(name string, value Value) *Symbol {
	if existing, ok := s.symbols[name]; ok {
		existing.Tag = SymbolValue
		existing.Value = value
		return existing
	}
	created := NewValueSymbol(name, value)
	s.symbols[name] = created
	return created
}

// RedefineType (re)binds name to a type, analogous to RedefineValue.
func (s *Scope) RedefineType(name string, typ mdtype.Type) *Symbol {
	if existing, ok := s.symbols[name]; ok {
		existing.Tag = SymbolType
		existing.Type = typ
		return existing
	}
	created := NewTypeSymbol(name, typ)
	s.symbols[name] = created
	return created
}

// Find looks up name in this scope, then outward through enclosing scopes.
func (s *Scope) Find(name string) *Symbol {
	if found, ok := s.symbols[name]; ok {
		return found
	}
	if s.outer != nil {
		return s.outer.Find(name)
	}
	return nil
}

// FindLocal looks up name only in this scope, without consulting outer.
func (s *Scope) FindLocal(name string) *Symbol {
	return s.symbols[name]
}

// Import copies a specific set of names from other into this scope.
func (s *Scope) Import(other *Scope, names []string) error {
	for _, name := range names {
		found, ok := other.symbols[name]
		if !ok {
			return mderror.WithDetails(mderror.NameIsNotFoundToImport, 0, name)
		}
		if _, err := s.Define(found); err != nil {
			return err
		}
	}
	return nil
}

// ImportAll copies every name from other into this scope.
func (s *Scope) ImportAll(other *Scope) error {
	for _, symbol := range other.symbols {
		if _, err := s.Define(symbol); err != nil {
			return err
		}
	}
	return nil
}
