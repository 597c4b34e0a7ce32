// Package mdfragment records one accepted top-level line of Mandalang
// source and an identity for it. A module retains fragments for its
// accepted `let`/`type` definitions; the IR those lines produced is not
// held by the fragment and stays alive through the symbols and values
// that reference it.
package mdfragment

import "github.com/google/uuid"

// Fragment is one unit of retained source. The original engine backs a
// fragment with four bump-allocator pools (composite types, IR nodes,
// symbols, scopes) so the whole fragment can be torn down in one pass;
// under Go's garbage collector that bookkeeping is unnecessary; a
// Fragment only needs to keep the source text and an identity a store
// can key on.
type Fragment struct {
	ID     uuid.UUID
	Source string
}

// New creates a Fragment over source with a fresh identity.
func New(source string) *Fragment {
	return &Fragment{ID: uuid.New(), Source: source}
}
