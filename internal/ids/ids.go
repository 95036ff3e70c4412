// Package ids mints monotonic, type-tagged identifiers.
//
// Each entity kind (Player, Observer, Action, Object, Zone, Ability) gets
// its own Allocator so that ids never collide across kinds and every
// allocator can be iterated or compared ascending independently of the
// others.
package ids

import "fmt"

// ID is an opaque, comparable identifier minted by an Allocator[Kind].
//
// Two IDs are equal iff minted with the same ordinal from allocators of
// the same Kind; IDs from different Kinds are never compared to each
// other by the engine.
type ID[Kind any] struct {
	ordinal uint64
}

// Ordinal returns the zero-based minting order, for logging and tests only.
func (id ID[Kind]) Ordinal() uint64 {
	return id.ordinal
}

func (id ID[Kind]) String() string {
	var zero Kind
	return fmt.Sprintf("%T(%d)", zero, id.ordinal)
}

// Less orders IDs by mint order, giving a deterministic ascending iteration
// order over observers as required by the broadcast and replacement
// protocols.
func (id ID[Kind]) Less(other ID[Kind]) bool {
	return id.ordinal < other.ordinal
}

// Allocator mints strictly increasing IDs for a single Kind. The zero value
// is ready to use and starts at ordinal 0.
type Allocator[Kind any] struct {
	next uint64
}

// NewAllocator returns an Allocator ready to mint starting at ordinal 0.
func NewAllocator[Kind any]() *Allocator[Kind] {
	return &Allocator[Kind]{}
}

// Next mints a fresh ID, never reused for the lifetime of this allocator.
func (a *Allocator[Kind]) Next() ID[Kind] {
	id := ID[Kind]{ordinal: a.next}
	a.next++
	return id
}
