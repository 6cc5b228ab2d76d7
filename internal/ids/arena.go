// File: internal/ids/arena.go
// Project: EC4X Engine
// Description: Generational dense-vector arena shared by every entity kind
// Version: 1.0.0
// Created: 2026-01-07

package ids

import "fmt"

// Slots are never reused: Create always appends, and a deleted slot stays
// dead, so a stale Id captured before the delete resolves to "not found".
// Delete bumps the slot's generation, but lookups do not consult it.
type entry[E any] struct {
	value      E
	generation uint32
	alive      bool
}

// Arena is a dense vector of entries plus a generation counter per slot,
// indexed by a raw integer key (the Id's underlying value, 1-based; 0 never
// resolves). It matches §4.1: "dense vector of entries + sparse ID->index map"
// — here the map is implicit because IDs are already array positions.
type Arena[Id ~uint32, E any] struct {
	entries []entry[E]
}

// NewArena returns an empty arena ready for Create calls.
func NewArena[Id ~uint32, E any]() *Arena[Id, E] {
	return &Arena[Id, E]{entries: make([]entry[E], 1)} // index 0 reserved, never issued
}

// Create inserts a new entity and returns its freshly minted Id.
func (a *Arena[Id, E]) Create(value E) Id {
	idx := uint32(len(a.entries))
	a.entries = append(a.entries, entry[E]{value: value, generation: 1, alive: true})
	return Id(idx)
}

// Get returns the entity for id and whether it is present and alive.
func (a *Arena[Id, E]) Get(id Id) (E, bool) {
	var zero E
	idx := uint32(id)
	if idx == 0 || int(idx) >= len(a.entries) {
		return zero, false
	}
	e := a.entries[idx]
	if !e.alive {
		return zero, false
	}
	return e.value, true
}

// MustGet panics if id does not resolve; reserved for invariants the caller
// has already checked (e.g. an id just returned by Create).
func (a *Arena[Id, E]) MustGet(id Id) E {
	v, ok := a.Get(id)
	if !ok {
		panic(fmt.Sprintf("ids: dangling reference %v", id))
	}
	return v
}

// Update replaces the stored value for a live id. Returns false if id is dead.
func (a *Arena[Id, E]) Update(id Id, value E) bool {
	idx := uint32(id)
	if idx == 0 || int(idx) >= len(a.entries) || !a.entries[idx].alive {
		return false
	}
	a.entries[idx].value = value
	return true
}

// Delete marks id dead and bumps its generation so old Id values never alias
// a future Create at the same slot (this arena never reclaims slot memory:
// slots are cheap uint32-keyed entries, not file descriptors).
func (a *Arena[Id, E]) Delete(id Id) bool {
	idx := uint32(id)
	if idx == 0 || int(idx) >= len(a.entries) || !a.entries[idx].alive {
		return false
	}
	a.entries[idx].alive = false
	a.entries[idx].generation++
	var zero E
	a.entries[idx].value = zero
	return true
}

// Exists reports whether id is currently live.
func (a *Arena[Id, E]) Exists(id Id) bool {
	_, ok := a.Get(id)
	return ok
}

// Len returns the number of live entries.
func (a *Arena[Id, E]) Len() int {
	n := 0
	for _, e := range a.entries {
		if e.alive {
			n++
		}
	}
	return n
}

// All calls fn for every live entry in ascending Id order (the fixed
// traversal order §3.2's determinism invariant and §5's RNG-draw ordering
// require).
func (a *Arena[Id, E]) All(fn func(Id, E)) {
	for idx := 1; idx < len(a.entries); idx++ {
		if a.entries[idx].alive {
			fn(Id(idx), a.entries[idx].value)
		}
	}
}

// Ids returns all live ids in ascending order.
func (a *Arena[Id, E]) Ids() []Id {
	out := make([]Id, 0, a.Len())
	for idx := 1; idx < len(a.entries); idx++ {
		if a.entries[idx].alive {
			out = append(out, Id(idx))
		}
	}
	return out
}

// Restore rebuilds an arena from a persisted snapshot: highWater is the
// largest id ever issued (dead or alive), and live maps each still-live id
// to its value. Used by the persistence load path to reconstruct an arena
// whose slot layout (and therefore whose future Create-assigned ids) matches
// the one that was saved — entities reference each other by id, so a
// reloaded arena must preserve dead slots as gaps rather than compacting
// them away.
func Restore[Id ~uint32, E any](highWater uint32, live map[uint32]E) *Arena[Id, E] {
	a := &Arena[Id, E]{entries: make([]entry[E], highWater+1)}
	for idx := uint32(1); idx <= highWater; idx++ {
		if v, ok := live[idx]; ok {
			a.entries[idx] = entry[E]{value: v, generation: 1, alive: true}
		} else {
			a.entries[idx] = entry[E]{generation: 1, alive: false}
		}
	}
	return a
}
