package ecs

import "github.com/milk9111/boomrig/ecs/component"

// Query returns live entities holding every listed component, ordered by the
// first component's store.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	first := w.store(ids[0], false)
	if first == nil {
		return nil
	}
	out := append([]Entity(nil), first.Entities()...)
	for _, id := range ids[1:] {
		next := w.store(id, false)
		if next == nil {
			return nil
		}
		kept := out[:0]
		for _, e := range out {
			if next.Has(e) {
				kept = append(kept, e)
			}
		}
		out = kept
	}
	alive := out[:0]
	for _, e := range out {
		if w.entities.isAlive(e) {
			alive = append(alive, e)
		}
	}
	return alive
}

// First returns the first live entity in store order holding the component.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	store := w.store(id, false)
	for _, e := range store.Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Last returns the last live entity in store order holding the component.
func (w *World) Last(id component.ComponentID) (Entity, bool) {
	ents := w.store(id, false).Entities()
	for i := len(ents) - 1; i >= 0; i-- {
		if w.entities.isAlive(ents[i]) {
			return ents[i], true
		}
	}
	return 0, false
}
