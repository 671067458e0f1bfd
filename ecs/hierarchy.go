package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/boomrig/ecs/component"
)

var ErrParentCycle = errors.New("ecs: parent cycle")

// Parent links an entity's transform under another entity's world transform.
type Parent struct {
	Entity Entity
}

var ParentComponent = component.NewComponent[Parent]()

// SetParent parents child under parent, rejecting links that would close a
// cycle.
func SetParent(w *World, child, parent Entity) error {
	if !w.IsAlive(parent) {
		return fmt.Errorf("set parent %s: %w", parent, component.ErrEntityNotAlive)
	}
	for p := parent; p.Valid(); {
		if p == child {
			return fmt.Errorf("set parent %s under %s: %w", child, parent, ErrParentCycle)
		}
		link, ok := Get(w, p, ParentComponent.Kind())
		if !ok {
			break
		}
		p = link.Entity
	}
	return Add(w, child, ParentComponent.Kind(), &Parent{Entity: parent})
}

// Hierarchy returns entities holding the component in top-down order:
// every entity appears after its parent. Entities whose parent is dead or
// lacks the component are treated as roots.
func Hierarchy(w *World, id component.ComponentID) []Entity {
	members := w.Query(id)
	if len(members) == 0 {
		return nil
	}
	children := make(map[Entity][]Entity, len(members))
	roots := make([]Entity, 0, len(members))
	for _, e := range members {
		link, ok := Get(w, e, ParentComponent.Kind())
		if ok && w.HasComponent(link.Entity, id) {
			children[link.Entity] = append(children[link.Entity], e)
			continue
		}
		roots = append(roots, e)
	}

	out := make([]Entity, 0, len(members))
	queue := roots
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		out = append(out, e)
		queue = append(queue, children[e]...)
	}
	return out
}
