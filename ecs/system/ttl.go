package system

import (
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/physics"
)

// BodyRemover deletes bodies from a physics engine.
type BodyRemover interface {
	RemoveBody(physics.BodyHandle)
}

// TTLSystem counts TTL components down by the physics timestep and destroys
// expired entities together with their bodies.
type TTLSystem struct {
	bodies BodyRemover
}

func NewTTLSystem(bodies BodyRemover) *TTLSystem {
	return &TTLSystem{bodies: bodies}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Timestep()
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds > 0 {
			return
		}

		if body, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok && s.bodies != nil {
			s.bodies.RemoveBody(body.Handle)
		}
		w.DestroyEntity(e)
	})
}
