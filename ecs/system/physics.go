package system

import (
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/metrics"
	"github.com/milk9111/boomrig/physics"
)

// PhysicsSystem steps the physics world by the world timestep and copies
// body positions back onto root transforms. Rotation is left alone: bodies
// have locked rotation.
type PhysicsSystem struct {
	space   *physics.World
	metrics *metrics.Controller
}

func NewPhysicsSystem(space *physics.World, m *metrics.Controller) *PhysicsSystem {
	return &PhysicsSystem{space: space, metrics: m}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}

	ps.space.Step(w.Timestep())
	ps.syncTransforms(w)
	ps.metrics.Bodies(ps.space.BodyCount())
	ps.metrics.Tick()
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.RigidBody, transform *component.Transform) {
		if ecs.Has(w, e, ecs.ParentComponent.Kind()) {
			return
		}
		transform.Position = ps.space.Position(body.Handle)
	})
}
