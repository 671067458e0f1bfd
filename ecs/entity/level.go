package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/physics"
	"github.com/milk9111/boomrig/prefabs"
)

// NewFloor builds the static floor slab.
func NewFloor(w *ecs.World, space *physics.World, spec prefabs.BoxSpec) (ecs.Entity, error) {
	if space == nil {
		return 0, fmt.Errorf("floor: %w", ecs.ErrNoPhysics)
	}
	handle, err := space.CreateBody(physics.BodyDesc{
		Mode:        physics.BodyStatic,
		HalfExtents: spec.HalfExtents.Vec3(),
		Position:    spec.Position.Vec3(),
	})
	if err != nil {
		return 0, fmt.Errorf("floor: create body: %w", err)
	}
	return addBodyEntity(w, handle, spec.Position.Vec3(), component.Box{
		HalfExtents: spec.HalfExtents.Vec3(),
		Color:       spec.Color.RGBA8(),
	})
}

// NewCube builds a dynamic cube. A positive lifetime attaches a TTL.
func NewCube(w *ecs.World, space *physics.World, position mgl64.Vec3, spec prefabs.SpawnSpec, box component.Box) (ecs.Entity, error) {
	if space == nil {
		return 0, fmt.Errorf("cube: %w", ecs.ErrNoPhysics)
	}
	half := mgl64.Vec3{spec.HalfExtent, spec.HalfExtent, spec.HalfExtent}
	handle, err := space.CreateBody(physics.BodyDesc{
		Mode:        physics.BodyDynamic,
		Mass:        spec.Mass,
		HalfExtents: half,
		Position:    position,
	})
	if err != nil {
		return 0, fmt.Errorf("cube: create body: %w", err)
	}
	box.HalfExtents = half
	cube, err := addBodyEntity(w, handle, position, box)
	if err != nil {
		space.RemoveBody(handle)
		return 0, err
	}
	if err := ecs.Add(w, cube, component.SpawnedTagComponent.Kind(), &component.SpawnedTag{}); err != nil {
		return 0, fmt.Errorf("cube: add spawned tag: %w", err)
	}
	if spec.Lifetime > 0 {
		if err := ecs.Add(w, cube, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.Lifetime}); err != nil {
			return 0, fmt.Errorf("cube: add ttl: %w", err)
		}
	}
	return cube, nil
}

func addBodyEntity(w *ecs.World, handle physics.BodyHandle, position mgl64.Vec3, box component.Box) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(position)); err != nil {
		return 0, fmt.Errorf("body entity: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Handle: handle}); err != nil {
		return 0, fmt.Errorf("body entity: add rigid body: %w", err)
	}
	if err := ecs.Add(w, e, component.BoxComponent.Kind(), &box); err != nil {
		return 0, fmt.Errorf("body entity: add box: %w", err)
	}
	return e, nil
}
