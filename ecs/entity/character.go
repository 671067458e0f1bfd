package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/physics"
	"github.com/milk9111/boomrig/prefabs"
)

// Character is the avatar rig: the avatar body, the boom parented to it and
// the camera parented to the boom.
type Character struct {
	Avatar ecs.Entity
	Boom   ecs.Entity
	Camera ecs.Entity
}

// NewCharacter builds the avatar with a rotation-locked dynamic body, a
// camera boom at BoomHeight above it and a camera CameraDistance behind the
// boom.
func NewCharacter(w *ecs.World, space *physics.World, spec prefabs.SceneSpec) (Character, error) {
	if space == nil {
		return Character{}, fmt.Errorf("character: %w", ecs.ErrNoPhysics)
	}

	avatarSpec := spec.Avatar
	handle, err := space.CreateBody(physics.BodyDesc{
		Mode:        physics.BodyDynamic,
		Mass:        avatarSpec.Mass,
		HalfExtents: avatarSpec.HalfExtents.Vec3(),
		Position:    avatarSpec.Position.Vec3(),
	})
	if err != nil {
		return Character{}, fmt.Errorf("character: create body: %w", err)
	}

	avatar := w.CreateEntity()
	if err := ecs.Add(w, avatar, component.AvatarTagComponent.Kind(), &component.AvatarTag{}); err != nil {
		return Character{}, fmt.Errorf("character: add avatar tag: %w", err)
	}
	if err := ecs.Add(w, avatar, component.TransformComponent.Kind(), component.NewTransform(avatarSpec.Position.Vec3())); err != nil {
		return Character{}, fmt.Errorf("character: add transform: %w", err)
	}
	if err := ecs.Add(w, avatar, component.RigidBodyComponent.Kind(), &component.RigidBody{Handle: handle}); err != nil {
		return Character{}, fmt.Errorf("character: add rigid body: %w", err)
	}
	if err := ecs.Add(w, avatar, component.BoxComponent.Kind(), &component.Box{
		HalfExtents: avatarSpec.HalfExtents.Vec3(),
		Color:       avatarSpec.Color.RGBA8(),
	}); err != nil {
		return Character{}, fmt.Errorf("character: add box: %w", err)
	}

	boom := w.CreateEntity()
	if err := ecs.Add(w, boom, component.CameraBoomTagComponent.Kind(), &component.CameraBoomTag{}); err != nil {
		return Character{}, fmt.Errorf("character: add boom tag: %w", err)
	}
	if err := ecs.Add(w, boom, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{0, spec.BoomHeight, 0})); err != nil {
		return Character{}, fmt.Errorf("character: add boom transform: %w", err)
	}
	if err := ecs.SetParent(w, boom, avatar); err != nil {
		return Character{}, fmt.Errorf("character: parent boom: %w", err)
	}

	camera, err := NewCamera(w, boom, mgl64.Vec3{0, 0, spec.CameraDistance})
	if err != nil {
		return Character{}, err
	}

	return Character{Avatar: avatar, Boom: boom, Camera: camera}, nil
}

// NewCamera builds a camera at offset in parent's space. A zero parent
// leaves the camera unparented.
func NewCamera(w *ecs.World, parent ecs.Entity, offset mgl64.Vec3) (ecs.Entity, error) {
	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		FovY: mgl64.DegToRad(60),
		Near: 0.1,
		Far:  1000,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), component.NewTransform(offset)); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if parent.Valid() {
		if err := ecs.SetParent(w, camera, parent); err != nil {
			return 0, fmt.Errorf("camera: parent: %w", err)
		}
	}
	return camera, nil
}
