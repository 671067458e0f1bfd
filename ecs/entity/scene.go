package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/physics"
	"github.com/milk9111/boomrig/prefabs"
	"golang.org/x/image/colornames"
)

// Scene lists the entities the controllers are wired to.
type Scene struct {
	Floor ecs.Entity
	// Cube is dropped over the origin at build time, ahead of the spawner.
	Cube ecs.Entity
	Character
}

// BuildScene populates w with the floor, the character rig and one cube.
func BuildScene(w *ecs.World, space *physics.World, spec prefabs.SceneSpec) (*Scene, error) {
	if w == nil {
		return nil, fmt.Errorf("scene: %w", ecs.ErrNilWorld)
	}
	floor, err := NewFloor(w, space, spec.Floor)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	character, err := NewCharacter(w, space, spec)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	cube, err := NewCube(w, space, mgl64.Vec3{0, spec.Spawn.Height, 0}, spec.Spawn, component.Box{Color: colornames.Tomato})
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &Scene{Floor: floor, Cube: cube, Character: character}, nil
}
