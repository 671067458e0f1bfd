package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/physics"
	"github.com/milk9111/boomrig/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScene(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewWorld(mgl64.Vec3{0, -9.81, 0})
	spec := prefabs.DefaultTuning().Scene

	scene, err := BuildScene(w, space, spec)
	require.NoError(t, err)
	assert.Equal(t, 3, space.BodyCount())

	cubes := w.Query(component.SpawnedTagComponent.Kind().ID())
	require.Equal(t, []ecs.Entity{scene.Cube}, cubes)
	cubeBody, ok := ecs.Get(w, scene.Cube, component.RigidBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, spec.Spawn.Height, 0}, space.Position(cubeBody.Handle))

	avatar, ok := w.First(component.AvatarTagComponent.Kind().ID())
	require.True(t, ok)
	assert.Equal(t, scene.Avatar, avatar)

	body, ok := ecs.Get(w, scene.Avatar, component.RigidBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, spec.Avatar.Position.Vec3(), space.Position(body.Handle))

	boomParent, ok := ecs.Get(w, scene.Boom, ecs.ParentComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, scene.Avatar, boomParent.Entity)
	assert.True(t, ecs.Has(w, scene.Boom, component.CameraBoomTagComponent.Kind()))

	cameraParent, ok := ecs.Get(w, scene.Camera, ecs.ParentComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, scene.Boom, cameraParent.Entity)

	last, ok := w.Last(component.CameraComponent.Kind().ID())
	require.True(t, ok)
	assert.Equal(t, scene.Camera, last)

	floorBody, ok := ecs.Get(w, scene.Floor, component.RigidBodyComponent.Kind())
	require.True(t, ok)
	space.Step(1.0 / 60.0)
	assert.Equal(t, spec.Floor.Position.Vec3(), space.Position(floorBody.Handle), "floor is static")
}

func TestBuildSceneErrors(t *testing.T) {
	spec := prefabs.DefaultTuning().Scene

	_, err := BuildScene(nil, physics.NewWorld(mgl64.Vec3{}), spec)
	assert.ErrorIs(t, err, ecs.ErrNilWorld)

	_, err = BuildScene(ecs.NewWorld(), nil, spec)
	assert.ErrorIs(t, err, ecs.ErrNoPhysics)

	spec.Avatar.Mass = -1
	_, err = BuildScene(ecs.NewWorld(), physics.NewWorld(mgl64.Vec3{}), spec)
	assert.ErrorIs(t, err, physics.ErrInvalidBody)

	spec = prefabs.DefaultTuning().Scene
	spec.Spawn.HalfExtent = 0
	_, err = BuildScene(ecs.NewWorld(), physics.NewWorld(mgl64.Vec3{}), spec)
	assert.ErrorIs(t, err, physics.ErrInvalidBody)
}

func TestNewCube(t *testing.T) {
	w := ecs.NewWorld()
	space := physics.NewWorld(mgl64.Vec3{})

	cube, err := NewCube(w, space, mgl64.Vec3{0, 5, 0}, prefabs.SpawnSpec{HalfExtent: 0.5, Mass: 2, Lifetime: 3}, component.Box{})
	require.NoError(t, err)
	assert.True(t, ecs.Has(w, cube, component.SpawnedTagComponent.Kind()))
	assert.True(t, ecs.Has(w, cube, component.TTLComponent.Kind()))

	_, err = NewCube(w, space, mgl64.Vec3{}, prefabs.SpawnSpec{HalfExtent: 0, Mass: 1}, component.Box{})
	assert.ErrorIs(t, err, physics.ErrInvalidBody)
	assert.Equal(t, 1, space.BodyCount())
}
