package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/input"
	"github.com/milk9111/boomrig/physics"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60.0

type appliedVec struct {
	body physics.BodyHandle
	v    mgl64.Vec3
}

// recordingEngine records every call the controllers make and serves
// scripted velocities and contacts.
type recordingEngine struct {
	forces   []appliedVec
	impulses []appliedVec
	velocity map[physics.BodyHandle]mgl64.Vec3
	contacts map[physics.BodyHandle][]physics.Contact
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{
		velocity: make(map[physics.BodyHandle]mgl64.Vec3),
		contacts: make(map[physics.BodyHandle][]physics.Contact),
	}
}

func (r *recordingEngine) ApplyForce(body physics.BodyHandle, force mgl64.Vec3) {
	r.forces = append(r.forces, appliedVec{body, force})
}

func (r *recordingEngine) ApplyImpulse(body physics.BodyHandle, impulse mgl64.Vec3) {
	r.impulses = append(r.impulses, appliedVec{body, impulse})
}

func (r *recordingEngine) LinearVelocity(body physics.BodyHandle) mgl64.Vec3 {
	return r.velocity[body]
}

func (r *recordingEngine) ContactEvents(body physics.BodyHandle, out []physics.Contact) []physics.Contact {
	return append(out[:0], r.contacts[body]...)
}

func (r *recordingEngine) ground(body physics.BodyHandle) {
	r.contacts[body] = []physics.Contact{{Normal: mgl64.Vec3{0, 1, 0}, Other: 99}}
}

func (r *recordingEngine) reset() {
	r.forces = nil
	r.impulses = nil
}

func newTestWorld(t *testing.T) (*ecs.World, *recordingEngine) {
	t.Helper()
	w := ecs.NewWorld()
	engine := newRecordingEngine()
	w.SetPhysics(engine)
	w.SetInputLog(ecs.NewEventLog[input.Event]())
	require.NoError(t, w.SetTimestep(testDT))
	return w, engine
}

func addAvatar(t *testing.T, w *ecs.World, handle physics.BodyHandle) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.AvatarTagComponent.Kind(), &component.AvatarTag{}))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Handle: handle}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{})))
	return e
}

// addCamera adds a camera whose world transform is the given rotation.
func addCamera(t *testing.T, w *ecs.World, rotation mgl64.Quat) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{}))
	require.NoError(t, ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Matrix: rotation.Mat4()}))
	return e
}

func addBoom(t *testing.T, w *ecs.World, rotation mgl64.Quat) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.CameraBoomTagComponent.Kind(), &component.CameraBoomTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Rotation: rotation}))
	return e
}

func push(w *ecs.World, events ...input.Event) {
	for _, evt := range events {
		w.InputLog().Push(evt)
	}
}

func testLocomotionConfig() LocomotionConfig {
	return LocomotionConfig{
		ForceMultiplier:       600,
		JumpImpulse:           1.5,
		JumpTime:              0.6,
		JumpDragPower:         2,
		JumpMaxBrakingFactor:  0.4,
		AirMotionFactor:       0.2,
		GroundMaxAngleDegrees: 45,
	}
}

func testCameraRigConfig() CameraRigConfig {
	return CameraRigConfig{Sensitivity: 0.2, MaxPitchDegrees: 20}
}

func assertVecInDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		require.InDelta(t, want[i], got[i], delta, "component %d of %v, want %v", i, got, want)
	}
}

func contactWithNormal(n mgl64.Vec3) physics.Contact {
	return physics.Contact{Normal: n, Other: 99}
}
