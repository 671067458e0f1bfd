package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocomotion(t *testing.T, w *ecs.World) *LocomotionSystem {
	t.Helper()
	ls, err := NewLocomotionSystem(w, testLocomotionConfig(), nil, nil)
	require.NoError(t, err)
	return ls
}

func TestNewLocomotionSystemErrors(t *testing.T) {
	_, err := NewLocomotionSystem(nil, testLocomotionConfig(), nil, nil)
	assert.ErrorIs(t, err, ecs.ErrNilWorld)

	w := ecs.NewWorld()
	w.SetInputLog(ecs.NewEventLog[input.Event]())
	_, err = NewLocomotionSystem(w, testLocomotionConfig(), nil, nil)
	assert.ErrorIs(t, err, ecs.ErrNoPhysics)

	w = ecs.NewWorld()
	w.SetPhysics(newRecordingEngine())
	_, err = NewLocomotionSystem(w, testLocomotionConfig(), nil, nil)
	assert.ErrorIs(t, err, ecs.ErrNoInputLog)
}

func TestLocomotionForceFollowsCameraBasis(t *testing.T) {
	cases := []struct {
		name   string
		camera mgl64.Quat
		action string
		want   mgl64.Vec3
	}{
		{"left_identity", mgl64.QuatIdent(), input.ActionLeft, mgl64.Vec3{600, 0, 0}},
		{"right_identity", mgl64.QuatIdent(), input.ActionRight, mgl64.Vec3{-600, 0, 0}},
		{"forward_identity", mgl64.QuatIdent(), input.ActionForward, mgl64.Vec3{0, 0, -600}},
		{"left_yaw_90", mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}), input.ActionLeft, mgl64.Vec3{0, 0, -600}},
		// Pitch tilts the camera but the force stays planar.
		{"forward_pitched", mgl64.QuatRotate(mgl64.DegToRad(-20), mgl64.Vec3{1, 0, 0}), input.ActionForward, mgl64.Vec3{0, 0, -600 * math.Cos(mgl64.DegToRad(20))}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, engine := newTestWorld(t)
			addAvatar(t, w, 1)
			addCamera(t, w, c.camera)
			engine.ground(1)
			ls := newLocomotion(t, w)

			push(w, input.ActionPressed(c.action))
			ls.Update(w)

			require.Len(t, engine.forces, 2, "motion force then brake force")
			motion := engine.forces[0].v
			assert.Equal(t, 0.0, motion.Y())
			assertVecInDelta(t, c.want, motion, 1e-9)
			assert.Equal(t, mgl64.Vec3{}, engine.forces[1].v, "at rest there is nothing to brake")
		})
	}
}

func TestLocomotionJumpHasNoDebounce(t *testing.T) {
	w, engine := newTestWorld(t)
	addAvatar(t, w, 1)
	addCamera(t, w, mgl64.QuatIdent())
	engine.ground(1)
	ls := newLocomotion(t, w)

	push(w, input.ActionPressed(input.ActionJump))
	const ticks = 5
	for i := 0; i < ticks; i++ {
		ls.Update(w)
	}

	require.Len(t, engine.impulses, ticks, "one impulse per grounded tick while held")
	for _, imp := range engine.impulses {
		assert.Equal(t, mgl64.Vec3{0, 1.5, 0}, imp.v)
	}

	push(w, input.ActionReleased(input.ActionJump))
	engine.reset()
	ls.Update(w)
	assert.Empty(t, engine.impulses)
}

func TestLocomotionNoImpulseWhileAirborne(t *testing.T) {
	w, engine := newTestWorld(t)
	addAvatar(t, w, 1)
	addCamera(t, w, mgl64.QuatIdent())
	ls := newLocomotion(t, w)

	push(w, input.ActionPressed(input.ActionJump))
	ls.Update(w)

	assert.Empty(t, engine.impulses)
	assert.Equal(t, StateAirborne, ls.State())
}

func TestLocomotionAirControlDecay(t *testing.T) {
	w, engine := newTestWorld(t)
	addAvatar(t, w, 1)
	addCamera(t, w, mgl64.QuatIdent())
	ls := newLocomotion(t, w)

	push(w, input.ActionPressed(input.ActionLeft))
	ls.Update(w)

	assert.InDelta(t, testDT/0.6, ls.AirborneTimer(), 1e-12)
	assertVecInDelta(t, mgl64.Vec3{600 * 0.2, 0, 0}, engine.forces[0].v, 1e-9)

	// Saturate the timer: braking is capped by the max factor.
	for i := 0; i < 60; i++ {
		ls.Update(w)
	}
	assert.Equal(t, 1.0, ls.AirborneTimer())

	engine.velocity[1] = mgl64.Vec3{6, 3, 0}
	engine.reset()
	ls.Update(w)
	brake := engine.forces[1].v
	assert.InDelta(t, -0.4*6/testDT, brake.X(), 1e-9)
	assert.InDelta(t, -0.4*3/testDT, brake.Y(), 1e-9)
}

func TestLocomotionGroundedRestoresFullControl(t *testing.T) {
	w, engine := newTestWorld(t)
	addAvatar(t, w, 1)
	addCamera(t, w, mgl64.QuatIdent())
	ls := newLocomotion(t, w)

	for i := 0; i < 10; i++ {
		ls.Update(w)
	}
	require.Equal(t, StateAirborne, ls.State())
	require.Greater(t, ls.AirborneTimer(), 0.0)

	engine.ground(1)
	ls.Update(w)
	assert.Equal(t, StateGrounded, ls.State())
	assert.Equal(t, 0.0, ls.AirborneTimer())
}

func TestLocomotionSteepContactIsNotGround(t *testing.T) {
	w, engine := newTestWorld(t)
	addAvatar(t, w, 1)
	addCamera(t, w, mgl64.QuatIdent())
	ls := newLocomotion(t, w)

	wall := mgl64.Vec3{math.Sin(mgl64.DegToRad(60)), math.Cos(mgl64.DegToRad(60)), 0}
	engine.contacts[1] = append(engine.contacts[1], contactWithNormal(wall))
	ls.Update(w)

	assert.Equal(t, StateAirborne, ls.State())
}

func TestLocomotionInputRoundTrip(t *testing.T) {
	w, _ := newTestWorld(t)
	ls := newLocomotion(t, w)

	actions := []string{input.ActionForward, input.ActionBackward, input.ActionLeft, input.ActionRight, input.ActionJump}
	for _, a := range actions {
		push(w, input.ActionPressed(a))
	}
	ls.Update(w)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, ls.Direction(), "opposing axes cancel")

	push(w, input.ActionReleased(input.ActionBackward), input.ActionReleased(input.ActionRight))
	ls.Update(w)
	assert.Equal(t, mgl64.Vec3{1, 1, -1}, ls.Direction())

	for _, a := range []string{input.ActionForward, input.ActionLeft, input.ActionJump} {
		push(w, input.ActionReleased(a))
	}
	ls.Update(w)
	assert.Equal(t, mgl64.Vec3{}, ls.Direction(), "every press matched by a release")
}

func TestLocomotionIgnoresUnknownActionsAndMotion(t *testing.T) {
	w, _ := newTestWorld(t)
	ls := newLocomotion(t, w)

	push(w, input.ActionPressed("Crouch"), input.MouseMoved(4, 5))
	ls.Update(w)
	assert.Equal(t, mgl64.Vec3{}, ls.Direction())
}

func TestLocomotionDrivesOnlyTheFirstAvatar(t *testing.T) {
	w, engine := newTestWorld(t)
	first := addAvatar(t, w, 1)
	addAvatar(t, w, 2)
	addCamera(t, w, mgl64.QuatIdent())
	engine.ground(1)
	engine.ground(2)
	ls := newLocomotion(t, w)

	push(w, input.ActionPressed(input.ActionLeft), input.ActionPressed(input.ActionJump))
	ls.Update(w)
	ls.Update(w)

	require.NotEmpty(t, engine.forces)
	for _, f := range engine.forces {
		assert.EqualValues(t, 1, f.body)
	}
	for _, imp := range engine.impulses {
		assert.EqualValues(t, 1, imp.body)
	}

	// Destroying the pinned avatar hands control to the next one.
	w.DestroyEntity(first)
	engine.reset()
	ls.Update(w)
	require.NotEmpty(t, engine.forces)
	assert.EqualValues(t, 2, engine.forces[0].body)
}

func TestLocomotionUsesTheLastCamera(t *testing.T) {
	w, engine := newTestWorld(t)
	addAvatar(t, w, 1)
	addCamera(t, w, mgl64.QuatIdent())
	addCamera(t, w, mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0}))
	engine.ground(1)
	ls := newLocomotion(t, w)

	push(w, input.ActionPressed(input.ActionLeft))
	ls.Update(w)

	assertVecInDelta(t, mgl64.Vec3{-600, 0, 0}, engine.forces[0].v, 1e-9)
}

func TestLocomotionWithoutAvatarOrCameraIsNoop(t *testing.T) {
	t.Run("no_avatar", func(t *testing.T) {
		w, engine := newTestWorld(t)
		addCamera(t, w, mgl64.QuatIdent())
		ls := newLocomotion(t, w)

		push(w, input.ActionPressed(input.ActionLeft))
		ls.Update(w)

		assert.Empty(t, engine.forces)
		assert.Empty(t, engine.impulses)
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, ls.Direction(), "input is still aggregated")
	})

	t.Run("no_camera", func(t *testing.T) {
		w, engine := newTestWorld(t)
		addAvatar(t, w, 1)
		engine.ground(1)
		ls := newLocomotion(t, w)

		push(w, input.ActionPressed(input.ActionJump))
		ls.Update(w)

		assert.Empty(t, engine.forces)
		assert.Empty(t, engine.impulses)
	})
}

func TestBrakeForce(t *testing.T) {
	cases := []struct {
		name     string
		velocity mgl64.Vec3
		factor   float64
		grounded bool
		want     mgl64.Vec3
	}{
		{"grounded_drops_vertical", mgl64.Vec3{1, 5, -2}, 1, true, mgl64.Vec3{-1 / testDT, 0, 2 / testDT}},
		{"airborne_rising_pushes_down", mgl64.Vec3{0, 2, 0}, 0.5, false, mgl64.Vec3{0, -1 / testDT, 0}},
		{"airborne_falling_not_slowed", mgl64.Vec3{0, -2, 0}, 0.5, false, mgl64.Vec3{}},
		{"zero_factor", mgl64.Vec3{3, 3, 3}, 0, false, mgl64.Vec3{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertVecInDelta(t, c.want, BrakeForce(c.velocity, testDT, c.factor, c.grounded), 1e-9)
		})
	}

	assert.Equal(t, mgl64.Vec3{}, BrakeForce(mgl64.Vec3{1, 1, 1}, 0, 1, true))
}
