package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/physics"
	"github.com/stretchr/testify/assert"
)

func TestJumpStateStep(t *testing.T) {
	cfg := testLocomotionConfig()

	var j jumpState
	assert.Equal(t, StateAirborne, j.state, "starts airborne")

	f, changed := j.step(true, testDT, cfg)
	assert.True(t, changed)
	assert.Equal(t, motionFactors{motion: 1, braking: 1}, f)

	_, changed = j.step(true, testDT, cfg)
	assert.False(t, changed)

	f, changed = j.step(false, 0.3, cfg)
	assert.True(t, changed)
	assert.InDelta(t, 0.5, j.airborneTimer, 1e-12)
	assert.Equal(t, 0.2, f.motion)
	assert.InDelta(t, 0.25, f.braking, 1e-12)

	f, _ = j.step(false, 0.3, cfg)
	assert.Equal(t, 1.0, j.airborneTimer)
	assert.Equal(t, 0.4, f.braking, "braking capped by the max factor")

	f, _ = j.step(false, 10, cfg)
	assert.Equal(t, 1.0, j.airborneTimer, "timer saturates")
	assert.Equal(t, 0.4, f.braking)
}

func TestJumpStateZeroJumpTimeSaturates(t *testing.T) {
	cfg := testLocomotionConfig()
	cfg.JumpTime = 0

	var j jumpState
	j.step(false, testDT, cfg)
	assert.Equal(t, 1.0, j.airborneTimer)
}

func TestClassifyGround(t *testing.T) {
	maxAngle := mgl64.DegToRad(45)
	normalAt := func(deg float64) physics.Contact {
		r := mgl64.DegToRad(deg)
		return contactWithNormal(mgl64.Vec3{math.Sin(r), math.Cos(r), 0})
	}

	cases := []struct {
		name     string
		contacts []physics.Contact
		want     bool
	}{
		{"none", nil, false},
		{"flat", []physics.Contact{normalAt(0)}, true},
		{"slope_44", []physics.Contact{normalAt(44)}, true},
		{"slope_46", []physics.Contact{normalAt(46)}, false},
		{"ceiling", []physics.Contact{normalAt(180)}, false},
		{"wall_then_floor", []physics.Contact{normalAt(90), normalAt(10)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, classifyGround(c.contacts, maxAngle))
		})
	}
}
