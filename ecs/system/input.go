package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/input"
)

// inputAccumulator folds press/release events into direction scalars. A
// release subtracts exactly what the press added, so a lost release leaves
// the axis offset until the next matching event.
type inputAccumulator struct {
	x, y, z float64
}

type axisContribution struct {
	x, y, z float64
}

var actionAxes = map[string]axisContribution{
	input.ActionForward:  {z: -1},
	input.ActionBackward: {z: 1},
	input.ActionRight:    {x: -1},
	input.ActionLeft:     {x: 1},
	input.ActionJump:     {y: 1},
}

// apply reports whether the event changed the accumulator.
func (a *inputAccumulator) apply(evt input.Event) bool {
	var sign float64
	switch evt.Kind {
	case input.KindActionPressed:
		sign = 1
	case input.KindActionReleased:
		sign = -1
	default:
		return false
	}
	axis, ok := actionAxes[evt.Action]
	if !ok {
		return false
	}
	a.x += sign * axis.x
	a.y += sign * axis.y
	a.z += sign * axis.z
	return true
}

// horizontal returns the planar direction with Y fixed at zero.
func (a *inputAccumulator) horizontal() mgl64.Vec3 {
	return mgl64.Vec3{a.x, 0, a.z}
}

func (a *inputAccumulator) vertical() float64 {
	return a.y
}
