package system

import "math"

// MotionState is the avatar's contact state.
type MotionState int

const (
	StateAirborne MotionState = iota
	StateGrounded
)

func (s MotionState) String() string {
	if s == StateGrounded {
		return "grounded"
	}
	return "airborne"
}

// motionFactors scale the locomotion force and the braking force for a tick.
type motionFactors struct {
	motion  float64
	braking float64
}

// jumpState tracks time spent airborne. The timer is normalised by the jump
// time and saturates at 1.
type jumpState struct {
	state         MotionState
	airborneTimer float64
}

// step advances the machine by dt and returns the factors for this tick,
// plus whether the state changed.
func (j *jumpState) step(grounded bool, dt float64, cfg LocomotionConfig) (motionFactors, bool) {
	prev := j.state
	if grounded {
		j.state = StateGrounded
		j.airborneTimer = 0
		return motionFactors{motion: 1, braking: 1}, prev != j.state
	}

	j.state = StateAirborne
	if cfg.JumpTime > 0 {
		j.airborneTimer = math.Min(j.airborneTimer+dt/cfg.JumpTime, 1)
	} else {
		j.airborneTimer = 1
	}
	braking := math.Min(math.Pow(j.airborneTimer, cfg.JumpDragPower), cfg.JumpMaxBrakingFactor)
	return motionFactors{motion: cfg.AirMotionFactor, braking: braking}, prev != j.state
}
