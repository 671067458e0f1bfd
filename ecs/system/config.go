package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/prefabs"
)

// CameraRigConfig tunes the boom rotation.
type CameraRigConfig struct {
	Sensitivity     float64
	MaxPitchDegrees float64
}

// LocomotionConfig tunes the force model and the jump state machine.
type LocomotionConfig struct {
	ForceMultiplier       float64
	JumpImpulse           float64
	JumpTime              float64
	JumpDragPower         float64
	JumpMaxBrakingFactor  float64
	AirMotionFactor       float64
	GroundMaxAngleDegrees float64
}

func (c LocomotionConfig) groundMaxAngle() float64 {
	return mgl64.DegToRad(c.GroundMaxAngleDegrees)
}

func CameraRigConfigFromSpec(spec *prefabs.TuningSpec) CameraRigConfig {
	if spec == nil {
		spec = prefabs.DefaultTuning()
	}
	return CameraRigConfig{
		Sensitivity:     spec.Camera.MouseSensitivity,
		MaxPitchDegrees: spec.Camera.MaxPitchDegrees,
	}
}

func LocomotionConfigFromSpec(spec *prefabs.TuningSpec) LocomotionConfig {
	if spec == nil {
		spec = prefabs.DefaultTuning()
	}
	return LocomotionConfig{
		ForceMultiplier:       spec.Locomotion.ForceMultiplier,
		JumpImpulse:           spec.Jump.Impulse,
		JumpTime:              spec.Jump.Time,
		JumpDragPower:         spec.Jump.DragPower,
		JumpMaxBrakingFactor:  spec.Jump.MaxBrakingFactor,
		AirMotionFactor:       spec.Jump.AirMotionFactor,
		GroundMaxAngleDegrees: spec.Jump.GroundMaxAngleDegrees,
	}
}
