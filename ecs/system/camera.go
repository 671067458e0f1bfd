package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/common"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/input"
	"github.com/milk9111/boomrig/metrics"
	"go.uber.org/zap"
)

// CameraRigSystem rotates the camera boom from mouse motion. Yaw turns about
// world up, pitch about the boom's own X axis and stops at the configured
// bound.
type CameraRigSystem struct {
	cfg     CameraRigConfig
	reader  *ecs.EventReader
	boom    ecs.Entity
	logger  *zap.Logger
	metrics *metrics.Controller
}

func NewCameraRigSystem(w *ecs.World, cfg CameraRigConfig, logger *zap.Logger, m *metrics.Controller) (*CameraRigSystem, error) {
	if w == nil {
		return nil, fmt.Errorf("camera rig: %w", ecs.ErrNilWorld)
	}
	log := w.InputLog()
	if log == nil {
		return nil, fmt.Errorf("camera rig: %w", ecs.ErrNoInputLog)
	}
	reader, err := log.Register()
	if err != nil {
		return nil, fmt.Errorf("camera rig: register input reader: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CameraRigSystem{
		cfg:     cfg,
		reader:  reader,
		logger:  logger.Named("camera_rig"),
		metrics: m,
	}, nil
}

// SetBoom pins the boom entity. Without it the first boom-tagged entity is
// used.
func (cs *CameraRigSystem) SetBoom(e ecs.Entity) {
	cs.boom = e
}

func (cs *CameraRigSystem) SetConfig(cfg CameraRigConfig) {
	cs.cfg = cfg
}

func (cs *CameraRigSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Cursor().Hidden = true

	// First motion event wins; the rest of this tick's events are consumed.
	var (
		motion    input.Event
		hasMotion bool
	)
	log := w.InputLog()
	for _, evt := range log.Read(cs.reader) {
		if evt.Kind == input.KindMouseMoved {
			motion = evt
			hasMotion = true
			break
		}
	}
	cs.metrics.Backlog("camera_rig", log.Backlog(cs.reader))

	boom, ok := cs.resolveBoom(w)
	if !ok || !hasMotion {
		return
	}
	transform, ok := ecs.Get(w, boom, component.TransformComponent.Kind())
	if !ok {
		return
	}

	dt := w.Timestep()
	pitch := motion.DeltaY * cs.cfg.Sensitivity
	yaw := -motion.DeltaX * cs.cfg.Sensitivity

	rotation := transform.Orientation()
	clamp := PitchClampFactor(rotation, pitch, cs.cfg.MaxPitchDegrees)
	transform.Rotation = ComposeBoomRotation(rotation, pitch*clamp*dt, yaw*dt)
	if clamp == 0 {
		cs.logger.Debug("pitch clamped", zap.Stringer("boom", boom), zap.Float64("delta", pitch))
	}
}

func (cs *CameraRigSystem) resolveBoom(w *ecs.World) (ecs.Entity, bool) {
	if cs.boom.Valid() && ecs.Has(w, cs.boom, component.CameraBoomTagComponent.Kind()) {
		return cs.boom, true
	}
	boom, ok := w.First(component.CameraBoomTagComponent.Kind().ID())
	if ok {
		cs.boom = boom
	}
	return boom, ok
}

// BoomPitchDegrees decodes the pitch of a boom rotation. When the decoded
// Z angle passes 90 degrees the decomposition has flipped, so the X angle is
// mirrored by 180 degrees.
func BoomPitchDegrees(rotation mgl64.Quat) float64 {
	x, _, z := common.EulerXYZ(rotation)
	pitch := mgl64.RadToDeg(x)
	if math.Abs(z) > math.Pi/2 {
		if pitch < 0 {
			pitch += 180
		} else {
			pitch -= 180
		}
	}
	return pitch
}

// PitchClampFactor returns 0 when the boom is at or past maxPitchDegrees and
// pitchDelta would push it further out, 1 otherwise.
func PitchClampFactor(rotation mgl64.Quat, pitchDelta, maxPitchDegrees float64) float64 {
	const tolerance = 1e-9
	pitch := BoomPitchDegrees(rotation)
	if math.Abs(pitch) >= maxPitchDegrees-tolerance && common.SameSign(pitch, pitchDelta) {
		return 0
	}
	return 1
}

// ComposeBoomRotation applies yaw in world space and pitch in the rotated
// local space: yaw * rotation * pitch.
func ComposeBoomRotation(rotation mgl64.Quat, pitch, yaw float64) mgl64.Quat {
	pitchRot := mgl64.QuatRotate(pitch, common.WorldRight)
	yawRot := mgl64.QuatRotate(yaw, common.WorldUp)
	return yawRot.Mul(rotation).Mul(pitchRot).Normalize()
}
