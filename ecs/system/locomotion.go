package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/metrics"
	"github.com/milk9111/boomrig/physics"
	"go.uber.org/zap"
)

// LocomotionSystem drives the avatar's rigid body from input. Each tick it
// folds the input log into its accumulator, classifies ground contacts,
// advances the jump state machine and applies a camera-relative motion force
// plus a velocity-cancelling brake force.
type LocomotionSystem struct {
	cfg      LocomotionConfig
	reader   *ecs.EventReader
	input    inputAccumulator
	jump     jumpState
	contacts []physics.Contact

	avatar ecs.Entity
	camera ecs.Entity

	logger  *zap.Logger
	metrics *metrics.Controller
}

func NewLocomotionSystem(w *ecs.World, cfg LocomotionConfig, logger *zap.Logger, m *metrics.Controller) (*LocomotionSystem, error) {
	if w == nil {
		return nil, fmt.Errorf("locomotion: %w", ecs.ErrNilWorld)
	}
	if w.Physics() == nil {
		return nil, fmt.Errorf("locomotion: %w", ecs.ErrNoPhysics)
	}
	log := w.InputLog()
	if log == nil {
		return nil, fmt.Errorf("locomotion: %w", ecs.ErrNoInputLog)
	}
	reader, err := log.Register()
	if err != nil {
		return nil, fmt.Errorf("locomotion: register input reader: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocomotionSystem{
		cfg:      cfg,
		reader:   reader,
		contacts: make([]physics.Contact, 0, 8),
		logger:   logger.Named("locomotion"),
		metrics:  m,
	}, nil
}

// SetAvatar pins the controlled entity. Without it the first avatar-tagged
// entity is used.
func (ls *LocomotionSystem) SetAvatar(e ecs.Entity) {
	ls.avatar = e
}

// SetCamera pins the camera whose orientation steers movement. Without it
// the last camera in store order is used.
func (ls *LocomotionSystem) SetCamera(e ecs.Entity) {
	ls.camera = e
}

func (ls *LocomotionSystem) SetConfig(cfg LocomotionConfig) {
	ls.cfg = cfg
}

// State returns the current grounded/airborne state.
func (ls *LocomotionSystem) State() MotionState {
	return ls.jump.state
}

// AirborneTimer returns the normalised airborne time in [0,1].
func (ls *LocomotionSystem) AirborneTimer() float64 {
	return ls.jump.airborneTimer
}

// Direction returns the accumulated input as (x, jump, z).
func (ls *LocomotionSystem) Direction() mgl64.Vec3 {
	return mgl64.Vec3{ls.input.x, ls.input.y, ls.input.z}
}

func (ls *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	engine := w.Physics()
	if engine == nil {
		return
	}

	log := w.InputLog()
	for _, evt := range log.Read(ls.reader) {
		ls.input.apply(evt)
	}
	ls.metrics.Backlog("locomotion", log.Backlog(ls.reader))

	avatar, ok := ls.resolveAvatar(w)
	if !ok {
		return
	}
	body, ok := ecs.Get(w, avatar, component.RigidBodyComponent.Kind())
	if !ok || !body.Handle.Valid() {
		return
	}
	camera, ok := ls.resolveCamera(w)
	if !ok {
		return
	}
	cameraGlobal, ok := ecs.Get(w, camera, component.GlobalTransformComponent.Kind())
	if !ok {
		return
	}

	dt := w.Timestep()
	handle := body.Handle

	ls.contacts = engine.ContactEvents(handle, ls.contacts)
	grounded := classifyGround(ls.contacts, ls.cfg.groundMaxAngle())
	factors, changed := ls.jump.step(grounded, dt, ls.cfg)
	if changed {
		ls.logger.Debug("motion state changed",
			zap.Stringer("avatar", avatar),
			zap.Stringer("state", ls.jump.state),
			zap.Int("contacts", len(ls.contacts)))
		ls.metrics.Transition(ls.jump.state.String())
	}
	ls.metrics.Grounded(grounded)
	ls.metrics.AirborneTimer(ls.jump.airborneTimer)

	if grounded && ls.input.vertical() != 0 {
		engine.ApplyImpulse(handle, mgl64.Vec3{0, ls.input.vertical() * ls.cfg.JumpImpulse, 0})
		ls.metrics.Impulse()
	}

	engine.ApplyForce(handle, MotionForce(cameraGlobal, ls.input.horizontal(), ls.cfg.ForceMultiplier*factors.motion))
	engine.ApplyForce(handle, BrakeForce(engine.LinearVelocity(handle), dt, factors.braking, grounded))
}

// MotionForce maps a local input direction through the camera orientation,
// drops its vertical part and scales it.
func MotionForce(camera *component.GlobalTransform, direction mgl64.Vec3, scale float64) mgl64.Vec3 {
	force := camera.TransformDirection(direction)
	force[1] = 0
	return force.Mul(scale)
}

// BrakeForce returns the force that cancels velocity over one step, scaled
// by factor. It never opposes a fall: grounded it has no vertical part,
// airborne it may only push down.
func BrakeForce(velocity mgl64.Vec3, dt, factor float64, grounded bool) mgl64.Vec3 {
	if dt <= 0 {
		return mgl64.Vec3{}
	}
	brake := velocity.Mul(-factor / dt)
	if grounded {
		brake[1] = 0
	} else {
		brake[1] = math.Min(brake[1], 0)
	}
	return brake
}

func (ls *LocomotionSystem) resolveAvatar(w *ecs.World) (ecs.Entity, bool) {
	if ls.avatar.Valid() && ecs.Has(w, ls.avatar, component.AvatarTagComponent.Kind()) {
		return ls.avatar, true
	}
	avatar, ok := w.First(component.AvatarTagComponent.Kind().ID())
	if ok {
		ls.avatar = avatar
		ls.logger.Info("avatar resolved", zap.Stringer("avatar", avatar))
	}
	return avatar, ok
}

func (ls *LocomotionSystem) resolveCamera(w *ecs.World) (ecs.Entity, bool) {
	if ls.camera.Valid() && ecs.Has(w, ls.camera, component.CameraComponent.Kind()) {
		return ls.camera, true
	}
	camera, ok := w.Last(component.CameraComponent.Kind().ID())
	if ok {
		ls.camera = camera
	}
	return camera, ok
}
