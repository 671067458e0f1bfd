package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	TuningFile   = "tuning.yaml"
	BindingsFile = "bindings.yaml"
)

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CameraRigSpec struct {
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	MaxPitchDegrees  float64 `yaml:"max_pitch_degrees"`
}

type LocomotionSpec struct {
	ForceMultiplier float64 `yaml:"force_multiplier"`
}

type JumpSpec struct {
	Impulse               float64 `yaml:"impulse"`
	Time                  float64 `yaml:"time"`
	DragPower             float64 `yaml:"drag_power"`
	MaxBrakingFactor      float64 `yaml:"max_braking_factor"`
	AirMotionFactor       float64 `yaml:"air_motion_factor"`
	GroundMaxAngleDegrees float64 `yaml:"ground_max_angle_degrees"`
}

type PhysicsSpec struct {
	Timestep float64 `yaml:"timestep"`
	Gravity  float64 `yaml:"gravity"`
}

type BoxSpec struct {
	Position    Vec3Spec  `yaml:"position"`
	HalfExtents Vec3Spec  `yaml:"half_extents"`
	Mass        float64   `yaml:"mass"`
	Color       YAMLColor `yaml:"color"`
}

type SpawnSpec struct {
	Interval   float64 `yaml:"interval"`
	Height     float64 `yaml:"height"`
	Spread     float64 `yaml:"spread"`
	HalfExtent float64 `yaml:"half_extent"`
	Mass       float64 `yaml:"mass"`
	Lifetime   float64 `yaml:"lifetime"`
}

type SceneSpec struct {
	Floor          BoxSpec   `yaml:"floor"`
	Avatar         BoxSpec   `yaml:"avatar"`
	BoomHeight     float64   `yaml:"boom_height"`
	CameraDistance float64   `yaml:"camera_distance"`
	Spawn          SpawnSpec `yaml:"spawn"`
}

// TuningSpec holds every tunable constant of the controllers and the scene.
type TuningSpec struct {
	Name       string         `yaml:"name"`
	Camera     CameraRigSpec  `yaml:"camera"`
	Locomotion LocomotionSpec `yaml:"locomotion"`
	Jump       JumpSpec       `yaml:"jump"`
	Physics    PhysicsSpec    `yaml:"physics"`
	Scene      SceneSpec      `yaml:"scene"`
}

// LoadTuning reads a tuning file, fills zero fields with defaults and
// validates the result.
func LoadTuning(filename string) (*TuningSpec, error) {
	if filename == "" {
		filename = TuningFile
	}
	spec, err := LoadSpec[TuningSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// DefaultTuning returns the built-in constants without touching the disk.
func DefaultTuning() *TuningSpec {
	spec := &TuningSpec{Name: "builtin"}
	spec.applyDefaults()
	return spec
}

func (t *TuningSpec) applyDefaults() {
	if t.Camera.MouseSensitivity == 0 {
		t.Camera.MouseSensitivity = 0.2
	}
	if t.Camera.MaxPitchDegrees == 0 {
		t.Camera.MaxPitchDegrees = 20
	}
	if t.Locomotion.ForceMultiplier == 0 {
		t.Locomotion.ForceMultiplier = 600
	}
	if t.Jump.Impulse == 0 {
		t.Jump.Impulse = 1.5
	}
	if t.Jump.Time == 0 {
		t.Jump.Time = 0.6
	}
	if t.Jump.DragPower == 0 {
		t.Jump.DragPower = 2
	}
	if t.Jump.MaxBrakingFactor == 0 {
		t.Jump.MaxBrakingFactor = 0.4
	}
	if t.Jump.AirMotionFactor == 0 {
		t.Jump.AirMotionFactor = 0.2
	}
	if t.Jump.GroundMaxAngleDegrees == 0 {
		t.Jump.GroundMaxAngleDegrees = 45
	}
	if t.Physics.Timestep == 0 {
		t.Physics.Timestep = 1.0 / 60.0
	}
	if t.Physics.Gravity == 0 {
		t.Physics.Gravity = -9.81
	}

	s := &t.Scene
	if s.Floor.HalfExtents == (Vec3Spec{}) {
		s.Floor.HalfExtents = Vec3Spec{20, 0.2, 20}
	}
	if s.Floor.Color.Color == nil {
		s.Floor.Color.Color = colornames.Green
	}
	if s.Avatar.Position == (Vec3Spec{}) {
		s.Avatar.Position = Vec3Spec{-3, 2, -3}
	}
	if s.Avatar.HalfExtents == (Vec3Spec{}) {
		s.Avatar.HalfExtents = Vec3Spec{0.5, 1.5, 0.5}
	}
	if s.Avatar.Mass == 0 {
		s.Avatar.Mass = 1
	}
	if s.Avatar.Color.Color == nil {
		s.Avatar.Color.Color = colornames.Aquamarine
	}
	if s.BoomHeight == 0 {
		s.BoomHeight = 1.5
	}
	if s.CameraDistance == 0 {
		s.CameraDistance = 6
	}
	if s.Spawn.Interval == 0 {
		s.Spawn.Interval = 10
	}
	if s.Spawn.Height == 0 {
		s.Spawn.Height = 6
	}
	if s.Spawn.Spread == 0 {
		s.Spawn.Spread = 10
	}
	if s.Spawn.HalfExtent == 0 {
		s.Spawn.HalfExtent = 1
	}
	if s.Spawn.Mass == 0 {
		s.Spawn.Mass = 1
	}
}

// Validate rejects values the controllers cannot run with.
func (t *TuningSpec) Validate() error {
	switch {
	case t.Physics.Timestep <= 0:
		return fmt.Errorf("%w: physics.timestep %v", ErrInvalidTuning, t.Physics.Timestep)
	case t.Jump.Time <= 0:
		return fmt.Errorf("%w: jump.time %v", ErrInvalidTuning, t.Jump.Time)
	case t.Jump.MaxBrakingFactor < 0 || t.Jump.MaxBrakingFactor > 1:
		return fmt.Errorf("%w: jump.max_braking_factor %v not in [0,1]", ErrInvalidTuning, t.Jump.MaxBrakingFactor)
	case t.Jump.AirMotionFactor < 0 || t.Jump.AirMotionFactor > 1:
		return fmt.Errorf("%w: jump.air_motion_factor %v not in [0,1]", ErrInvalidTuning, t.Jump.AirMotionFactor)
	case t.Jump.GroundMaxAngleDegrees <= 0 || t.Jump.GroundMaxAngleDegrees >= 90:
		return fmt.Errorf("%w: jump.ground_max_angle_degrees %v not in (0,90)", ErrInvalidTuning, t.Jump.GroundMaxAngleDegrees)
	case t.Camera.MaxPitchDegrees <= 0 || t.Camera.MaxPitchDegrees >= 90:
		return fmt.Errorf("%w: camera.max_pitch_degrees %v not in (0,90)", ErrInvalidTuning, t.Camera.MaxPitchDegrees)
	case t.Scene.Avatar.Mass <= 0:
		return fmt.Errorf("%w: scene.avatar.mass %v", ErrInvalidTuning, t.Scene.Avatar.Mass)
	case t.Scene.Spawn.Interval < 0:
		return fmt.Errorf("%w: scene.spawn.interval %v", ErrInvalidTuning, t.Scene.Spawn.Interval)
	}
	return nil
}

// BindingsSpec maps action names to key names.
type BindingsSpec struct {
	Actions map[string][]string `yaml:"actions"`
}

func LoadBindings(filename string) (*BindingsSpec, error) {
	if filename == "" {
		filename = BindingsFile
	}
	spec, err := LoadSpec[BindingsSpec](filename)
	if err != nil {
		return nil, err
	}
	if len(spec.Actions) == 0 {
		return nil, fmt.Errorf("prefabs: %s: no actions bound", filename)
	}
	return &spec, nil
}

// Vec3Spec is a three element YAML sequence.
type Vec3Spec [3]float64

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// YAMLColor accepts "#RRGGBB", "#RRGGBBAA" or an SVG color name.
type YAMLColor struct {
	color.Color
}

// RGBA8 returns the color as color.RGBA, defaulting to white.
func (c YAMLColor) RGBA8() color.RGBA {
	if c.Color == nil {
		return colornames.White
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
