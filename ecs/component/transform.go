package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's local position and rotation. Children are
// expressed in their parent's space.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func NewTransform(position mgl64.Vec3) *Transform {
	return &Transform{Position: position, Rotation: mgl64.QuatIdent()}
}

// Orientation returns the rotation, treating the zero quaternion as identity.
func (t *Transform) Orientation() mgl64.Quat {
	if t == nil || t.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

// Matrix returns the local-to-parent matrix.
func (t *Transform) Matrix() mgl64.Mat4 {
	if t == nil {
		return mgl64.Ident4()
	}
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Orientation().Mat4())
}

var TransformComponent = NewComponent[Transform]()

// GlobalTransform is the resolved local-to-world matrix, written by the
// propagation pass every tick.
type GlobalTransform struct {
	Matrix mgl64.Mat4
}

func (g *GlobalTransform) Position() mgl64.Vec3 {
	return g.Matrix.Col(3).Vec3()
}

// TransformDirection maps a local direction to world space, ignoring
// translation.
func (g *GlobalTransform) TransformDirection(v mgl64.Vec3) mgl64.Vec3 {
	return g.Matrix.Mul4x1(v.Vec4(0)).Vec3()
}

var GlobalTransformComponent = NewComponent[GlobalTransform]()
