package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/physics"
)

// RigidBody links an entity to its body in the physics engine. The handle
// is assigned once when the entity is built.
type RigidBody struct {
	Handle physics.BodyHandle
}

var RigidBodyComponent = NewComponent[RigidBody]()

// Box is the debug-view footprint of a body.
type Box struct {
	HalfExtents mgl64.Vec3
	Color       color.RGBA
}

var BoxComponent = NewComponent[Box]()
