// Package physics defines the boundary the controllers use to drive rigid
// bodies, plus a small AABB engine that satisfies it.
package physics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrUnknownBody = errors.New("physics: unknown body")
	ErrInvalidBody = errors.New("physics: invalid body description")
)

// BodyHandle is an opaque reference to a body owned by an engine. The zero
// handle never refers to a body.
type BodyHandle uint32

func (h BodyHandle) Valid() bool {
	return h != 0
}

// Contact is one contact produced by the last step. Normal is a unit vector
// pointing from Other toward the queried body.
type Contact struct {
	Normal mgl64.Vec3
	Other  BodyHandle
}

// Engine is the subset of a physics engine the controllers talk to. Forces
// last for a single step; impulses change velocity immediately.
type Engine interface {
	ApplyForce(body BodyHandle, force mgl64.Vec3)
	ApplyImpulse(body BodyHandle, impulse mgl64.Vec3)
	LinearVelocity(body BodyHandle) mgl64.Vec3
	// ContactEvents appends the body's current contacts to out[:0] and
	// returns the result.
	ContactEvents(body BodyHandle, out []Contact) []Contact
}
