package physics

import (
	"fmt"
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

type BodyMode int

const (
	BodyDynamic BodyMode = iota
	BodyStatic
)

// BodyDesc describes an axis-aligned box body. Rotation is always locked.
type BodyDesc struct {
	Mode        BodyMode
	Mass        float64
	HalfExtents mgl64.Vec3
	Position    mgl64.Vec3
}

type body struct {
	handle   BodyHandle
	mode     BodyMode
	invMass  float64
	half     mgl64.Vec3
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	force    mgl64.Vec3
	contacts []Contact
}

// World is a minimal rigid-body engine: semi-implicit Euler integration,
// gravity, and cube.BBox overlap resolution without restitution or friction.
type World struct {
	gravity mgl64.Vec3
	bodies  map[BodyHandle]*body
	order   []*body
	next    BodyHandle
}

// NewWorld creates an empty world with the given gravity acceleration.
func NewWorld(gravity mgl64.Vec3) *World {
	return &World{
		gravity: gravity,
		bodies:  make(map[BodyHandle]*body),
	}
}

func (w *World) SetGravity(gravity mgl64.Vec3) {
	w.gravity = gravity
}

// CreateBody adds a body and returns its handle.
func (w *World) CreateBody(desc BodyDesc) (BodyHandle, error) {
	if w == nil {
		return 0, fmt.Errorf("physics: create body: %w", ErrUnknownBody)
	}
	for i := 0; i < 3; i++ {
		if desc.HalfExtents[i] <= 0 {
			return 0, fmt.Errorf("physics: create body: half extents %v: %w", desc.HalfExtents, ErrInvalidBody)
		}
	}
	b := &body{
		mode: desc.Mode,
		half: desc.HalfExtents,
		pos:  desc.Position,
	}
	if desc.Mode == BodyDynamic {
		if desc.Mass <= 0 {
			return 0, fmt.Errorf("physics: create body: mass %v: %w", desc.Mass, ErrInvalidBody)
		}
		b.invMass = 1 / desc.Mass
	}
	w.next++
	b.handle = w.next
	w.bodies[b.handle] = b
	w.order = append(w.order, b)
	return b.handle, nil
}

// RemoveBody deletes a body. Unknown handles are ignored.
func (w *World) RemoveBody(h BodyHandle) {
	if w == nil {
		return
	}
	b, ok := w.bodies[h]
	if !ok {
		return
	}
	delete(w.bodies, h)
	for i, o := range w.order {
		if o == b {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	if w == nil {
		return 0
	}
	return len(w.order)
}

func (w *World) Position(h BodyHandle) mgl64.Vec3 {
	if b := w.body(h); b != nil {
		return b.pos
	}
	return mgl64.Vec3{}
}

func (w *World) HalfExtents(h BodyHandle) mgl64.Vec3 {
	if b := w.body(h); b != nil {
		return b.half
	}
	return mgl64.Vec3{}
}

func (w *World) ApplyForce(h BodyHandle, force mgl64.Vec3) {
	if b := w.dynamic(h); b != nil {
		b.force = b.force.Add(force)
	}
}

func (w *World) ApplyImpulse(h BodyHandle, impulse mgl64.Vec3) {
	if b := w.dynamic(h); b != nil {
		b.vel = b.vel.Add(impulse.Mul(b.invMass))
	}
}

func (w *World) LinearVelocity(h BodyHandle) mgl64.Vec3 {
	if b := w.body(h); b != nil {
		return b.vel
	}
	return mgl64.Vec3{}
}

func (w *World) ContactEvents(h BodyHandle, out []Contact) []Contact {
	out = out[:0]
	if b := w.body(h); b != nil {
		out = append(out, b.contacts...)
	}
	return out
}

// Step integrates every dynamic body by dt, then resolves overlaps and
// records the contacts they produce. Accumulated forces are cleared.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	for _, b := range w.order {
		b.contacts = b.contacts[:0]
		if b.mode != BodyDynamic {
			continue
		}
		accel := w.gravity.Add(b.force.Mul(b.invMass))
		b.vel = b.vel.Add(accel.Mul(dt))
		b.pos = b.pos.Add(b.vel.Mul(dt))
		b.force = mgl64.Vec3{}
	}

	for i := 0; i < len(w.order); i++ {
		a := w.order[i]
		for j := i + 1; j < len(w.order); j++ {
			c := w.order[j]
			if a.invMass == 0 && c.invMass == 0 {
				continue
			}
			w.resolve(a, c)
		}
	}
}

// bbox is the body's world-space box.
func (b *body) bbox() cube.BBox {
	return cube.Box(-b.half[0], -b.half[1], -b.half[2], b.half[0], b.half[1], b.half[2]).Translate(b.pos)
}

// resolve separates a and b along the axis of least penetration and removes
// the approaching component of their relative velocity.
func (w *World) resolve(a, b *body) {
	ab, bb := a.bbox(), b.bbox()
	if !ab.IntersectsWith(bb) {
		return
	}

	var n mgl64.Vec3
	depth := math.Inf(1)
	for k := 0; k < 3; k++ {
		below := ab.Max()[k] - bb.Min()[k]
		above := bb.Max()[k] - ab.Min()[k]
		pen, dir := below, 1.0
		if above < below {
			pen, dir = above, -1
		}
		if pen < depth {
			depth = pen
			n = mgl64.Vec3{}
			n[k] = dir
		}
	}

	total := a.invMass + b.invMass
	a.pos = a.pos.Sub(n.Mul(depth * a.invMass / total))
	b.pos = b.pos.Add(n.Mul(depth * b.invMass / total))

	if approach := b.vel.Sub(a.vel).Dot(n); approach < 0 {
		j := -approach / total
		a.vel = a.vel.Sub(n.Mul(j * a.invMass))
		b.vel = b.vel.Add(n.Mul(j * b.invMass))
	}

	a.contacts = append(a.contacts, Contact{Normal: n.Mul(-1), Other: b.handle})
	b.contacts = append(b.contacts, Contact{Normal: n, Other: a.handle})
}

func (w *World) body(h BodyHandle) *body {
	if w == nil {
		return nil
	}
	return w.bodies[h]
}

func (w *World) dynamic(h BodyHandle) *body {
	b := w.body(h)
	if b == nil || b.mode != BodyDynamic {
		return nil
	}
	return b
}

var _ Engine = (*World)(nil)
