package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/input"
	"github.com/milk9111/boomrig/physics"
)

var (
	ErrNilWorld    = errors.New("ecs: world is nil")
	ErrNoPhysics   = errors.New("ecs: physics engine not attached")
	ErrNoInputLog  = errors.New("ecs: input log not attached")
	ErrBadTimestep = errors.New("ecs: timestep must be positive")
)

// DefaultTimestep is the physics tick used until SetTimestep is called.
const DefaultTimestep = 1.0 / 60.0

// CursorLock is the pointer state requested by the simulation. The runner
// applies it to the window.
type CursorLock struct {
	Hidden bool
}

// World owns entities, component stores and the shared resources systems
// read each tick.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet

	physics  physics.Engine
	inputs   *EventLog[input.Event]
	timestep float64
	cursor   CursorLock
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		timestep: DefaultTimestep,
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	if w == nil {
		return 0
	}
	return w.entities.count()
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent stores value for e under the component id, replacing any
// previous value.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil {
		return ErrNilWorld
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	w.store(id, true).Set(e, value)
	return nil
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	return w.store(id, false).Remove(e)
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	v := w.store(id, false).Get(e)
	return v, v != nil
}

// SetPhysics attaches the physics engine controllers drive.
func (w *World) SetPhysics(engine physics.Engine) {
	if w == nil {
		return
	}
	w.physics = engine
}

// Physics returns the attached physics engine, if any.
func (w *World) Physics() physics.Engine {
	if w == nil {
		return nil
	}
	return w.physics
}

// SetInputLog attaches the input event log.
func (w *World) SetInputLog(log *EventLog[input.Event]) {
	if w == nil {
		return
	}
	w.inputs = log
}

// InputLog returns the attached input event log, if any.
func (w *World) InputLog() *EventLog[input.Event] {
	if w == nil {
		return nil
	}
	return w.inputs
}

// SetTimestep sets the physics delta time in seconds.
func (w *World) SetTimestep(dt float64) error {
	if w == nil {
		return ErrNilWorld
	}
	if dt <= 0 {
		return fmt.Errorf("%w: %v", ErrBadTimestep, dt)
	}
	w.timestep = dt
	return nil
}

// Timestep returns the physics delta time in seconds.
func (w *World) Timestep() float64 {
	if w == nil {
		return DefaultTimestep
	}
	return w.timestep
}

// Cursor returns the requested pointer state.
func (w *World) Cursor() *CursorLock {
	if w == nil {
		return nil
	}
	return &w.cursor
}
