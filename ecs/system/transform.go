package system

import (
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"go.uber.org/zap"
)

// TransformSystem resolves GlobalTransform for every transformed entity,
// parents before children. A child's world matrix is its parent's world
// matrix times its own local matrix.
type TransformSystem struct {
	logger *zap.Logger
}

func NewTransformSystem(logger *zap.Logger) *TransformSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransformSystem{logger: logger.Named("transform")}
}

func (ts *TransformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range ecs.Hierarchy(w, component.TransformComponent.Kind().ID()) {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		world := transform.Matrix()
		if link, ok := ecs.Get(w, e, ecs.ParentComponent.Kind()); ok {
			if parent, ok := ecs.Get(w, link.Entity, component.GlobalTransformComponent.Kind()); ok {
				world = parent.Matrix.Mul4(world)
			}
		}

		if global, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
			global.Matrix = world
			continue
		}
		if err := ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Matrix: world}); err != nil {
			ts.logger.Warn("add global transform", zap.Stringer("entity", e), zap.Error(err))
		}
	}
}
