package system

import (
	"image/color"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/component"
	"github.com/milk9111/boomrig/ecs/entity"
	"github.com/milk9111/boomrig/physics"
	"github.com/milk9111/boomrig/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

var spawnPalette = []color.RGBA{
	colornames.Coral,
	colornames.Gold,
	colornames.Orchid,
	colornames.Skyblue,
	colornames.Tomato,
}

// SpawnerSystem drops a cube above the floor every Interval seconds at a
// random position within Spread of the origin.
type SpawnerSystem struct {
	space  *physics.World
	spec   prefabs.SpawnSpec
	bank   float64
	rng    *rand.Rand
	logger *zap.Logger
}

func NewSpawnerSystem(space *physics.World, spec prefabs.SpawnSpec, seed int64, logger *zap.Logger) *SpawnerSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpawnerSystem{
		space:  space,
		spec:   spec,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.Named("spawner"),
	}
}

func (s *SpawnerSystem) SetSpec(spec prefabs.SpawnSpec) {
	s.spec = spec
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if s == nil || s.space == nil || w == nil || s.spec.Interval <= 0 {
		return
	}

	s.bank += w.Timestep()
	for s.bank >= s.spec.Interval {
		s.bank -= s.spec.Interval

		pos := mgl64.Vec3{
			(s.rng.Float64() - 0.5) * s.spec.Spread,
			s.spec.Height,
			(s.rng.Float64() - 0.5) * s.spec.Spread,
		}
		box := component.Box{Color: spawnPalette[s.rng.Intn(len(spawnPalette))]}
		cube, err := entity.NewCube(w, s.space, pos, s.spec, box)
		if err != nil {
			s.logger.Warn("spawn cube", zap.Error(err))
			continue
		}
		s.logger.Debug("spawned cube", zap.Stringer("entity", cube), zap.Float64("x", pos.X()), zap.Float64("z", pos.Z()))
	}
}
