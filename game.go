package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/boomrig/ecs"
	"github.com/milk9111/boomrig/ecs/entity"
	"github.com/milk9111/boomrig/ecs/system"
	"github.com/milk9111/boomrig/input"
	"github.com/milk9111/boomrig/metrics"
	"github.com/milk9111/boomrig/physics"
	"github.com/milk9111/boomrig/prefabs"
	"go.uber.org/zap"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	spawnSeed = 1
)

type GameOptions struct {
	TuningFile   string
	BindingsFile string
	Watch        bool
	Debug        bool
	Logger       *zap.Logger
	Metrics      *metrics.Controller
}

type Game struct {
	opts GameOptions

	world     *ecs.World
	space     *physics.World
	scene     *entity.Scene
	scheduler *ecs.Scheduler
	keyboard  *keyboardSource

	cameraRig  *system.CameraRigSystem
	locomotion *system.LocomotionSystem
	spawner    *system.SpawnerSystem

	watcher *prefabs.Watcher
	logger  *zap.Logger
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TuningFile == "" {
		opts.TuningFile = prefabs.TuningFile
	}
	if opts.BindingsFile == "" {
		opts.BindingsFile = prefabs.BindingsFile
	}

	tuning, err := prefabs.LoadTuning(opts.TuningFile)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	bindingsSpec, err := prefabs.LoadBindings(opts.BindingsFile)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	bindings, err := input.NewBindings(bindingsSpec.Actions)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	w := ecs.NewWorld()
	space := physics.NewWorld(mgl64.Vec3{0, tuning.Physics.Gravity, 0})
	w.SetPhysics(space)
	w.SetInputLog(ecs.NewEventLog[input.Event]())
	if err := w.SetTimestep(tuning.Physics.Timestep); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	scene, err := entity.BuildScene(w, space, tuning.Scene)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	cameraRig, err := system.NewCameraRigSystem(w, system.CameraRigConfigFromSpec(tuning), logger, opts.Metrics)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	cameraRig.SetBoom(scene.Boom)

	locomotion, err := system.NewLocomotionSystem(w, system.LocomotionConfigFromSpec(tuning), logger, opts.Metrics)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	locomotion.SetAvatar(scene.Avatar)
	locomotion.SetCamera(scene.Camera)

	spawner := system.NewSpawnerSystem(space, tuning.Scene.Spawn, spawnSeed, logger)

	scheduler := ecs.NewScheduler()
	scheduler.Add(cameraRig)
	scheduler.Add(system.NewTransformSystem(logger))
	scheduler.Add(locomotion)
	scheduler.Add(system.NewPhysicsSystem(space, opts.Metrics))
	scheduler.Add(spawner)
	scheduler.Add(system.NewTTLSystem(space))

	g := &Game{
		opts:       opts,
		world:      w,
		space:      space,
		scene:      scene,
		scheduler:  scheduler,
		keyboard:   newKeyboardSource(input.NewTranslator(bindings)),
		cameraRig:  cameraRig,
		locomotion: locomotion,
		spawner:    spawner,
		logger:     logger,
	}

	if opts.Watch {
		watcher, err := prefabs.NewWatcher(opts.TuningFile, opts.BindingsFile)
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}

	ebiten.SetTPS(tpsFor(tuning.Physics.Timestep))
	logger.Info("game ready",
		zap.String("tuning", tuning.Name),
		zap.Stringer("avatar", scene.Avatar),
		zap.Stringer("camera", scene.Camera))
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.applyReloads()

	g.keyboard.Poll(g.world.InputLog())
	g.scheduler.Update(g.world)

	if g.world.Cursor().Hidden {
		if ebiten.CursorMode() != ebiten.CursorModeCaptured {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		}
	} else if ebiten.CursorMode() != ebiten.CursorModeVisible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(screen, g.world)
	if g.opts.Debug {
		drawControllerDebug(screen, g.locomotion, g.scheduler.Ticks())
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) applyReloads() {
	if err := g.watcher.Err(); err != nil {
		g.logger.Warn("prefab watcher", zap.Error(err))
	}
	for {
		name, ok := g.watcher.Poll()
		if !ok {
			return
		}
		switch name {
		case g.opts.TuningFile:
			g.reloadTuning()
		case g.opts.BindingsFile:
			g.reloadBindings()
		}
	}
}

func (g *Game) reloadTuning() {
	tuning, err := prefabs.LoadTuning(g.opts.TuningFile)
	if err != nil {
		g.logger.Warn("reload tuning", zap.Error(err))
		return
	}
	if err := g.world.SetTimestep(tuning.Physics.Timestep); err != nil {
		g.logger.Warn("reload tuning", zap.Error(err))
		return
	}
	g.space.SetGravity(mgl64.Vec3{0, tuning.Physics.Gravity, 0})
	g.cameraRig.SetConfig(system.CameraRigConfigFromSpec(tuning))
	g.locomotion.SetConfig(system.LocomotionConfigFromSpec(tuning))
	g.spawner.SetSpec(tuning.Scene.Spawn)
	ebiten.SetTPS(tpsFor(tuning.Physics.Timestep))
	g.logger.Info("tuning reloaded", zap.String("tuning", tuning.Name))
}

func (g *Game) reloadBindings() {
	spec, err := prefabs.LoadBindings(g.opts.BindingsFile)
	if err != nil {
		g.logger.Warn("reload bindings", zap.Error(err))
		return
	}
	bindings, err := input.NewBindings(spec.Actions)
	if err != nil {
		g.logger.Warn("reload bindings", zap.Error(err))
		return
	}
	g.keyboard.SetTranslator(input.NewTranslator(bindings))
	g.logger.Info("bindings reloaded", zap.Strings("keys", bindings.Keys()))
}

func tpsFor(timestep float64) int {
	if timestep <= 0 {
		return ebiten.DefaultTPS
	}
	return int(math.Round(1 / timestep))
}
