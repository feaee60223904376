// Package game assembles the world and runs the tick pipeline.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/camera"
	"github.com/ZBemo/simple-pirate-sim/components"
	"github.com/ZBemo/simple-pirate-sim/config"
	"github.com/ZBemo/simple-pirate-sim/console"
	"github.com/ZBemo/simple-pirate-sim/systems"
	"github.com/ZBemo/simple-pirate-sim/telemetry"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
	"github.com/ZBemo/simple-pirate-sim/ui"
)

// Options configures game creation.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	stretch tilegrid.Stretch
	dt      float32

	// Tick pipeline systems
	velocity  *systems.VelocitySystem
	collision *systems.CollisionSystem
	movement  *systems.MovementSystem

	// Entity creation mappers
	shipRootMapper *ecs.Map7[
		components.Name,
		components.Transform,
		components.MovementGoal,
		components.RelativeVelocity,
		components.TotalVelocity,
		components.Ticker,
		components.Children,
	]
	shipPartMapper *ecs.Map7[
		components.Name,
		components.Transform,
		components.Collider,
		components.RelativeVelocity,
		components.TotalVelocity,
		components.Ticker,
		components.Parent,
	]
	playerMapper *ecs.Map8[
		components.Name,
		components.Transform,
		components.Collider,
		components.MovementGoal,
		components.RelativeVelocity,
		components.TotalVelocity,
		components.Ticker,
		components.WalkSpeed,
	]
	playerExtraMapper *ecs.Map4[
		components.Weight,
		components.MaintainedVelocity,
		components.VelocityFromGround,
		components.PlayerController,
	]

	// Individual component maps for lookups
	nameMap      *ecs.Map[components.Name]
	transformMap *ecs.Map[components.Transform]
	goalMap      *ecs.Map[components.MovementGoal]
	walkMap      *ecs.Map[components.WalkSpeed]
	colliderMap  *ecs.Map[components.Collider]
	totalMap     *ecs.Map[components.TotalVelocity]
	childrenMap  *ecs.Map[components.Children]

	transformFilter *ecs.Filter1[components.Transform]
	colliderFilter  *ecs.Filter1[components.Collider]
	velocityFilter  *ecs.Filter1[components.TotalVelocity]

	player ecs.Entity

	// Console
	registry  *console.Registry
	consoleUI *ui.ConsoleOverlay

	// Rendering
	camera *camera.Camera
	hud    *ui.HUD

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	// State
	tick           int32
	paused         bool
	stepsPerUpdate int
	exitRequested  bool
	logStats       bool
	headless       bool
	rngSeed        int64

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game instance with the given options.
// config.Init must have been called first.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	w := ecs.NewWorld()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		world:   w,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		rngSeed: opts.Seed,

		stretch: tilegrid.NewStretch(cfg.Grid.CellX, cfg.Grid.CellY),
		dt:      cfg.Derived.DT32,

		shipRootMapper: ecs.NewMap7[
			components.Name,
			components.Transform,
			components.MovementGoal,
			components.RelativeVelocity,
			components.TotalVelocity,
			components.Ticker,
			components.Children,
		](w),
		shipPartMapper: ecs.NewMap7[
			components.Name,
			components.Transform,
			components.Collider,
			components.RelativeVelocity,
			components.TotalVelocity,
			components.Ticker,
			components.Parent,
		](w),
		playerMapper: ecs.NewMap8[
			components.Name,
			components.Transform,
			components.Collider,
			components.MovementGoal,
			components.RelativeVelocity,
			components.TotalVelocity,
			components.Ticker,
			components.WalkSpeed,
		](w),
		playerExtraMapper: ecs.NewMap4[
			components.Weight,
			components.MaintainedVelocity,
			components.VelocityFromGround,
			components.PlayerController,
		](w),

		nameMap:      ecs.NewMap[components.Name](w),
		transformMap: ecs.NewMap[components.Transform](w),
		goalMap:      ecs.NewMap[components.MovementGoal](w),
		walkMap:      ecs.NewMap[components.WalkSpeed](w),
		colliderMap:  ecs.NewMap[components.Collider](w),
		totalMap:     ecs.NewMap[components.TotalVelocity](w),
		childrenMap:  ecs.NewMap[components.Children](w),

		transformFilter: ecs.NewFilter1[components.Transform](w),
		colliderFilter:  ecs.NewFilter1[components.Collider](w),
		velocityFilter:  ecs.NewFilter1[components.TotalVelocity](w),

		stepsPerUpdate: stepsPerUpdate,
		logStats:       opts.LogStats,
		headless:       opts.Headless,

		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}

	gravity := tilegrid.Vec3{Z: -float32(cfg.Physics.Gravity)}
	g.velocity = systems.NewVelocitySystem(w, g.stretch, gravity,
		float32(cfg.Physics.MaintainedDecay), cfg.Physics.ParallelRoots)
	g.collision = systems.NewCollisionSystem(w, g.stretch)
	g.movement = systems.NewMovementSystem(w, g.stretch)

	windowSec := float64(cfg.Telemetry.Interval*cfg.Telemetry.WindowSize) * cfg.Physics.DT
	g.collector = telemetry.NewCollector(windowSec, g.dt)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.WindowSize)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight)
		g.hud = ui.NewHUD()
		g.consoleUI = ui.NewConsoleOverlay()
	}

	g.registry = console.NewRegistry()
	g.registerCommands()

	g.spawnWorld(cfg)

	return g
}

// spawnWorld places the initial ships and the player.
func (g *Game) spawnWorld(cfg *config.Config) {
	spawn := tilegrid.IVec3{
		X: int32(cfg.Ship.SpawnX),
		Y: int32(cfg.Ship.SpawnY),
		Z: int32(cfg.Ship.SpawnZ),
	}

	first := g.spawnShip("Dauntless", spawn, float32(cfg.Ship.DriftSpeed))

	// Second ship a short sail away, drifting slower
	offset := tilegrid.IVec3{
		X: spawn.X + 12 + g.rng.Int31n(6),
		Y: spawn.Y - 8 - g.rng.Int31n(6),
		Z: spawn.Z,
	}
	g.spawnShip("Revenge", offset, float32(cfg.Ship.DriftSpeed)*0.5)

	// Player starts on the first ship's main deck
	deck := g.shipDeckTile(first, 1)
	g.player = g.spawnPlayer("Player", deck, float32(cfg.Player.WalkSpeed))

	if g.camera != nil {
		g.camera.Center(viewPos(g.transformMap.Get(g.player).Translation))
	}
}

// Update runs input handling and simulation steps for one frame.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// ExitRequested reports whether a console command asked to quit.
func (g *Game) ExitRequested() bool {
	return g.exitRequested
}

// Unload flushes telemetry output and releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}
}
