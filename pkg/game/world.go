package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/golangdaddy/backroads/pkg/audio"
	"github.com/golangdaddy/backroads/pkg/camera"
	"github.com/golangdaddy/backroads/pkg/config"
	"github.com/golangdaddy/backroads/pkg/data"
	"github.com/golangdaddy/backroads/pkg/input"
	"github.com/golangdaddy/backroads/pkg/models"
	"github.com/golangdaddy/backroads/pkg/nav"
	"github.com/golangdaddy/backroads/pkg/occupancy"
	"github.com/golangdaddy/backroads/pkg/player"
	"github.com/golangdaddy/backroads/pkg/ui"
	"github.com/golangdaddy/backroads/pkg/vehicle"
	"github.com/golangdaddy/backroads/pkg/world"
)

const (
	spawnClearRadius = 12
	pedestrianSpeed  = 1.5
	navCellSize      = 1
	messageTicks     = 120
)

var (
	carSpawn    = mgl64.Vec3{0, 0, 0}
	playerSpawn = mgl64.Vec3{-4, 0, 0}
)

// Pedestrian is a named wanderer
type Pedestrian struct {
	Name   string
	Wander *nav.Wander
}

func (p *Pedestrian) Position() mgl64.Vec3 { return p.Wander.Agent.Position }

// WorldOptions is what a WorldScene is built from
type WorldOptions struct {
	Config     config.Config
	Logger     *zap.Logger
	Input      input.Source
	Sink       audio.Sink
	Preset     vehicle.Preset
	SceneIndex int
	// OnExit runs when the player backs out to the title
	OnExit func()
	// OnLoad runs with a quickloaded save; the game rebuilds the world from it
	OnLoad func(*models.GameState)
}

// WorldScene is the open world: a car, the player on foot and pedestrians
// wandering between platforms.
type WorldScene struct {
	opts    WorldOptions
	logger  *zap.Logger
	src     input.Source
	dt      float64
	gravity world.Gravity

	terrain     *world.Terrain
	grid        *nav.Grid
	car         *Car
	player      *player.Player
	facing      float64
	occupancy   *occupancy.Controller
	rig         *camera.Switcher
	follow      *camera.Follow
	pedestrians []*Pedestrian

	message      string
	messageTicks int

	ground  *ebiten.Image
	sprites *sprites
	hud     ui.HUD
}

// NewWorldScene generates the world from the configured seed and spawns
// everything in it. Nothing here touches the GPU; images are built on first Draw.
func NewWorldScene(opts WorldOptions) (*WorldScene, error) {
	cfg := opts.Config
	if cfg.TPS <= 0 {
		return nil, fmt.Errorf("tps must be positive, got %d", cfg.TPS)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sink == nil {
		opts.Sink = audio.Nop{}
	}

	ws := &WorldScene{
		opts:    opts,
		logger:  opts.Logger.With(zap.String("scene", "world")),
		src:     opts.Input,
		dt:      1 / float64(cfg.TPS),
		gravity: world.DefaultGravity(),
		rig:     camera.NewSwitcher(),
		follow:  camera.NewFollow(),
	}

	ws.terrain = world.NewTerrain(cfg.World.Size, cfg.World.Size)
	ws.terrain.Scatter(cfg.World.Seed, cfg.World.Platforms, [][3]float64{
		{carSpawn.X(), carSpawn.Z(), spawnClearRadius},
	})
	ws.grid = nav.NewGrid(ws.terrain, navCellSize, ws.gravity.StepHeight)

	car, err := NewCar(opts.Preset, ws.terrain, vehicle.NewState(carSpawn, 0))
	if err != nil {
		return nil, fmt.Errorf("build car %q: %w", opts.Preset.Name, err)
	}
	ws.car = car
	ws.player = player.New(playerSpawn)
	ws.occupancy = occupancy.NewController(ws.player, ws.car, ws.rig, opts.Sink, ws.logger)

	rng := rand.New(rand.NewSource(cfg.World.Seed))
	for i := 0; i < cfg.World.Wanderers; i++ {
		pos, ok := ws.pedestrianSpot(rng)
		if !ok {
			ws.logger.Warn("no room for pedestrian", zap.Int("index", i))
			continue
		}
		w := nav.NewWander(nav.NewAgent(ws.grid, pos, pedestrianSpeed), ws.grid, rng)
		w.Start()
		ws.pedestrians = append(ws.pedestrians, &Pedestrian{Name: data.RandomName(rng), Wander: w})
	}

	ws.logger.Info("world built",
		zap.String("car", opts.Preset.Name),
		zap.Int64("seed", cfg.World.Seed),
		zap.Int("platforms", len(ws.terrain.Platforms)),
		zap.Int("pedestrians", len(ws.pedestrians)),
	)
	return ws, nil
}

func (ws *WorldScene) pedestrianSpot(rng *rand.Rand) (mgl64.Vec3, bool) {
	half := ws.opts.Config.World.Size / 2
	for attempt := 0; attempt < 10; attempt++ {
		guess := mgl64.Vec3{(rng.Float64()*2 - 1) * half, 0, (rng.Float64()*2 - 1) * half}
		if pos, ok := ws.grid.SamplePosition(guess, 5); ok {
			return pos, true
		}
	}
	return mgl64.Vec3{}, false
}

func (ws *WorldScene) Car() *Car { return ws.car }

func (ws *WorldScene) Player() *player.Player { return ws.player }

func (ws *WorldScene) Occupancy() *occupancy.Controller { return ws.occupancy }

func (ws *WorldScene) Pedestrians() []*Pedestrian { return ws.pedestrians }

// Update runs one fixed tick
func (ws *WorldScene) Update() error {
	if ws.src.JustPressed(input.Back) {
		if ws.opts.OnExit != nil {
			ws.opts.OnExit()
		}
		return nil
	}

	ws.occupancy.Update(occupancy.SignalsFrom(ws.src))

	var cm world.Motion
	if ws.occupancy.Inside() {
		cm = ws.car.Step(vehicle.Intent{
			Throttle: ws.src.Axis(input.Vertical),
			Steering: ws.src.Axis(input.Horizontal),
		}, ws.gravity, ws.dt)
	} else {
		cm = ws.car.Park(ws.gravity, ws.dt)
	}
	if cm.Lost {
		ws.logger.Warn("car fell out of the world", zap.Float64("y", cm.Position.Y()))
		ws.car.State = vehicle.NewState(carSpawn, 0)
	}

	m := ws.player.Update(ws.src, ws.terrain, ws.gravity, ws.dt)
	if m.Lost {
		ws.logger.Warn("player fell out of the world")
		ws.player.SetPosition(playerSpawn)
	}
	if v := ws.player.Velocity(); v.X() != 0 || v.Z() != 0 {
		ws.facing = math.Atan2(v.X(), v.Z())
	}

	for _, p := range ws.pedestrians {
		p.Wander.Update(ws.dt)
	}

	if ws.src.JustPressed(input.QuickSave) {
		ws.quickSave()
	}
	if ws.src.JustPressed(input.QuickLoad) {
		ws.quickLoad()
	}

	ws.follow.Update(ws.rig.Current(), ws.cameraTarget())

	if ws.messageTicks > 0 {
		ws.messageTicks--
		if ws.messageTicks == 0 {
			ws.message = ""
		}
	}
	return nil
}

func (ws *WorldScene) cameraTarget() camera.Target {
	if ws.occupancy.Inside() {
		p := ws.car.Position()
		return camera.Target{X: p.X(), Z: p.Z(), Heading: ws.car.State.Heading()}
	}
	p := ws.player.Position()
	return camera.Target{X: p.X(), Z: p.Z(), Heading: ws.facing}
}

func (ws *WorldScene) flash(msg string) {
	ws.message = msg
	ws.messageTicks = messageTicks
}

// Snapshot captures what a save restores
func (ws *WorldScene) Snapshot() *models.GameState {
	st := models.NewGameState("Quicksave", ws.opts.Preset.Name)
	st.Scene = ws.opts.SceneIndex

	cp := ws.car.Position()
	st.Car = models.CarState{
		Pose:  models.Pose{X: cp.X(), Y: cp.Y(), Z: cp.Z(), Heading: ws.car.State.Heading()},
		Speed: ws.car.State.Speed,
	}
	pp := ws.player.Position()
	st.Player = models.Pose{X: pp.X(), Y: pp.Y(), Z: pp.Z(), Heading: ws.facing}
	st.Inside = ws.occupancy.Inside()
	return st
}

// Apply puts the car and player back where st left them. Occupancy goes first
// because entering halts the car and leaving moves the player.
func (ws *WorldScene) Apply(st *models.GameState) {
	target := occupancy.Outside
	if st.Inside {
		target = occupancy.Inside
	}
	ws.occupancy.Restore(target)

	ws.car.State = vehicle.NewState(mgl64.Vec3{st.Car.X, st.Car.Y, st.Car.Z}, st.Car.Heading)
	ws.car.State.Speed = st.Car.Speed
	if !st.Inside {
		ws.player.SetPosition(mgl64.Vec3{st.Player.X, st.Player.Y, st.Player.Z})
	}
	ws.facing = st.Player.Heading

	ws.logger.Info("save applied", zap.String("id", st.ID.String()), zap.Bool("inside", st.Inside))
}

func (ws *WorldScene) quickSave() {
	path := ws.opts.Config.SavePath
	st := ws.Snapshot()
	if err := st.SaveToFile(path); err != nil {
		ws.logger.Error("quicksave failed", zap.String("path", path), zap.Error(err))
		ws.flash("Save failed")
		return
	}
	ws.logger.Info("quicksaved", zap.String("path", path), zap.String("id", st.ID.String()))
	ws.flash("Game saved")
}

func (ws *WorldScene) quickLoad() {
	path := ws.opts.Config.SavePath
	st, err := models.LoadFromFile(path)
	if err != nil {
		ws.logger.Error("quickload failed", zap.String("path", path), zap.Error(err))
		if errors.Is(err, models.ErrInvalidSave) {
			ws.flash("Save is corrupt")
		} else {
			ws.flash("No save to load")
		}
		return
	}
	if ws.opts.OnLoad != nil {
		ws.opts.OnLoad(st)
		return
	}
	ws.Apply(st)
}

// readout gathers the HUD state for this frame
func (ws *WorldScene) readout() ui.Readout {
	return ui.Readout{
		Speed:    ws.car.State.Speed,
		MaxSpeed: ws.car.Preset.Tuning.MaxSpeed,
		Steering: ws.car.Intent.Steering,
		Grounded: ws.car.Grounded,
		Inside:   ws.occupancy.Inside(),
		NearCar:  !ws.occupancy.Inside() && ws.occupancy.Distance() < occupancy.EnterDistance,
		View:     ws.rig.Current(),
		Car:      ws.car.Preset.Make + " " + ws.car.Preset.Model,
		Message:  ws.message,
	}
}
