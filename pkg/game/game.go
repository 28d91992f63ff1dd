package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/golangdaddy/backroads/pkg/audio"
	"github.com/golangdaddy/backroads/pkg/config"
	"github.com/golangdaddy/backroads/pkg/input"
	"github.com/golangdaddy/backroads/pkg/models"
	"github.com/golangdaddy/backroads/pkg/scene"
	"github.com/golangdaddy/backroads/pkg/ui"
	"github.com/golangdaddy/backroads/pkg/vehicle"
)

// Scenes in build order
const (
	SceneTitle = iota
	SceneGarage
	SceneWorld
)

// ErrUnknownPreset is returned when a save names a car that isn't installed
var ErrUnknownPreset = errors.New("unknown preset")

// Deps is everything the game is wired with at startup
type Deps struct {
	Config  config.Config
	Logger  *zap.Logger
	Input   input.Source
	Sink    audio.Sink
	Presets []vehicle.Preset
}

// session carries the garage's pick into the world scene
type session struct {
	preset vehicle.Preset
	resume *models.GameState
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	deps    Deps
	logger  *zap.Logger
	scenes  *scene.Manager
	session session
}

// NewGame builds the scene list and opens the title screen
func NewGame(deps Deps) (*Game, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Sink == nil {
		deps.Sink = audio.Nop{}
	}
	if deps.Config.TPS <= 0 {
		return nil, fmt.Errorf("tps must be positive, got %d", deps.Config.TPS)
	}
	g := &Game{deps: deps, logger: deps.Logger}
	if len(deps.Presets) > 0 {
		g.session.preset = deps.Presets[0]
	}
	g.scenes = scene.NewManager(deps.Logger, g.newTitle, g.newGarage, g.newWorld)
	if err := g.scenes.Load(SceneTitle); err != nil {
		return nil, err
	}
	return g, nil
}

// Scenes exposes the scene manager
func (g *Game) Scenes() *scene.Manager { return g.scenes }

// Update handles game logic updates
func (g *Game) Update() error {
	if e, ok := g.deps.Input.(*input.Ebiten); ok {
		e.Update(1 / float64(g.deps.Config.TPS))
	}
	return g.scenes.Update()
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	g.scenes.Draw(screen)
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.deps.Config.Window.Width, g.deps.Config.Window.Height
}

func (g *Game) newTitle(m *scene.Manager) (scene.Scene, error) {
	ts := ui.NewTitleScreen(g.deps.Input, g.deps.Config.Window.Width, g.deps.Config.Window.Height)
	m.BindLoadNext(ts.Start)
	return ts, nil
}

func (g *Game) newGarage(m *scene.Manager) (scene.Scene, error) {
	_, err := os.Stat(g.deps.Config.SavePath)
	canLoad := err == nil
	return ui.NewGarageScreen(g.deps.Input, g.deps.Presets, canLoad, g.choose), nil
}

func (g *Game) newWorld(m *scene.Manager) (scene.Scene, error) {
	ws, err := NewWorldScene(WorldOptions{
		Config:     g.deps.Config,
		Logger:     g.deps.Logger,
		Input:      g.deps.Input,
		Sink:       g.deps.Sink,
		Preset:     g.session.preset,
		SceneIndex: SceneWorld,
		OnExit:     g.exitToTitle,
		OnLoad:     g.resume,
	})
	if err != nil {
		return nil, err
	}
	if st := g.session.resume; st != nil {
		ws.Apply(st)
		g.session.resume = nil
	}
	return ws, nil
}

// choose starts a new drive with the picked car, or resumes the save
func (g *Game) choose(c ui.Choice) {
	if c.Load {
		st, err := models.LoadFromFile(g.deps.Config.SavePath)
		if err != nil {
			g.logger.Error("load save", zap.String("path", g.deps.Config.SavePath), zap.Error(err))
			return
		}
		g.resume(st)
		return
	}
	g.session = session{preset: c.Preset}
	g.logger.Info("car chosen", zap.String("preset", c.Preset.Name))
	if err := g.scenes.LoadNext(); err != nil {
		g.logger.Error("start drive", zap.Error(err))
	}
}

// resume rebuilds the saved scene with the saved car
func (g *Game) resume(st *models.GameState) {
	if err := g.Resume(st); err != nil {
		g.logger.Error("resume save", zap.String("id", st.ID.String()), zap.Error(err))
	}
}

// Resume loads the scene st was saved in and applies it there
func (g *Game) Resume(st *models.GameState) error {
	preset, ok := vehicle.FindPreset(g.deps.Presets, st.Preset)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, st.Preset)
	}
	g.session = session{preset: preset, resume: st}
	if err := g.scenes.Load(st.Scene); err != nil {
		g.session.resume = nil
		return err
	}
	return nil
}

func (g *Game) exitToTitle() {
	if err := g.scenes.Load(SceneTitle); err != nil {
		g.logger.Error("back to title", zap.Error(err))
	}
}
