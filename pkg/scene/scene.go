package scene

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// ErrNoScene is returned when a build index has no scene
var ErrNoScene = errors.New("no scene at index")

// Scene is one screen of the game
type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Factory builds a fresh scene each time its index is loaded
type Factory func(m *Manager) (Scene, error)

// Clickable is anything that calls its listeners when clicked
type Clickable interface {
	OnClick(fn func())
}

// Manager holds scenes in build order and runs the active one
type Manager struct {
	factories []Factory
	active    Scene
	index     int
	logger    *zap.Logger
}

// NewManager registers factories in build order. Nothing is active until Load.
func NewManager(logger *zap.Logger, factories ...Factory) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{factories: factories, index: -1, logger: logger}
}

// Load replaces the active scene with a new scene from index. On failure the
// active scene is kept.
func (m *Manager) Load(index int) error {
	if index < 0 || index >= len(m.factories) {
		err := fmt.Errorf("load scene %d: %w", index, ErrNoScene)
		m.logger.Error("scene load failed", zap.Int("index", index), zap.Error(err))
		return err
	}
	s, err := m.factories[index](m)
	if err != nil {
		err = fmt.Errorf("load scene %d: %w", index, err)
		m.logger.Error("scene load failed", zap.Int("index", index), zap.Error(err))
		return err
	}
	m.active = s
	m.index = index
	m.logger.Debug("scene loaded", zap.Int("index", index))
	return nil
}

// LoadNext loads the scene after the active one
func (m *Manager) LoadNext() error {
	return m.Load(m.index + 1)
}

// Active returns the active scene and its build index, or nil and -1
func (m *Manager) Active() (Scene, int) {
	return m.active, m.index
}

// Count is the number of registered scenes
func (m *Manager) Count() int { return len(m.factories) }

// BindLoadNext makes a click on c load the next scene
func (m *Manager) BindLoadNext(c Clickable) {
	if c == nil {
		m.logger.Warn("load-next bound to something that can't be clicked")
		return
	}
	c.OnClick(func() {
		// Load already logged the failure.
		_ = m.LoadNext()
	})
}

func (m *Manager) Update() error {
	if m.active == nil {
		return nil
	}
	return m.active.Update()
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.active != nil {
		m.active.Draw(screen)
	}
}
