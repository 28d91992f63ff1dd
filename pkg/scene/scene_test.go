package scene

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubScene struct {
	name    string
	updates int
}

func (s *stubScene) Update() error      { s.updates++; return nil }
func (s *stubScene) Draw(*ebiten.Image) {}

func named(name string) Factory {
	return func(*Manager) (Scene, error) { return &stubScene{name: name}, nil }
}

type button struct {
	listeners []func()
}

func (b *button) OnClick(fn func()) { b.listeners = append(b.listeners, fn) }

func (b *button) click() {
	for _, fn := range b.listeners {
		fn()
	}
}

func activeName(t *testing.T, m *Manager) string {
	t.Helper()
	s, _ := m.Active()
	require.NotNil(t, s)
	return s.(*stubScene).name
}

func TestManager_LoadNext(t *testing.T) {
	m := NewManager(nil, named("title"), named("garage"), named("world"))

	s, idx := m.Active()
	assert.Nil(t, s)
	assert.Equal(t, -1, idx)

	require.NoError(t, m.LoadNext())
	assert.Equal(t, "title", activeName(t, m))

	require.NoError(t, m.LoadNext())
	require.NoError(t, m.LoadNext())
	assert.Equal(t, "world", activeName(t, m))

	err := m.LoadNext()
	assert.ErrorIs(t, err, ErrNoScene)
	assert.Equal(t, "world", activeName(t, m), "failed load keeps the active scene")
	_, idx = m.Active()
	assert.Equal(t, 2, idx)
}

func TestManager_LoadFactoryError(t *testing.T) {
	boom := errors.New("boom")
	m := NewManager(nil, named("title"), func(*Manager) (Scene, error) { return nil, boom })
	require.NoError(t, m.Load(0))

	err := m.Load(1)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "title", activeName(t, m))
	assert.ErrorIs(t, m.Load(-1), ErrNoScene)
}

func TestManager_LoadBuildsFresh(t *testing.T) {
	m := NewManager(nil, named("title"))
	require.NoError(t, m.Load(0))
	first, _ := m.Active()
	require.NoError(t, m.Update())

	require.NoError(t, m.Load(0))
	second, _ := m.Active()

	assert.NotSame(t, first, second)
	assert.Zero(t, second.(*stubScene).updates)
}

func TestManager_BindLoadNext(t *testing.T) {
	m := NewManager(nil, named("title"), named("world"))
	require.NoError(t, m.Load(0))
	b := &button{}

	m.BindLoadNext(b)
	b.click()
	assert.Equal(t, "world", activeName(t, m))

	b.click()
	assert.Equal(t, "world", activeName(t, m))
}

func TestManager_BindLoadNextWithoutButton(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := NewManager(zap.New(core), named("title"))

	m.BindLoadNext(nil)

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "can't be clicked")
}

func TestManager_UpdateWithoutScene(t *testing.T) {
	m := NewManager(nil)
	assert.NoError(t, m.Update())
	assert.Zero(t, m.Count())
}
