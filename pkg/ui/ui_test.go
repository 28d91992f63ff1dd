package ui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/backroads/pkg/camera"
	"github.com/golangdaddy/backroads/pkg/input"
	"github.com/golangdaddy/backroads/pkg/vehicle"
)

func click(x, y int, down, up bool) input.Snapshot {
	return input.Snapshot{
		JustDown: map[input.Action]bool{input.Click: down},
		JustUp:   map[input.Action]bool{input.Click: up},
		X:        x,
		Y:        y,
	}
}

func TestButton_Click(t *testing.T) {
	b := NewButton("Start", 100, 100, 200, 50)
	clicks := 0
	b.OnClick(func() { clicks++ })

	b.Update(click(150, 120, true, false))
	assert.True(t, b.Hovered())
	b.Update(click(150, 120, false, true))
	assert.Equal(t, 1, clicks)

	b.Update(click(150, 120, true, false))
	b.Update(click(10, 10, false, true))
	assert.Equal(t, 1, clicks, "released off the button")

	b.Update(click(10, 10, true, false))
	b.Update(click(150, 120, false, true))
	assert.Equal(t, 1, clicks, "pressed off the button")
	assert.True(t, b.Hovered())
}

func TestButton_ListenersInOrder(t *testing.T) {
	b := NewButton("Go", 0, 0, 10, 10)
	var order []int
	b.OnClick(func() { order = append(order, 1) })
	b.OnClick(func() { order = append(order, 2) })

	b.Click()

	assert.Equal(t, []int{1, 2}, order)
	assert.True(t, b.Contains(0, 0))
	assert.False(t, b.Contains(10, 5))
}

func TestTitleScreen_ConfirmPressesStart(t *testing.T) {
	src := input.Snapshot{JustDown: map[input.Action]bool{input.Confirm: true}}
	ts := NewTitleScreen(src, 1024, 600)
	started := false
	ts.Start.OnClick(func() { started = true })

	require.NoError(t, ts.Update())

	assert.True(t, started)
}

func TestGarageScreen_Selection(t *testing.T) {
	presets := vehicle.DefaultPresets()
	var got []Choice
	gs := NewGarageScreen(input.Snapshot{}, presets, true, func(c Choice) { got = append(got, c) })

	gs.Move(-1)
	assert.Equal(t, len(presets), gs.Selected(), "wraps to the Load Game row")
	gs.Choose()

	gs.Move(1)
	assert.Zero(t, gs.Selected())
	gs.Move(1)
	gs.Choose()

	require.Len(t, got, 2)
	assert.True(t, got[0].Load)
	assert.False(t, got[1].Load)
	assert.Equal(t, presets[1].Name, got[1].Preset.Name)
}

func TestGarageScreen_NoLoadRow(t *testing.T) {
	presets := vehicle.DefaultPresets()
	gs := NewGarageScreen(input.Snapshot{}, presets, false, nil)

	gs.Move(len(presets))
	assert.Zero(t, gs.Selected())
	gs.Choose()

	empty := NewGarageScreen(input.Snapshot{}, nil, false, func(Choice) { t.Fatal("nothing to choose") })
	empty.Move(1)
	empty.Choose()
}

func TestGear(t *testing.T) {
	assert.Equal(t, "D", Gear(3))
	assert.Equal(t, "R", Gear(-1))
	assert.Equal(t, "N", Gear(0.01))
}

func TestReadout_Lines(t *testing.T) {
	driving := Readout{Inside: true, Speed: 10, Car: "Ford Mustang", View: camera.ViewFirstPerson}
	lines := driving.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "gear D")
	assert.Contains(t, lines[0], "airborne")
	assert.Contains(t, lines[1], "first-person")

	assert.Equal(t, []string{"E: get in", "saved"}, Readout{NearCar: true, Message: "saved"}.Lines())
	assert.Equal(t, []string{"WASD: walk"}, Readout{}.Lines())
}

func TestGaugeColor(t *testing.T) {
	assert.Equal(t, color.RGBA{100, 255, 100, 255}, gaugeColor(0))
	assert.Equal(t, color.RGBA{255, 255, 100, 255}, gaugeColor(0.5))
	assert.Equal(t, color.RGBA{255, 100, 0, 255}, gaugeColor(1))
	assert.Equal(t, gaugeColor(1), gaugeColor(3))
}

func TestFormatPresetInfo(t *testing.T) {
	p := vehicle.Preset{Name: "hatch", Make: "Honda", Model: "Civic", Year: 2021, Tuning: vehicle.DefaultTuning()}
	assert.Contains(t, formatPresetInfo(p), "108 km/h")
}
