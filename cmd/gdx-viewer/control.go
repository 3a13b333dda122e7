package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/ecs/debugui"
	"github.com/plus3/gdxcore/position"
	"github.com/plus3/gdxcore/scene"
)

const (
	moveSpeed = 5  // units per second
	turnSpeed = 90 // degrees per second
)

// controlSystem flies the active camera with WASD, turns it with Q and E and
// switches cameras with Tab. Keys are ignored while ImGui has the keyboard.
type controlSystem struct {
	viewer *Viewer
	input  *ecs.Singleton[*debugui.ImguiInputState]

	pressed     func(ebiten.Key) bool
	justPressed func(ebiten.Key) bool
}

func newControlSystem(engine *ecs.Engine, viewer *Viewer) *controlSystem {
	return &controlSystem{
		viewer:      viewer,
		input:       ecs.NewSingleton(engine, debugui.ImguiInputStateType),
		pressed:     ebiten.IsKeyPressed,
		justPressed: inpututil.IsKeyJustPressed,
	}
}

func (*controlSystem) Name() string { return "ControlSystem" }

func (*controlSystem) Query() ecs.EntityQuery {
	return ecs.NewQuery(scene.CameraType.Id(), position.Type.Id())
}

func (c *controlSystem) captured() bool {
	state, ok := c.input.Get()
	return ok && state.WantCaptureKeyboard
}

func (c *controlSystem) Update(delta float32, entity *ecs.Entity) {
	if active, ok := c.viewer.Camera(); !ok || active != entity || c.captured() {
		return
	}

	p := position.Type.Get(entity)
	step := moveSpeed * delta
	turn := turnSpeed * delta

	switch {
	case c.pressed(ebiten.KeyW):
		p.Move(position.Z(-step))
	case c.pressed(ebiten.KeyS):
		p.Move(position.Z(step))
	}
	switch {
	case c.pressed(ebiten.KeyA):
		p.Move(position.X(-step))
	case c.pressed(ebiten.KeyD):
		p.Move(position.X(step))
	}
	switch {
	case c.pressed(ebiten.KeyQ):
		p.AddLocalRotation(position.Y(turn))
	case c.pressed(ebiten.KeyE):
		p.AddLocalRotation(position.Y(-turn))
	}
}

func (c *controlSystem) PostUpdate(float32) {
	if !c.captured() && c.justPressed(ebiten.KeyTab) {
		c.viewer.NextCamera()
	}
}
