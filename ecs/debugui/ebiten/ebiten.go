// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/ecs/debugui"
)

// ImguiBackendType is the component type of ImguiBackend.
var ImguiBackendType = ecs.NewComponentType[*ImguiBackend]("ImguiBackend")

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

func (*ImguiBackend) Type() ecs.TypeId { return ImguiBackendType.Id() }

// Host implements ebiten.Game: every Ebiten update ticks the engine inside an
// ImGui frame, and every draw renders the scene before the ImGui overlay.
type Host struct {
	engine  *ecs.Engine
	backend *ecs.Singleton[*ImguiBackend]
	timer   *debugui.FrameTimer
	scene   func(screen *ebiten.Image)
}

// NewHost registers backend as a singleton of engine. scene, when not nil,
// draws the game content under the overlay.
func NewHost(engine *ecs.Engine, backend *ebitenbackend.EbitenBackend, scene func(screen *ebiten.Image)) *Host {
	return &Host{
		engine:  engine,
		backend: ecs.NewSingleton(engine, ImguiBackendType, &ImguiBackend{EbitenBackend: backend}),
		timer:   debugui.NewFrameTimer(),
		scene:   scene,
	}
}

func (h *Host) Update() error {
	backend, ok := h.backend.Get()
	if !ok {
		h.engine.Update(h.timer.GetDeltaTime())
		return nil
	}

	backend.BeginFrame()
	h.engine.Update(h.timer.GetDeltaTime())
	backend.EndFrame()
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	if h.scene != nil {
		h.scene(screen)
	}
	if backend, ok := h.backend.Get(); ok {
		backend.Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if backend, ok := h.backend.Get(); ok {
		backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
