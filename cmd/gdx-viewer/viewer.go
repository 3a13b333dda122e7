package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/gdxcore/armature"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/ecs/debugui"
	"github.com/plus3/gdxcore/position"
	"github.com/plus3/gdxcore/scene"
)

var (
	backgroundColor = color.RGBA{245, 245, 240, 255}
	linkColor       = color.RGBA{200, 200, 195, 255}
	boxColor        = color.RGBA{120, 190, 120, 255}
	jointColor      = color.RGBA{255, 160, 80, 255}
	meshColor       = color.RGBA{100, 150, 230, 255}
	markerColor     = color.RGBA{120, 120, 120, 255}
)

// Viewer draws every positioned entity as a marker seen from the active
// camera. It implements ebiten.Game on its own when the ImGui overlay is off.
type Viewer struct {
	engine  *ecs.Engine
	cameras []*ecs.Entity
	active  int
	timer   *debugui.FrameTimer
}

// NewViewer collects the scene cameras of engine, in creation order.
func NewViewer(engine *ecs.Engine) *Viewer {
	v := &Viewer{
		engine: engine,
		timer:  debugui.NewFrameTimer(),
	}
	for entity := range engine.Find(ecs.NewQuery(scene.CameraType.Id(), position.Type.Id())) {
		if !scene.CameraType.Get(entity).UI {
			v.cameras = append(v.cameras, entity)
		}
	}
	return v
}

// Camera returns the active camera entity.
func (v *Viewer) Camera() (*ecs.Entity, bool) {
	if len(v.cameras) == 0 {
		return nil, false
	}
	return v.cameras[v.active], true
}

// NextCamera makes the next camera active.
func (v *Viewer) NextCamera() {
	if len(v.cameras) > 0 {
		v.active = (v.active + 1) % len(v.cameras)
	}
}

func (v *Viewer) Update() error {
	v.engine.Update(v.timer.GetDeltaTime())
	return nil
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	camera, ok := v.Camera()
	if !ok {
		ebitenutil.DebugPrint(screen, "no camera")
		return
	}
	vp := scene.CameraType.Get(camera).ViewProjection(position.Type.Get(camera))
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	drawn := 0
	for entity := range v.engine.Find(ecs.NewQuery(position.Type.Id()).Without(scene.CameraType.Id())) {
		p := position.Type.Get(entity)
		at, visible := project(vp, p.Translation(), w, h)

		if parent, ok := entity.Parent(); ok && visible {
			if pp, ok := position.Type.Find(parent); ok {
				if from, ok := project(vp, pp.Translation(), w, h); ok {
					vector.StrokeLine(screen, from[0], from[1], at[0], at[1], 1, linkColor, true)
				}
			}
		}

		for _, box := range scene.BoundingBoxType.All(entity) {
			drawBox(screen, vp, box.Corners(), w, h)
		}

		for _, model := range armature.Type.All(entity) {
			drawJoints(screen, vp, p.Transformation(), model, w, h)
		}

		if !visible {
			continue
		}
		drawn++
		vector.DrawFilledCircle(screen, at[0], at[1], 4, markerColorOf(entity), true)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("camera: %s  markers: %d  entities: %d  [tab] next camera",
		camera.Name(), drawn, v.engine.Count()))
}

func markerColorOf(entity *ecs.Entity) color.Color {
	switch {
	case armature.Type.Has(entity):
		return jointColor
	case scene.MeshPrimitiveType.Has(entity):
		return meshColor
	case scene.BoundingBoxType.Has(entity):
		return boxColor
	default:
		return markerColor
	}
}

// project maps a world point through vp to pixel coordinates of a w × h
// target. Points behind the camera or outside the depth range are not
// visible.
func project(vp mgl32.Mat4, point mgl32.Vec3, w, h int) (mgl32.Vec2, bool) {
	clip := vp.Mul4x1(point.Vec4(1))
	if clip[3] <= 0 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[2] < -1 || ndc[2] > 1 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{
		(ndc[0] + 1) * 0.5 * float32(w),
		(1 - ndc[1]) * 0.5 * float32(h),
	}, true
}

// boxEdges lists the corner pairs of the 12 cube edges; corner i has the
// high coordinate on every axis whose bit is set.
func boxEdges() [][2]int {
	var edges [][2]int
	for i := range 8 {
		for axis := range 3 {
			bit := 1 << axis
			if i&bit == 0 {
				edges = append(edges, [2]int{i, i | bit})
			}
		}
	}
	return edges
}

var cubeEdges = boxEdges()

func drawBox(screen *ebiten.Image, vp mgl32.Mat4, corners [8]mgl32.Vec3, w, h int) {
	var points [8]mgl32.Vec2
	var visible [8]bool
	for i, c := range corners {
		points[i], visible[i] = project(vp, c, w, h)
	}
	for _, edge := range cubeEdges {
		a, b := edge[0], edge[1]
		if visible[a] && visible[b] {
			vector.StrokeLine(screen, points[a][0], points[a][1], points[b][0], points[b][1], 1, boxColor, true)
		}
	}
}

func drawJoints(screen *ebiten.Image, vp, model mgl32.Mat4, animated *armature.AnimatedModel, w, h int) {
	animated.Pose()
	for _, joint := range animated.Armature.Joints {
		m, ok := animated.JointTransform(joint.Name)
		if !ok {
			continue
		}
		at, visible := project(vp, mgl32.TransformCoordinate(m.Col(3).Vec3(), model), w, h)
		if visible {
			vector.DrawFilledRect(screen, at[0]-2, at[1]-2, 4, 4, jointColor, true)
		}
	}
}
