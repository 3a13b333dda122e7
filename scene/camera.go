package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/position"
)

// CameraType is the component type of Camera.
var CameraType = ecs.NewComponentType[*Camera]("Camera")

// Screen is the size of the render target in pixels.
type Screen struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Ratio is width over height.
func (s Screen) Ratio() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Camera holds a projection. Its view is the inverse of the global
// transformation of the entity's Position.
type Camera struct {
	Projection mgl32.Mat4
	// UI cameras draw screen-space sprites and text over the scene.
	UI bool
}

func (*Camera) Type() ecs.TypeId { return CameraType.Id() }

// NewPerspective builds a perspective camera for screen.
func NewPerspective(c *PerspectiveCamera, screen Screen) *Camera {
	return &Camera{Projection: mgl32.Perspective(mgl32.DegToRad(c.Fov), screen.Ratio(), c.Near, c.Far)}
}

// NewOrthographic builds an orthographic camera spanning c.Scale world units
// along the shorter screen side.
func NewOrthographic(c *OrthographicCamera, screen Screen) *Camera {
	w, h := float32(1), float32(1)
	if screen.Width >= screen.Height {
		h = 1 / screen.Ratio()
	} else {
		w = screen.Ratio()
	}
	half := c.Scale * 0.5
	return &Camera{Projection: mgl32.Ortho(-half*w, half*w, -half*h, half*h, c.Near, c.Far)}
}

// View returns the view matrix for a camera placed at p.
func (c *Camera) View(p *position.Position) mgl32.Mat4 {
	return p.Transformation().Inv()
}

// ViewProjection returns projection × view for a camera placed at p.
func (c *Camera) ViewProjection(p *position.Position) mgl32.Mat4 {
	return c.Projection.Mul4(c.View(p))
}

// NewUICamera creates the orthographic camera used for screen-space drawing,
// one world unit per pixel with the origin at the bottom-left corner.
func NewUICamera(engine *ecs.Engine, screen Screen) *ecs.Entity {
	w, h := float32(screen.Width), float32(screen.Height)
	camera := &Camera{
		Projection: mgl32.Ortho(-w*0.5, w*0.5, -h*0.5, h*0.5, 0.01, 1),
		UI:         true,
	}
	p := position.New().SetGlobalTranslation(position.X(w*0.5), position.Y(h*0.5))

	return engine.Create(func(e *ecs.Entity) {
		e.Named("ui-camera").AddAll(camera, p)
	})
}
