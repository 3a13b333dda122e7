package scene

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
)

// SpriteType is the component type of Sprite.
var SpriteType = ecs.NewComponentType[*Sprite]("Sprite")

// Sprite plays frame animations over a sprite sheet. The current frame is
// exposed as a UV rectangle for the entity's quad MeshPrimitive.
type Sprite struct {
	Sheet *SpriteSheet

	animation string
	frame     int
	elapsed   float32
}

func (*Sprite) Type() ecs.TypeId { return SpriteType.Id() }

// NewSprite shows the first UV of sheet until an animation is played.
func NewSprite(sheet *SpriteSheet) *Sprite {
	return &Sprite{Sheet: sheet}
}

// Play starts the named animation from its first frame.
func (s *Sprite) Play(name string) error {
	if _, ok := s.Sheet.Animations[name]; !ok {
		return fmt.Errorf("%w: sprite %q has no animation %q", ErrMissingReference, s.Sheet.Name, name)
	}
	s.animation = name
	s.frame = 0
	s.elapsed = 0
	return nil
}

// Animation returns the playing animation, empty when none.
func (s *Sprite) Animation() string {
	return s.animation
}

// Animations lists the animation names of the sheet, sorted.
func (s *Sprite) Animations() []string {
	names := make([]string, 0, len(s.Sheet.Animations))
	for name := range s.Sheet.Animations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Update advances the playing animation by delta seconds.
func (s *Sprite) Update(delta float32) {
	animation, ok := s.Sheet.Animations[s.animation]
	if !ok || len(animation.Frames) == 0 || animation.FrameDuration <= 0 {
		return
	}

	s.elapsed += delta
	for s.elapsed >= animation.FrameDuration {
		s.elapsed -= animation.FrameDuration
		switch {
		case s.frame < len(animation.Frames)-1:
			s.frame++
		case animation.Loop:
			s.frame = 0
		default:
			s.elapsed = 0
			return
		}
	}
}

// Frame returns the index into the sheet UVs of the frame on display.
func (s *Sprite) Frame() int {
	animation, ok := s.Sheet.Animations[s.animation]
	if !ok || len(animation.Frames) == 0 {
		return 0
	}
	return animation.Frames[s.frame]
}

// UV returns the rectangle of the frame on display as min u, min v, max u,
// max v. A sheet without UVs covers the whole texture.
func (s *Sprite) UV() mgl32.Vec4 {
	frame := s.Frame()
	if frame < 0 || frame >= len(s.Sheet.UVs) {
		return mgl32.Vec4{0, 0, 1, 1}
	}
	return s.Sheet.UVs[frame]
}

// SpriteSystem advances every Sprite and rewrites the UVs of the entity's
// quad when the displayed frame changes.
type SpriteSystem struct{}

func NewSpriteSystem() *SpriteSystem {
	return &SpriteSystem{}
}

func (*SpriteSystem) Name() string { return "SpriteSystem" }

func (*SpriteSystem) Query() ecs.EntityQuery {
	return ecs.NewQuery(SpriteType.Id(), MeshPrimitiveType.Id())
}

func (*SpriteSystem) Update(delta float32, entity *ecs.Entity) {
	sprite := SpriteType.Get(entity)
	before := sprite.Frame()
	sprite.Update(delta)
	if sprite.Frame() == before {
		return
	}

	mesh := MeshPrimitiveType.Get(entity)
	applyUV(mesh.Primitive, sprite.UV())
	mesh.Dirty = true
}

// applyUV maps rect onto the four vertices of a quad.
func applyUV(quad *Primitive, rect mgl32.Vec4) {
	if len(quad.Vertices) != 4 {
		return
	}
	quad.Vertices[0].UV = mgl32.Vec2{rect[0], rect[1]}
	quad.Vertices[1].UV = mgl32.Vec2{rect[2], rect[1]}
	quad.Vertices[2].UV = mgl32.Vec2{rect[0], rect[3]}
	quad.Vertices[3].UV = mgl32.Vec2{rect[2], rect[3]}
}
