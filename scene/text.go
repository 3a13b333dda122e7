package scene

import (
	"strings"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
)

// TextType is the component type of Text.
var TextType = ecs.NewComponentType[*Text]("Text")

type HorizontalAlign int

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
)

// Glyph is the quad of one character in the entity's local space.
type Glyph struct {
	Char rune
	Min  mgl32.Vec2
	Max  mgl32.Vec2
}

// Text lays out monospaced characters inside the entity's BoundingBox, from
// its top edge down. Characters are scaled so that LineWidth of them fill
// the box width. The layout is rebuilt lazily after the text, the alignment
// or the bounding box changes.
type Text struct {
	content   string
	lineWidth int
	align     HorizontalAlign

	entity *ecs.Entity
	dirty  bool
	glyphs []Glyph
}

// NewText creates a text component. A lineWidth of zero uses the longest
// line of content.
func NewText(content string, lineWidth int, align HorizontalAlign) *Text {
	return &Text{content: content, lineWidth: lineWidth, align: align, dirty: true}
}

func (*Text) Type() ecs.TypeId { return TextType.Id() }

func (t *Text) OnAdded(entity *ecs.Entity) {
	t.entity = entity
	t.dirty = true
}

func (t *Text) OnRemoved(*ecs.Entity) {
	t.entity = nil
}

func (t *Text) OnComponentUpdated(changed ecs.TypeId) {
	if changed == BoundingBoxType.Id() {
		t.dirty = true
	}
}

func (t *Text) Content() string { return t.content }

// SetContent replaces the text.
func (t *Text) SetContent(content string) {
	t.content = content
	t.dirty = true
}

// SetAlign changes the horizontal alignment of every line.
func (t *Text) SetAlign(align HorizontalAlign) {
	t.align = align
	t.dirty = true
}

// Dirty reports whether the layout will be rebuilt on the next read.
func (t *Text) Dirty() bool {
	return t.dirty
}

// Glyphs returns the laid out characters. Spaces advance without a glyph.
func (t *Text) Glyphs() []Glyph {
	if t.dirty {
		t.layout()
	}
	return t.glyphs
}

func (t *Text) layout() {
	t.glyphs = t.glyphs[:0]
	t.dirty = false

	var box *BoundingBox
	if t.entity != nil {
		box, _ = BoundingBoxType.Find(t.entity)
	}
	if box == nil {
		box = NewBoundingBox(mgl32.Vec3{}, mgl32.Vec3{1, 1, 0})
	}

	lines := strings.Split(t.content, "\n")
	width := t.lineWidth
	if width <= 0 {
		for _, line := range lines {
			width = max(width, utf8.RuneCountInString(line))
		}
	}
	if width == 0 {
		return
	}

	left, right := box.LocalMin.X(), box.LocalMax.X()
	size := (right - left) / float32(width)
	top := box.LocalMax.Y()

	for row, line := range lines {
		lineSize := size * float32(utf8.RuneCountInString(line))
		var start float32
		switch t.align {
		case AlignRight:
			start = right - lineSize
		case AlignCenter:
			start = (right-left)*0.5 + left - lineSize*0.5
		default:
			start = left
		}

		y := top - float32(row)*size
		column := 0
		for _, char := range line {
			x := start + float32(column)*size
			column++
			if char == ' ' {
				continue
			}
			t.glyphs = append(t.glyphs, Glyph{
				Char: char,
				Min:  mgl32.Vec2{x, y - size},
				Max:  mgl32.Vec2{x + size, y},
			})
		}
	}

	if t.entity == nil {
		return
	}
	if mesh, ok := MeshPrimitiveType.Find(t.entity); ok {
		primitive := t.mesh()
		if mesh.Primitive != nil {
			primitive.Id = mesh.Primitive.Id
			primitive.Material = mesh.Primitive.Material
		}
		mesh.Primitive = primitive
		mesh.Dirty = true
	}
}

// mesh builds two triangles per glyph.
func (t *Text) mesh() *Primitive {
	primitive := &Primitive{
		Vertices: make([]Vertex, 0, len(t.glyphs)*4),
		Indices:  make([]int, 0, len(t.glyphs)*6),
	}
	for i, g := range t.glyphs {
		base := i * 4
		primitive.Vertices = append(primitive.Vertices,
			Vertex{Position: mgl32.Vec3{g.Min[0], g.Max[1], 0}, Normal: mgl32.Vec3{0, 0, 1}},
			Vertex{Position: mgl32.Vec3{g.Min[0], g.Min[1], 0}, Normal: mgl32.Vec3{0, 0, 1}},
			Vertex{Position: mgl32.Vec3{g.Max[0], g.Min[1], 0}, Normal: mgl32.Vec3{0, 0, 1}},
			Vertex{Position: mgl32.Vec3{g.Max[0], g.Max[1], 0}, Normal: mgl32.Vec3{0, 0, 1}},
		)
		primitive.Indices = append(primitive.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return primitive
}
