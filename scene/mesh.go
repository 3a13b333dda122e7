package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/plus3/gdxcore/ecs"
)

// MeshPrimitiveType is the component type of MeshPrimitive.
var MeshPrimitiveType = ecs.NewComponentType[*MeshPrimitive]("MeshPrimitive")

// MeshPrimitive is one drawable part of a model with its resolved material.
// Renderers read it together with the entity's global transformation.
type MeshPrimitive struct {
	Id        uuid.UUID
	Name      string
	Primitive *Primitive
	Material  *Material
	// Skinned primitives are deformed by the entity's AnimatedModel pose.
	Skinned bool
	// Dirty is set when the vertices changed since the renderer last
	// uploaded them.
	Dirty bool
}

func (*MeshPrimitive) Type() ecs.TypeId { return MeshPrimitiveType.Id() }

// quad is the unit square used by sprites and text, facing +Z.
func quad() *Primitive {
	return &Primitive{
		Id: uuid.New(),
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 1}},
			{Position: mgl32.Vec3{1, 1, 0}, UV: mgl32.Vec2{1, 1}},
		},
		Indices: []int{0, 1, 2, 2, 1, 3},
	}
}
