package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/armature"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/position"
	"go.uber.org/zap"
)

// Builder turns scene nodes into entities of Engine. Child nodes become
// child entities, except the boxes of a model and the model of an armature,
// which are folded into their parent.
type Builder struct {
	Engine *ecs.Engine
	Screen Screen
}

// NewBuilder creates a builder for engine drawing to screen.
func NewBuilder(engine *ecs.Engine, screen Screen) *Builder {
	return &Builder{Engine: engine, Screen: screen}
}

// Build creates the entities of every root node of s and returns the roots.
// When a node fails, the entities created so far are destroyed.
func (b *Builder) Build(s *Scene) ([]*ecs.Entity, error) {
	roots := make([]*ecs.Entity, 0, len(s.Nodes))
	for i := range s.Nodes {
		root, err := b.Node(s, &s.Nodes[i])
		if err != nil {
			for _, built := range roots {
				b.Engine.Destroy(built)
			}
			return nil, err
		}
		roots = append(roots, root)
	}

	b.Engine.Logger().Debug("scene built",
		zap.String("scene", s.Name),
		zap.Int("roots", len(roots)),
		zap.Int("entities", b.Engine.Count()),
	)
	return roots, nil
}

// Node creates the entity of node and, recursively, of its children.
func (b *Builder) Node(s *Scene, node *Node) (*ecs.Entity, error) {
	var (
		entity *ecs.Entity
		err    error
	)
	switch node.Type {
	case ObjectModel:
		entity, err = b.Model(s, node)
	case ObjectBox:
		entity = b.Box(node)
	case ObjectArmature:
		entity, err = b.Armature(s, node)
	case ObjectCamera:
		entity, err = b.Camera(s, node)
	default:
		err = fmt.Errorf("%w: node %q of type %q", ErrUnsupported, node.Name, node.Type)
	}
	if err != nil {
		return nil, err
	}

	for i := range node.Children {
		child := &node.Children[i]
		if folded(node.Type, child.Type) {
			continue
		}
		built, err := b.Node(s, child)
		if err != nil {
			b.Engine.Destroy(entity)
			return nil, err
		}
		built.AttachTo(entity)
	}
	return entity, nil
}

func folded(parent, child ObjectType) bool {
	switch parent {
	case ObjectModel:
		return child == ObjectBox
	case ObjectArmature:
		return child == ObjectBox || child == ObjectModel
	}
	return false
}

// Box creates an entity holding the cube spanning -1 to 1, placed by the
// node transformation.
func (b *Builder) Box(node *Node) *ecs.Entity {
	return b.Engine.Create(func(e *ecs.Entity) {
		e.Named(node.Name).AddAll(
			position.FromTransformation(node.Matrix()),
			NewBoundingBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}),
		)
	})
}

// Model creates an entity with one MeshPrimitive per primitive of the
// referenced model. Box children become its bounding boxes; without any the
// model is bounded by its vertices.
func (b *Builder) Model(s *Scene, node *Node) (*ecs.Entity, error) {
	model, ok := s.models[node.Reference]
	if !ok {
		return nil, fmt.Errorf("%w: node %q references model %s", ErrMissingReference, node.Name, node.Reference)
	}
	primitives, err := meshPrimitives(s, node, model, false)
	if err != nil {
		return nil, err
	}
	boxes := boundingBoxes(node, model)

	return b.Engine.Create(func(e *ecs.Entity) {
		e.Named(node.Name).Add(position.FromTransformation(node.Matrix()))
		for _, box := range boxes {
			e.Add(box)
		}
		for _, primitive := range primitives {
			e.Add(primitive)
		}
	}), nil
}

// Armature creates an animated model from the referenced armature, every
// animation bound to it and the model of its first model child.
func (b *Builder) Armature(s *Scene, node *Node) (*ecs.Entity, error) {
	def, ok := s.armatures[node.Reference]
	if !ok {
		return nil, fmt.Errorf("%w: node %q references armature %s", ErrMissingReference, node.Name, node.Reference)
	}

	var model *Model
	for i := range node.Children {
		if child := &node.Children[i]; child.Type == ObjectModel {
			if model, ok = s.models[child.Reference]; !ok {
				return nil, fmt.Errorf("%w: armature %q references model %s", ErrMissingReference, node.Name, child.Reference)
			}
			break
		}
	}
	if model == nil {
		return nil, fmt.Errorf("%w: armature %q has no model", ErrMissingReference, node.Name)
	}

	animations := s.animations[def.Id]
	if len(animations) == 0 {
		return nil, fmt.Errorf("%w: armature %q has no animation", ErrMissingReference, node.Name)
	}
	clips := make([]*armature.Clip, len(animations))
	for i, animation := range animations {
		clips[i] = animation.Clip()
	}
	animated, err := armature.NewAnimatedModel(def.Armature(), clips...)
	if err != nil {
		return nil, fmt.Errorf("armature %q: %w", node.Name, err)
	}

	primitives, err := meshPrimitives(s, node, model, true)
	if err != nil {
		return nil, err
	}
	boxes := boundingBoxes(node, model)

	return b.Engine.Create(func(e *ecs.Entity) {
		e.Named(node.Name).AddAll(position.FromTransformation(node.Matrix()), animated)
		for _, box := range boxes {
			e.Add(box)
		}
		for _, primitive := range primitives {
			e.Add(primitive)
		}
	}), nil
}

// Camera creates a perspective or orthographic camera sized for the
// builder's screen. A camera whose parameters describe no projection is
// unsupported.
func (b *Builder) Camera(s *Scene, node *Node) (*ecs.Entity, error) {
	var camera *Camera
	if c, ok := s.perspective[node.Reference]; ok {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: node %q: perspective camera fov %g near %g far %g",
				ErrUnsupported, node.Name, c.Fov, c.Near, c.Far)
		}
		camera = NewPerspective(c, b.Screen)
	} else if c, ok := s.orthogonal[node.Reference]; ok {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: node %q: orthographic camera scale %g near %g far %g",
				ErrUnsupported, node.Name, c.Scale, c.Near, c.Far)
		}
		camera = NewOrthographic(c, b.Screen)
	} else {
		return nil, fmt.Errorf("%w: node %q references camera %s", ErrMissingReference, node.Name, node.Reference)
	}

	return b.Engine.Create(func(e *ecs.Entity) {
		e.Named(node.Name).AddAll(camera, position.FromTransformation(node.Matrix()))
	}), nil
}

// Sprite creates a unit quad showing sheet.
func (b *Builder) Sprite(s *Scene, sheet *SpriteSheet) (*ecs.Entity, error) {
	material, ok := s.materials[sheet.Material]
	if !ok {
		return nil, fmt.Errorf("%w: sprite %q references material %s", ErrMissingReference, sheet.Name, sheet.Material)
	}

	sprite := NewSprite(sheet)
	primitive := quad()
	primitive.Material = material.Id
	applyUV(primitive, sprite.UV())

	return b.Engine.Create(func(e *ecs.Entity) {
		e.Named(sheet.Name).AddAll(
			position.New(),
			sprite,
			&MeshPrimitive{Id: primitive.Id, Name: sheet.Name, Primitive: primitive, Material: material},
		)
	}), nil
}

// Text creates text laid out in a width × height box whose bottom-left
// corner is at x, y.
func (b *Builder) Text(content string, lineWidth int, align HorizontalAlign, x, y, width, height float32) *ecs.Entity {
	primitive := quad()
	return b.Engine.Create(func(e *ecs.Entity) {
		e.Named("text").AddAll(
			position.New().SetGlobalTranslation(position.X(x), position.Y(y)),
			NewBoundingBox(mgl32.Vec3{}, mgl32.Vec3{width, height, 0}),
			&MeshPrimitive{Id: primitive.Id, Name: "text", Primitive: primitive},
			NewText(content, lineWidth, align),
		)
	})
}

func meshPrimitives(s *Scene, node *Node, model *Model, skinned bool) ([]*MeshPrimitive, error) {
	primitives := make([]*MeshPrimitive, len(model.Primitives))
	for i := range model.Primitives {
		primitive := &model.Primitives[i]
		material, ok := s.materials[primitive.Material]
		if !ok {
			return nil, fmt.Errorf("%w: model %q primitive %s has no material %s",
				ErrMissingReference, model.Name, primitive.Id, primitive.Material)
		}
		primitives[i] = &MeshPrimitive{
			Id:        primitive.Id,
			Name:      node.Name,
			Primitive: primitive,
			Material:  material,
			Skinned:   skinned,
		}
	}
	return primitives, nil
}

func boundingBoxes(node *Node, model *Model) []*BoundingBox {
	var boxes []*BoundingBox
	for i := range node.Children {
		if child := &node.Children[i]; child.Type == ObjectBox {
			boxes = append(boxes, BoxFromTransformation(child.Matrix()))
		}
	}
	if len(boxes) == 0 {
		boxes = append(boxes, BoxFromModel(model))
	}
	return boxes
}

// Armature converts the description into a joint hierarchy.
func (a *Armature) Armature() *armature.Armature {
	joints := make([]armature.Joint, len(a.Joints))
	for i, joint := range a.Joints {
		inverse := joint.InverseBind
		if inverse == (mgl32.Mat4{}) {
			inverse = mgl32.Ident4()
		}
		joints[i] = armature.Joint{Name: joint.Name, Parent: joint.Parent, InverseBind: inverse}
	}
	return &armature.Armature{Joints: joints}
}

// Clip converts the animation into keyframes. A zero scale means unit scale
// and a zero rotation means identity.
func (a *Animation) Clip() *armature.Clip {
	frames := make([]armature.KeyFrame, len(a.Frames))
	for i, frame := range a.Frames {
		pose := make([]armature.JointPose, len(frame.Joints))
		for j, joint := range frame.Joints {
			pose[j] = armature.RestPose()
			pose[j].Translation = joint.Translation
			if joint.Rotation != (mgl32.Vec4{}) {
				pose[j].Rotation = mgl32.Quat{W: joint.Rotation[3], V: joint.Rotation.Vec3()}.Normalize()
			}
			if joint.Scale != (mgl32.Vec3{}) {
				pose[j].Scale = joint.Scale
			}
		}
		frames[i] = armature.KeyFrame{Time: frame.Time, Pose: pose}
	}
	return &armature.Clip{Name: a.Name, Frames: frames}
}
