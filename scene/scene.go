// Package scene loads scene descriptions from YAML and turns them into
// entities: models with their mesh primitives and bounding boxes, animated
// armatures, cameras, sprites and text, each placed in a Position hierarchy.
package scene

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupported is returned for node types the builder cannot turn into
	// entities, such as lights, and for cameras whose parameters describe no
	// projection.
	ErrUnsupported = errors.New("scene: unsupported")
	// ErrMissingReference is returned when a node, primitive or animation
	// refers to an id the scene does not define, cameras included.
	ErrMissingReference = errors.New("scene: missing reference")
)

// ObjectType is the kind of object a node places in the scene.
type ObjectType string

const (
	ObjectModel    ObjectType = "model"
	ObjectBox      ObjectType = "box"
	ObjectArmature ObjectType = "armature"
	ObjectCamera   ObjectType = "camera"
	ObjectLight    ObjectType = "light"
)

// Node places an object in the scene graph. Reference is the id of the
// model, armature or camera it instantiates. Transformation is relative to
// the parent node; an all-zero matrix means identity.
type Node struct {
	Id             uuid.UUID  `yaml:"id"`
	Name           string     `yaml:"name"`
	Type           ObjectType `yaml:"type"`
	Reference      uuid.UUID  `yaml:"reference"`
	Transformation mgl32.Mat4 `yaml:"transformation"`
	Children       []Node     `yaml:"children,omitempty"`
}

// Matrix returns the node transformation.
func (n *Node) Matrix() mgl32.Mat4 {
	if n.Transformation == (mgl32.Mat4{}) {
		return mgl32.Ident4()
	}
	return n.Transformation
}

type Material struct {
	Id      uuid.UUID  `yaml:"id"`
	Name    string     `yaml:"name"`
	Color   mgl32.Vec4 `yaml:"color"`
	Texture string     `yaml:"texture,omitempty"`
}

type Vertex struct {
	Position mgl32.Vec3 `yaml:"position"`
	Normal   mgl32.Vec3 `yaml:"normal"`
	UV       mgl32.Vec2 `yaml:"uv"`
	// Joints and Weights bind the vertex to up to four armature joints.
	Joints  [4]int     `yaml:"joints,omitempty"`
	Weights mgl32.Vec4 `yaml:"weights,omitempty"`
}

type Primitive struct {
	Id       uuid.UUID `yaml:"id"`
	Material uuid.UUID `yaml:"material"`
	Vertices []Vertex  `yaml:"vertices"`
	Indices  []int     `yaml:"indices"`
}

type Model struct {
	Id         uuid.UUID   `yaml:"id"`
	Name       string      `yaml:"name"`
	Primitives []Primitive `yaml:"primitives"`
}

type Joint struct {
	Name        string     `yaml:"name"`
	Parent      int        `yaml:"parent"`
	InverseBind mgl32.Mat4 `yaml:"inverse_bind"`
}

type Armature struct {
	Id     uuid.UUID `yaml:"id"`
	Name   string    `yaml:"name"`
	Joints []Joint   `yaml:"joints"`
}

// JointFrame is one joint of a keyframe. Rotation is a quaternion stored as
// x, y, z, w.
type JointFrame struct {
	Translation mgl32.Vec3 `yaml:"translation"`
	Rotation    mgl32.Vec4 `yaml:"rotation"`
	Scale       mgl32.Vec3 `yaml:"scale"`
}

type Frame struct {
	Time   float32      `yaml:"time"`
	Joints []JointFrame `yaml:"joints"`
}

type Animation struct {
	Id       uuid.UUID `yaml:"id"`
	Name     string    `yaml:"name"`
	Armature uuid.UUID `yaml:"armature"`
	Frames   []Frame   `yaml:"frames"`
}

type PerspectiveCamera struct {
	Id   uuid.UUID `yaml:"id"`
	Name string    `yaml:"name"`
	// Fov is the vertical field of view in degrees.
	Fov  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

type OrthographicCamera struct {
	Id    uuid.UUID `yaml:"id"`
	Name  string    `yaml:"name"`
	Scale float32   `yaml:"scale"`
	Near  float32   `yaml:"near"`
	Far   float32   `yaml:"far"`
}

// Valid reports whether the camera spans a positive extent in front of a
// positive near plane.
func (c *PerspectiveCamera) Valid() bool {
	return c.Fov > 0 && c.Fov < 180 && c.Near > 0 && c.Far > c.Near
}

// Valid reports whether the camera spans a positive extent.
func (c *OrthographicCamera) Valid() bool {
	return c.Scale > 0 && c.Far > c.Near
}

// SpriteAnimation plays Frames, indices into the sprite UVs, each for
// FrameDuration seconds.
type SpriteAnimation struct {
	Frames        []int   `yaml:"frames"`
	FrameDuration float32 `yaml:"frame_duration"`
	Loop          bool    `yaml:"loop"`
}

// SpriteSheet cuts a material texture into UV rectangles, each stored as
// min u, min v, max u, max v.
type SpriteSheet struct {
	Id         uuid.UUID                  `yaml:"id"`
	Name       string                     `yaml:"name"`
	Material   uuid.UUID                  `yaml:"material"`
	UVs        []mgl32.Vec4               `yaml:"uvs"`
	Animations map[string]SpriteAnimation `yaml:"animations"`
}

// Scene is a decoded scene description.
type Scene struct {
	Name                string               `yaml:"name"`
	Materials           []Material           `yaml:"materials"`
	Models              []Model              `yaml:"models"`
	Armatures           []Armature           `yaml:"armatures"`
	Animations          []Animation          `yaml:"animations"`
	PerspectiveCameras  []PerspectiveCamera  `yaml:"perspective_cameras"`
	OrthographicCameras []OrthographicCamera `yaml:"orthographic_cameras"`
	Sprites             []SpriteSheet        `yaml:"sprites"`
	Nodes               []Node               `yaml:"nodes"`

	materials   map[uuid.UUID]*Material
	models      map[uuid.UUID]*Model
	armatures   map[uuid.UUID]*Armature
	animations  map[uuid.UUID][]*Animation
	perspective map[uuid.UUID]*PerspectiveCamera
	orthogonal  map[uuid.UUID]*OrthographicCamera
	sprites     map[uuid.UUID]*SpriteSheet
}

// Load decodes a scene from YAML.
func Load(r io.Reader) (*Scene, error) {
	var s Scene
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	s.index()
	return &s, nil
}

// LoadFile decodes the scene stored at path.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadAll decodes every path concurrently. Scenes are returned in the order
// of paths; the first failure cancels the remaining loads.
func LoadAll(ctx context.Context, paths ...string) ([]*Scene, error) {
	scenes := make([]*Scene, len(paths))
	group, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := LoadFile(path)
			if err != nil {
				return err
			}
			scenes[i] = s
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return scenes, nil
}

func (s *Scene) index() {
	s.materials = indexBy(s.Materials, func(m *Material) uuid.UUID { return m.Id })
	s.models = indexBy(s.Models, func(m *Model) uuid.UUID { return m.Id })
	s.armatures = indexBy(s.Armatures, func(a *Armature) uuid.UUID { return a.Id })
	s.perspective = indexBy(s.PerspectiveCameras, func(c *PerspectiveCamera) uuid.UUID { return c.Id })
	s.orthogonal = indexBy(s.OrthographicCameras, func(c *OrthographicCamera) uuid.UUID { return c.Id })
	s.sprites = indexBy(s.Sprites, func(sheet *SpriteSheet) uuid.UUID { return sheet.Id })

	s.animations = make(map[uuid.UUID][]*Animation)
	for i := range s.Animations {
		animation := &s.Animations[i]
		s.animations[animation.Armature] = append(s.animations[animation.Armature], animation)
	}
}

func indexBy[T any](items []T, id func(*T) uuid.UUID) map[uuid.UUID]*T {
	index := make(map[uuid.UUID]*T, len(items))
	for i := range items {
		index[id(&items[i])] = &items[i]
	}
	return index
}

// Material returns the material with the given id.
func (s *Scene) Material(id uuid.UUID) (*Material, bool) {
	m, ok := s.materials[id]
	return m, ok
}

// Model returns the model with the given id.
func (s *Scene) Model(id uuid.UUID) (*Model, bool) {
	m, ok := s.models[id]
	return m, ok
}

// Sprite returns the sprite sheet with the given id.
func (s *Scene) Sprite(id uuid.UUID) (*SpriteSheet, bool) {
	sheet, ok := s.sprites[id]
	return sheet, ok
}

// SpriteByName returns the first sprite sheet called name.
func (s *Scene) SpriteByName(name string) (*SpriteSheet, bool) {
	for i := range s.Sprites {
		if s.Sprites[i].Name == name {
			return &s.Sprites[i], true
		}
	}
	return nil, false
}
