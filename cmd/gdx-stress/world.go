package main

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/armature"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/interpolation"
	"github.com/plus3/gdxcore/position"
	"github.com/plus3/gdxcore/scene"
	"github.com/plus3/gdxcore/tween"
	"go.uber.org/zap"
)

var moverType = ecs.NewComponentType[*mover]("Mover")

// mover carries a one-shot Moveable; it leaves its entity once arrived.
type mover struct {
	*position.Moveable
}

func (*mover) Type() ecs.TypeId { return moverType.Id() }

type moverSystem struct {
	arrived int64
}

func (*moverSystem) Name() string { return "MoverSystem" }

func (*moverSystem) Query() ecs.EntityQuery {
	return ecs.NewQuery(moverType.Id())
}

func (s *moverSystem) Update(delta float32, entity *ecs.Entity) {
	for _, m := range moverType.All(entity) {
		if m.Update(delta) {
			s.arrived++
			entity.Engine().Commands().Defer(func() { entity.Remove(m) })
		}
	}
}

// spinSystem turns every child around its parent.
type spinSystem struct{}

func (*spinSystem) Name() string { return "SpinSystem" }

func (*spinSystem) Query() ecs.EntityQuery {
	return ecs.NewQuery(position.Type.Id())
}

func (*spinSystem) Update(delta float32, entity *ecs.Entity) {
	if _, ok := entity.Parent(); ok {
		position.Type.Get(entity).AddLocalRotation(position.Y(45 * delta))
	}
}

// boundsSystem resolves every bounding box and counts those around the origin.
type boundsSystem struct {
	counting int
	near     int
}

func (*boundsSystem) Name() string { return "BoundsSystem" }

func (*boundsSystem) Query() ecs.EntityQuery {
	return ecs.NewQuery(scene.BoundingBoxType.Id())
}

func (s *boundsSystem) Update(_ float32, entity *ecs.Entity) {
	for _, box := range scene.BoundingBoxType.All(entity) {
		if box.Min().Len() < 10 {
			s.counting++
		}
	}
}

func (s *boundsSystem) PostUpdate(float32) {
	s.near, s.counting = s.counting, 0
}

// World is the populated engine plus the per-tick driver state.
type World struct {
	Engine *ecs.Engine

	cfg    Config
	rng    *rand.Rand
	easing interpolation.Interpolation
	roots  []*ecs.Entity

	movers *moverSystem
	bounds *boundsSystem

	Simulated int64
	Moves     int64
}

// NewWorld registers the systems and populates the engine.
func NewWorld(cfg Config, logger *zap.Logger) (*World, error) {
	easing, err := cfg.Interpolation()
	if err != nil {
		return nil, err
	}

	w := &World{
		Engine: ecs.NewEngine(ecs.WithLogger(logger)),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		easing: easing,
		movers: &moverSystem{},
		bounds: &boundsSystem{},
	}

	w.Engine.Register(tween.NewSystem())
	w.Engine.Register(&spinSystem{})
	w.Engine.Register(w.movers)
	w.Engine.Register(armature.NewSystem())
	w.Engine.Register(w.bounds)

	skeleton, clips := chain(cfg.Joints)
	for i := range cfg.Roots {
		root := w.spawnRoot(i)
		if cfg.AnimatedEvery > 0 && i%cfg.AnimatedEvery == 0 {
			model, err := armature.NewAnimatedModel(skeleton, clips...)
			if err != nil {
				return nil, fmt.Errorf("animated root %d: %w", i, err)
			}
			root.Add(model)
		}
		w.spawnChildren(root, cfg.Depth)
		w.roots = append(w.roots, root)
	}

	return w, nil
}

func (w *World) randomPoint(extent float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(w.rng.Float32()*2 - 1) * extent,
		(w.rng.Float32()*2 - 1) * extent,
		(w.rng.Float32()*2 - 1) * extent,
	}
}

func (w *World) spawnRoot(i int) *ecs.Entity {
	start := w.randomPoint(100)
	end := start.Add(w.randomPoint(10))

	return w.Engine.Create(func(e *ecs.Entity) {
		p := position.New().SetLocalTranslation(position.XYZ(start)...)
		factory := tween.NewFactory()
		factory.Vec3(start, end, w.cfg.TweenDuration, w.easing, tween.WithPingPong(w.cfg.PingPong)).
			Bind(func(v mgl32.Vec3) { p.SetLocalTranslation(position.XYZ(v)...) })
		e.Named(fmt.Sprintf("root-%d", i)).Add(p).Add(factory)
	})
}

func (w *World) spawnChildren(parent *ecs.Entity, depth int) {
	if depth == 0 {
		return
	}
	for range w.cfg.Fanout {
		child := w.Engine.Create(func(e *ecs.Entity) {
			e.Add(position.New().SetLocalTranslation(position.XYZ(w.randomPoint(2))...))
			if depth == 1 {
				e.Add(scene.NewBoundingBox(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}))
			}
		})
		child.AttachTo(parent)
		w.spawnChildren(child, depth-1)
	}
}

// Step drives the work that is not owned by a system: new one-shot moves and
// rolled back simulations on random roots.
func (w *World) Step() {
	for range w.cfg.Moves {
		root := w.roots[w.rng.Intn(len(w.roots))]
		if moverType.Has(root) {
			continue
		}
		target := position.Type.Get(root).Translation().Add(w.randomPoint(5))
		root.Add(&mover{position.NewMoveable(root, target, 0.5, w.easing)})
		w.Moves++
	}

	for range w.cfg.Simulations {
		root := w.roots[w.rng.Intn(len(w.roots))]
		position.Type.Get(root).Simulation(func(sim *position.Simulation) {
			sim.Position().AddGlobalTranslation(position.X(1), position.Z(-1))
			_ = sim.Position().Transformation()
		})
		w.Simulated++
	}
}

// Arrived is the number of moves that reached their target.
func (w *World) Arrived() int64 {
	return w.movers.arrived
}

// Near is the number of bounding boxes close to the origin on the last tick.
func (w *World) Near() int {
	return w.bounds.near
}

// chain builds a vertical chain of joints with a sway clip and a still clip.
func chain(joints int) (*armature.Armature, []*armature.Clip) {
	skeleton := &armature.Armature{}
	rest := make([]armature.JointPose, joints)
	swayed := make([]armature.JointPose, joints)
	for i := range joints {
		parent := i - 1
		if i == 0 {
			parent = armature.NoParent
		}
		skeleton.Joints = append(skeleton.Joints, armature.Joint{
			Name:        fmt.Sprintf("bone-%d", i),
			Parent:      parent,
			InverseBind: mgl32.Translate3D(0, -float32(i), 0),
		})

		rest[i] = armature.RestPose()
		if i > 0 {
			rest[i].Translation = mgl32.Vec3{0, 1, 0}
		}
		swayed[i] = rest[i]
		swayed[i].Rotation = mgl32.QuatRotate(mgl32.DegToRad(20), mgl32.Vec3{0, 0, 1})
	}

	still := &armature.Clip{Name: "still", Frames: []armature.KeyFrame{{Time: 0, Pose: rest}}}
	sway := &armature.Clip{Name: "sway", Frames: []armature.KeyFrame{
		{Time: 0, Pose: rest},
		{Time: 0.5, Pose: swayed},
		{Time: 1, Pose: rest},
	}}
	return skeleton, []*armature.Clip{still, sway}
}
