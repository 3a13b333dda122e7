package armature

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
)

// Type is the component type of AnimatedModel.
var Type = ecs.NewComponentType[*AnimatedModel]("AnimatedModel")

type playback struct {
	clip *Clip
	time float32
}

func (p *playback) advance(delta float32, loop bool) {
	duration := p.clip.Duration()
	p.time += delta
	switch {
	case duration <= 0:
		p.time = 0
	case loop:
		p.time = float32(math.Mod(float64(p.time), float64(duration)))
		if p.time < 0 {
			p.time += duration
		}
	case p.time > duration:
		p.time = duration
	case p.time < 0:
		p.time = 0
	}
}

// AnimatedModel plays the clips of an armature. While a cross-fade is in
// progress the outgoing clip keeps playing and its pose is blended with the
// incoming one by the fraction of the fade that has elapsed.
type AnimatedModel struct {
	Armature *Armature
	// Speed scales the delta time; negative plays backwards.
	Speed float32
	Loop  bool

	clips    map[string]*Clip
	current  playback
	previous *playback
	fade     float32
	fadeTime float32

	pose    []JointPose
	scratch []JointPose
	global  []mgl32.Mat4
	skin    []mgl32.Mat4
}

// NewAnimatedModel validates armature and clips and starts playing the last
// clip, looping at normal speed.
func NewAnimatedModel(armature *Armature, clips ...*Clip) (*AnimatedModel, error) {
	if err := armature.Validate(); err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		return nil, fmt.Errorf("%w: no clips", ErrInvalidArmature)
	}

	joints := len(armature.Joints)
	m := &AnimatedModel{
		Armature: armature,
		Speed:    1,
		Loop:     true,
		clips:    make(map[string]*Clip, len(clips)),
		pose:     make([]JointPose, joints),
		scratch:  make([]JointPose, joints),
		global:   make([]mgl32.Mat4, joints),
		skin:     make([]mgl32.Mat4, joints),
	}
	for _, clip := range clips {
		if err := clip.Validate(joints); err != nil {
			return nil, err
		}
		m.clips[clip.Name] = clip
	}
	copy(m.pose, armature.BindPose())
	m.current = playback{clip: clips[len(clips)-1]}
	return m, nil
}

func (*AnimatedModel) Type() ecs.TypeId { return Type.Id() }

// Play switches to the clip called name from its start. A positive blend
// cross-fades from the current clip over blend seconds; otherwise the switch
// is immediate.
func (m *AnimatedModel) Play(name string, blend float32) error {
	clip, ok := m.clips[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClip, name)
	}

	if blend > 0 {
		outgoing := m.current
		m.previous = &outgoing
		m.fade = 0
		m.fadeTime = blend
	} else {
		m.previous = nil
	}
	m.current = playback{clip: clip}
	return nil
}

// Update advances the playing clips by delta seconds.
func (m *AnimatedModel) Update(delta float32) {
	m.current.advance(delta*m.Speed, m.Loop)
	if m.previous == nil {
		return
	}

	m.previous.advance(delta*m.Speed, m.Loop)
	m.fade += delta
	if m.fade >= m.fadeTime {
		m.previous = nil
	}
}

// Clip returns the name of the playing clip.
func (m *AnimatedModel) Clip() string {
	return m.current.clip.Name
}

// Clips returns the number of clips the model can play.
func (m *AnimatedModel) Clips() int {
	return len(m.clips)
}

// Time returns the position in the playing clip, in seconds.
func (m *AnimatedModel) Time() float32 {
	return m.current.time
}

// Fading reports whether a cross-fade is in progress.
func (m *AnimatedModel) Fading() bool {
	return m.previous != nil
}

// Weight is the contribution of the playing clip to the pose, 1 outside a
// cross-fade.
func (m *AnimatedModel) Weight() float32 {
	if m.previous == nil {
		return 1
	}
	return m.fade / m.fadeTime
}

// Finished reports whether a non-looping clip reached its end.
func (m *AnimatedModel) Finished() bool {
	if m.Loop {
		return false
	}
	if m.Speed < 0 {
		return m.current.time <= 0
	}
	return m.current.time >= m.current.clip.Duration()
}

// LocalPose samples the blended local pose of every joint.
func (m *AnimatedModel) LocalPose() []JointPose {
	m.current.clip.Sample(m.current.time, m.pose)
	if m.previous != nil {
		m.previous.clip.Sample(m.previous.time, m.scratch)
		weight := m.Weight()
		for i := range m.pose {
			m.pose[i] = m.scratch[i].Blend(m.pose[i], weight)
		}
	}
	return m.pose
}

// Pose returns the skinning matrix of every joint: its model-space transform
// times its inverse bind matrix. The slice is reused by the next call.
func (m *AnimatedModel) Pose() []mgl32.Mat4 {
	m.Armature.globals(m.LocalPose(), m.global)
	for i, joint := range m.Armature.Joints {
		m.skin[i] = m.global[i].Mul4(joint.InverseBind)
	}
	return m.skin
}

// JointTransform returns the model-space transform of the joint called name
// as of the last Pose call.
func (m *AnimatedModel) JointTransform(name string) (mgl32.Mat4, bool) {
	i, ok := m.Armature.Index(name)
	if !ok {
		return mgl32.Mat4{}, false
	}
	return m.global[i], true
}
