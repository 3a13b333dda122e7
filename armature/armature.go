// Package armature implements skeletal animation: a joint hierarchy with its
// inverse bind matrices, keyframed clips sampled per joint, and the
// AnimatedModel component that plays and cross-fades clips to produce the
// skinning matrices consumed by renderers.
package armature

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidArmature is returned when a joint hierarchy or one of its
	// clips is malformed.
	ErrInvalidArmature = errors.New("armature: invalid armature")
	// ErrUnknownClip is returned when a clip name is not part of a model.
	ErrUnknownClip = errors.New("armature: unknown clip")
)

// NoParent marks a root joint.
const NoParent = -1

// Joint is one bone of an armature. Parent is the index of the parent joint
// or NoParent.
type Joint struct {
	Name        string
	Parent      int
	InverseBind mgl32.Mat4
}

// Armature is a joint hierarchy in which every parent precedes its children.
type Armature struct {
	Joints []Joint
}

// Validate checks joint ordering and name uniqueness.
func (a *Armature) Validate() error {
	if len(a.Joints) == 0 {
		return fmt.Errorf("%w: no joints", ErrInvalidArmature)
	}

	seen := make(map[string]int, len(a.Joints))
	for i, joint := range a.Joints {
		if joint.Parent != NoParent && (joint.Parent < 0 || joint.Parent >= i) {
			return fmt.Errorf("%w: joint %d (%s) has parent %d, parents must precede children",
				ErrInvalidArmature, i, joint.Name, joint.Parent)
		}
		if joint.Name == "" {
			continue
		}
		if previous, ok := seen[joint.Name]; ok {
			return fmt.Errorf("%w: joints %d and %d are both named %q", ErrInvalidArmature, previous, i, joint.Name)
		}
		seen[joint.Name] = i
	}
	return nil
}

// Index returns the index of the joint called name.
func (a *Armature) Index(name string) (int, bool) {
	for i, joint := range a.Joints {
		if joint.Name == name {
			return i, true
		}
	}
	return 0, false
}

// BindPose returns the rest pose: the inverse of each joint's inverse bind
// matrix expressed relative to its parent.
func (a *Armature) BindPose() []JointPose {
	poses := make([]JointPose, len(a.Joints))
	for i, joint := range a.Joints {
		model := joint.InverseBind.Inv()
		local := model
		if joint.Parent != NoParent {
			local = a.Joints[joint.Parent].InverseBind.Mul4(model)
		}
		poses[i] = PoseFromMatrix(local)
	}
	return poses
}

// globals fills out with the model-space matrix of every joint.
func (a *Armature) globals(poses []JointPose, out []mgl32.Mat4) {
	for i, joint := range a.Joints {
		local := poses[i].Matrix()
		if joint.Parent == NoParent {
			out[i] = local
		} else {
			out[i] = out[joint.Parent].Mul4(local)
		}
	}
}
