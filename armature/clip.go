package armature

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/interpolation"
)

// JointPose is the local transform of one joint.
type JointPose struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// RestPose is the identity joint pose.
func RestPose() JointPose {
	return JointPose{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// PoseFromMatrix decomposes a local joint matrix.
func PoseFromMatrix(m mgl32.Mat4) JointPose {
	t, r, s := interpolation.Decompose(m)
	return JointPose{Translation: t, Rotation: r, Scale: s}
}

// Matrix composes the pose into a local joint matrix.
func (p JointPose) Matrix() mgl32.Mat4 {
	return interpolation.Compose(p.Translation, p.Rotation, p.Scale)
}

// Blend mixes p toward target: translation and scale are interpolated
// linearly and rotation along the shortest arc.
func (p JointPose) Blend(target JointPose, t float32) JointPose {
	return JointPose{
		Translation: p.Translation.Add(target.Translation.Sub(p.Translation).Mul(t)),
		Rotation:    interpolation.Slerp(p.Rotation, target.Rotation, t).Normalize(),
		Scale:       p.Scale.Add(target.Scale.Sub(p.Scale).Mul(t)),
	}
}

// KeyFrame is the pose of every joint at Time seconds into a clip.
type KeyFrame struct {
	Time float32
	Pose []JointPose
}

// Clip is a named animation. Frames are ordered by time.
type Clip struct {
	Name   string
	Frames []KeyFrame
}

// Duration is the time of the last keyframe.
func (c *Clip) Duration() float32 {
	if len(c.Frames) == 0 {
		return 0
	}
	return c.Frames[len(c.Frames)-1].Time
}

// Validate checks that frames are ordered and carry one pose per joint.
func (c *Clip) Validate(joints int) error {
	for i, frame := range c.Frames {
		if len(frame.Pose) != joints {
			return fmt.Errorf("%w: clip %q frame %d has %d poses for %d joints",
				ErrInvalidArmature, c.Name, i, len(frame.Pose), joints)
		}
		if i > 0 && frame.Time < c.Frames[i-1].Time {
			return fmt.Errorf("%w: clip %q frame %d at %gs precedes frame %d at %gs",
				ErrInvalidArmature, c.Name, i, frame.Time, i-1, c.Frames[i-1].Time)
		}
	}
	return nil
}

// Sample writes the pose at t seconds into out, which must hold one entry
// per joint, blending the two keyframes surrounding t. Times outside the
// clip are clamped. A clip without frames leaves out untouched.
func (c *Clip) Sample(t float32, out []JointPose) []JointPose {
	if len(c.Frames) == 0 {
		return out
	}

	next, _ := slices.BinarySearchFunc(c.Frames, t, func(frame KeyFrame, t float32) int {
		switch {
		case frame.Time < t:
			return -1
		case frame.Time > t:
			return 1
		}
		return 0
	})

	switch {
	case next == 0:
		copy(out, c.Frames[0].Pose)
		return out
	case next >= len(c.Frames):
		copy(out, c.Frames[len(c.Frames)-1].Pose)
		return out
	}

	from, to := c.Frames[next-1], c.Frames[next]
	span := to.Time - from.Time
	if span <= 0 {
		copy(out, to.Pose)
		return out
	}

	alpha := (t - from.Time) / span
	for i := range out {
		out[i] = from.Pose[i].Blend(to.Pose[i], alpha)
	}
	return out
}
