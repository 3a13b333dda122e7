package interpolation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lerp moves current toward target, keeping step of the remaining distance.
// A step of 0 snaps to target, a step of 1 keeps current.
func Lerp(target, current, step float32) float32 {
	return target + step*(current-target)
}

// LerpDelta is the frame-rate independent form of Lerp: the step applied is
// 1 - step^delta, so one second with step 0.9 equals Lerp with step 0.1.
func LerpDelta(target, current, step, delta float32) float32 {
	return Lerp(target, current, 1-float32(math.Pow(float64(step), float64(delta))))
}

// Mix returns start + (target - start) * blend.
func Mix(target, start, blend float32) float32 {
	return start + (target-start)*blend
}

// LerpMat4 applies Lerp to the translation and scale of two transformations
// and slerps their rotations by the same step.
func LerpMat4(target, current mgl32.Mat4, step float32) mgl32.Mat4 {
	tt, rt, st := Decompose(target)
	tc, rc, sc := Decompose(current)

	translation := mgl32.Vec3{
		Lerp(tt[0], tc[0], step),
		Lerp(tt[1], tc[1], step),
		Lerp(tt[2], tc[2], step),
	}
	scale := mgl32.Vec3{
		Lerp(st[0], sc[0], step),
		Lerp(st[1], sc[1], step),
		Lerp(st[2], sc[2], step),
	}
	return Compose(translation, Slerp(rt, rc, step), scale)
}

// LerpMat4Delta is the frame-rate independent form of LerpMat4.
func LerpMat4Delta(target, current mgl32.Mat4, step, delta float32) mgl32.Mat4 {
	return LerpMat4(target, current, 1-float32(math.Pow(float64(step), float64(delta))))
}

// InterpolateMat4 blends from start (blend 0) to target (blend 1): linear
// translation and scale, spherical rotation.
func InterpolateMat4(target, start mgl32.Mat4, blend float32) mgl32.Mat4 {
	ts, rs, ss := Decompose(start)
	tt, rt, st := Decompose(target)

	translation := ts.Add(tt.Sub(ts).Mul(blend))
	scale := ss.Add(st.Sub(ss).Mul(blend))
	return Compose(translation, Slerp(rs, rt, blend), scale)
}

// Slerp interpolates along the shortest arc between q1 and q2. Nearly
// parallel quaternions fall back to a component-wise lerp.
func Slerp(q1, q2 mgl32.Quat, t float32) mgl32.Quat {
	if q1 == q2 {
		return q1
	}

	dot := q1.Dot(q2)
	if dot < 0 {
		dot = -dot
		q2 = q2.Scale(-1)
	}

	scale0 := 1 - t
	scale1 := t
	if 1-dot > 0.1 {
		theta := math.Acos(float64(dot))
		invSinTheta := 1 / math.Sin(theta)
		scale0 = float32(math.Sin(float64(1-t)*theta) * invSinTheta)
		scale1 = float32(math.Sin(float64(t)*theta) * invSinTheta)
	}

	return q1.Scale(scale0).Add(q2.Scale(scale1))
}

// Compose builds translation × rotation × scale.
func Compose(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(translation[0], translation[1], translation[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Decompose splits an affine transformation without shear into translation,
// rotation and scale. A negative determinant is carried by the X scale.
func Decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	translation := m.Col(3).Vec3()

	x := m.Col(0).Vec3()
	y := m.Col(1).Vec3()
	z := m.Col(2).Vec3()
	scale := mgl32.Vec3{x.Len(), y.Len(), z.Len()}
	if m.Mat3().Det() < 0 {
		scale[0] = -scale[0]
	}

	if scale[0] == 0 || scale[1] == 0 || scale[2] == 0 {
		return translation, mgl32.QuatIdent(), scale
	}

	x = x.Mul(1 / scale[0])
	y = y.Mul(1 / scale[1])
	z = z.Mul(1 / scale[2])
	rotation := mgl32.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return translation, mgl32.Mat4ToQuat(rotation).Normalize(), scale
}
