package position

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis selects one component of a vector argument. Mutators accept any
// subset of axes; the others are left unchanged.
type Axis struct {
	index int
	value float32
}

// X selects the x axis.
func X(value float32) Axis { return Axis{0, value} }

// Y selects the y axis.
func Y(value float32) Axis { return Axis{1, value} }

// Z selects the z axis.
func Z(value float32) Axis { return Axis{2, value} }

// XYZ selects all three axes from v.
func XYZ(v mgl32.Vec3) []Axis {
	return []Axis{X(v[0]), Y(v[1]), Z(v[2])}
}

func setAxes(base mgl32.Vec3, axes []Axis) mgl32.Vec3 {
	for _, a := range axes {
		base[a.index] = a.value
	}
	return base
}

func addAxes(base mgl32.Vec3, axes []Axis) mgl32.Vec3 {
	for _, a := range axes {
		base[a.index] += a.value
	}
	return base
}

// fromEuler builds a rotation from Euler angles in degrees, applied x first,
// then y, then z.
func fromEuler(degrees mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(degrees[2]),
		mgl32.DegToRad(degrees[1]),
		mgl32.DegToRad(degrees[0]),
		mgl32.ZYX,
	)
}

// toEuler is the inverse of fromEuler.
func toEuler(q mgl32.Quat) mgl32.Vec3 {
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])

	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))

	sinp := 2 * (w*y - z*x)
	var pitch float64
	if math.Abs(sinp) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		pitch = math.Asin(sinp)
	}

	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))

	return mgl32.Vec3{
		mgl32.RadToDeg(float32(roll)),
		mgl32.RadToDeg(float32(pitch)),
		mgl32.RadToDeg(float32(yaw)),
	}
}
