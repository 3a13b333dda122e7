package tween

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Shape converts values of T to and from a fixed number of float channels.
// Each channel is interpolated independently.
type Shape[T any] interface {
	Channels() int
	Extract(value T, dst []float32)
	Build(channels []float32) T
}

// Float is the shape of a single float32.
var Float Shape[float32] = floatShape{}

// Vec2 is the shape of an mgl32.Vec2.
var Vec2 Shape[mgl32.Vec2] = vec2Shape{}

// Vec3 is the shape of an mgl32.Vec3.
var Vec3 Shape[mgl32.Vec3] = vec3Shape{}

// Quat is the shape of a rotation. Channels are blended component-wise and
// normalised when the value is built.
var Quat Shape[mgl32.Quat] = quatShape{}

type floatShape struct{}

func (floatShape) Channels() int                        { return 1 }
func (floatShape) Extract(value float32, dst []float32) { dst[0] = value }
func (floatShape) Build(channels []float32) float32     { return channels[0] }

type vec2Shape struct{}

func (vec2Shape) Channels() int { return 2 }

func (vec2Shape) Extract(value mgl32.Vec2, dst []float32) {
	dst[0], dst[1] = value[0], value[1]
}

func (vec2Shape) Build(channels []float32) mgl32.Vec2 {
	return mgl32.Vec2{channels[0], channels[1]}
}

type vec3Shape struct{}

func (vec3Shape) Channels() int { return 3 }

func (vec3Shape) Extract(value mgl32.Vec3, dst []float32) {
	dst[0], dst[1], dst[2] = value[0], value[1], value[2]
}

func (vec3Shape) Build(channels []float32) mgl32.Vec3 {
	return mgl32.Vec3{channels[0], channels[1], channels[2]}
}

type quatShape struct{}

func (quatShape) Channels() int { return 4 }

func (quatShape) Extract(value mgl32.Quat, dst []float32) {
	dst[0], dst[1], dst[2], dst[3] = value.W, value.V[0], value.V[1], value.V[2]
}

func (quatShape) Build(channels []float32) mgl32.Quat {
	q := mgl32.Quat{W: channels[0], V: mgl32.Vec3{channels[1], channels[2], channels[3]}}
	if q.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return q.Normalize()
}
