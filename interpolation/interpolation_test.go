package interpolation_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/interpolation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestInterpolationEndpoints(t *testing.T) {
	for _, i := range interpolation.All() {
		t.Run(i.String(), func(t *testing.T) {
			assert.InDelta(t, 0, i.Interpolate(0), 1e-3, "f(0)")
			assert.InDelta(t, 1, i.Interpolate(1), 1e-3, "f(1)")
		})
	}
}

func TestLinearIsIdentity(t *testing.T) {
	for _, p := range []float32{0, 0.1, 0.25, 0.5, 0.75, 1} {
		assert.Equal(t, p, interpolation.Linear.Interpolate(p))
	}
}

func TestInterpolationShapes(t *testing.T) {
	tests := []struct {
		name     string
		i        interpolation.Interpolation
		percent  float32
		expected float32
	}{
		{"pow2 midpoint", interpolation.Pow2, 0.5, 0.5},
		{"pow2 quarter", interpolation.Pow2, 0.25, 0.125},
		{"powIn3", interpolation.PowIn3, 0.5, 0.125},
		{"powOut2", interpolation.PowOut2, 0.5, 0.75},
		{"sine midpoint", interpolation.Sine, 0.5, 0.5},
		{"sineOut", interpolation.SineOut, 0.5, 0.70710677},
		{"circleIn", interpolation.CircleIn, 0.6, 0.2},
		{"swingIn undershoots", interpolation.SwingIn, 0.5, -0.125},
		{"elasticIn cut-off", interpolation.ElasticIn, 0.995, 1},
		{"elasticOut at zero", interpolation.ElasticOut, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.i.Interpolate(tt.percent), 1e-5)
		})
	}
}

func TestApply(t *testing.T) {
	assert.InDelta(t, 15, interpolation.Apply(interpolation.Linear, 10, 20, 0.5), 1e-6)
	assert.InDelta(t, 20, interpolation.Apply(interpolation.Pow4, 10, 20, 1), 1e-5)
	assert.InDelta(t, -5, interpolation.Apply(interpolation.Linear, 0, -10, 0.5), 1e-6)
}

func TestByName(t *testing.T) {
	i, err := interpolation.ByName("bounceOut")
	require.NoError(t, err)
	assert.Equal(t, interpolation.BounceOut, i)

	i, err = interpolation.ByName("exp10In")
	require.NoError(t, err)
	assert.Equal(t, "exp10In", i.String())

	_, err = interpolation.ByName("wobble")
	assert.ErrorIs(t, err, interpolation.ErrUnknown)

	assert.Contains(t, interpolation.Names(), "linear")
	assert.Contains(t, interpolation.Names(), "outQuad")
}

func TestNewBounceOutValidatesBounces(t *testing.T) {
	for _, bounces := range []int{1, 6} {
		_, err := interpolation.NewBounceOut(bounces)
		assert.ErrorIs(t, err, interpolation.ErrBounces)
	}
	for bounces := 2; bounces <= 5; bounces++ {
		i, err := interpolation.NewBounceOut(bounces)
		require.NoError(t, err)
		assert.InDelta(t, 1, i.Interpolate(1), 1e-6)
		assert.InDelta(t, 0, i.Interpolate(0), 1e-3)
	}
}

func TestEaseAdapter(t *testing.T) {
	adapted := interpolation.Ease("outCubic", ease.OutCubic)
	for _, p := range []float32{0, 0.2, 0.5, 0.8, 1} {
		assert.Equal(t, ease.OutCubic(p, 0, 1, 1), adapted.Interpolate(p))
	}
	assert.Equal(t, "outCubic", adapted.String())

	registered, err := interpolation.ByName("inOutQuad")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, registered.Interpolate(0.5), 1e-6)
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(10), interpolation.Lerp(10, 0, 0))
	assert.Equal(t, float32(0), interpolation.Lerp(10, 0, 1))
	assert.InDelta(t, 1, interpolation.Lerp(10, 0, 0.9), 1e-5)

	assert.InDelta(t, interpolation.Lerp(10, 0, 0.1), interpolation.LerpDelta(10, 0, 0.9, 1), 1e-5)
	assert.Equal(t, float32(10), interpolation.LerpDelta(10, 0, 0.9, 0))
}

func TestSlerp(t *testing.T) {
	start := mgl32.QuatIdent()
	end := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	assert.Equal(t, start, interpolation.Slerp(start, start, 0.3))
	assert.True(t, interpolation.Slerp(start, end, 0).ApproxEqualThreshold(start, 1e-5))
	assert.True(t, interpolation.Slerp(start, end, 1).ApproxEqualThreshold(end, 1e-5))

	half := interpolation.Slerp(start, end, 0.5)
	expected := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})
	assert.True(t, half.ApproxEqualThreshold(expected, 1e-5), "got %v", half)

	// The negated end describes the same orientation; slerp takes the short path.
	flipped := interpolation.Slerp(start, end.Scale(-1), 0.5)
	assert.True(t, flipped.ApproxEqualThreshold(expected, 1e-5), "got %v", flipped)
}

func TestDecomposeCompose(t *testing.T) {
	translation := mgl32.Vec3{1, 2, 3}
	rotation := mgl32.QuatRotate(mgl32.DegToRad(30), mgl32.Vec3{0, 0, 1})
	scale := mgl32.Vec3{2, 3, 4}

	m := interpolation.Compose(translation, rotation, scale)
	gotT, gotR, gotS := interpolation.Decompose(m)

	assert.True(t, gotT.ApproxEqualThreshold(translation, 1e-5), "translation %v", gotT)
	assert.True(t, gotR.OrientationEqualThreshold(rotation, 1e-5), "rotation %v", gotR)
	assert.True(t, gotS.ApproxEqualThreshold(scale, 1e-5), "scale %v", gotS)
}

func TestInterpolateMat4(t *testing.T) {
	start := interpolation.Compose(mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
	target := interpolation.Compose(
		mgl32.Vec3{10, 0, 0},
		mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
		mgl32.Vec3{3, 3, 3},
	)

	translation, rotation, scale := interpolation.Decompose(interpolation.InterpolateMat4(target, start, 0.5))
	assert.InDelta(t, 5, translation.X(), 1e-4)
	assert.InDelta(t, 2, scale.X(), 1e-4)
	expected := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})
	assert.True(t, rotation.OrientationEqualThreshold(expected, 1e-4), "rotation %v", rotation)

	assert.True(t, interpolation.InterpolateMat4(target, start, 1).ApproxEqualThreshold(target, 1e-4))
	assert.True(t, interpolation.LerpMat4(target, start, 0).ApproxEqualThreshold(target, 1e-4))
}
