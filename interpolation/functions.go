package interpolation

import (
	"fmt"
	"math"
)

const halfPi = math.Pi / 2

func pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

func sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

type linear struct{}

func (linear) Interpolate(percent float32) float32 { return percent }
func (linear) String() string                      { return "linear" }

type powInOut struct{ power int }

// NewPow returns an ease-in-out curve of the given power.
func NewPow(power int) Interpolation { return powInOut{power} }

func (p powInOut) Interpolate(percent float32) float32 {
	if percent <= 0.5 {
		return pow(percent*2, float32(p.power)) / 2
	}
	div := float32(2)
	if p.power%2 == 0 {
		div = -2
	}
	return pow((percent-1)*2, float32(p.power))/div + 1
}

func (p powInOut) String() string { return fmt.Sprintf("pow%d", p.power) }

type powIn struct{ power int }

// NewPowIn returns an ease-in curve of the given power.
func NewPowIn(power int) Interpolation { return powIn{power} }

func (p powIn) Interpolate(percent float32) float32 {
	return pow(percent, float32(p.power))
}

func (p powIn) String() string { return fmt.Sprintf("powIn%d", p.power) }

type powOut struct{ power int }

// NewPowOut returns an ease-out curve of the given power.
func NewPowOut(power int) Interpolation { return powOut{power} }

func (p powOut) Interpolate(percent float32) float32 {
	sign := float32(1)
	if p.power%2 == 0 {
		sign = -1
	}
	return pow(percent-1, float32(p.power))*sign + 1
}

func (p powOut) String() string { return fmt.Sprintf("powOut%d", p.power) }

type sine struct{}

func (sine) Interpolate(percent float32) float32 { return (1 - cos(percent*math.Pi)) / 2 }
func (sine) String() string                      { return "sine" }

type sineIn struct{}

func (sineIn) Interpolate(percent float32) float32 { return 1 - cos(percent*halfPi) }
func (sineIn) String() string                      { return "sineIn" }

type sineOut struct{}

func (sineOut) Interpolate(percent float32) float32 { return sin(percent * halfPi) }
func (sineOut) String() string                      { return "sineOut" }

type circle struct{}

func (circle) Interpolate(percent float32) float32 {
	a := percent
	if a <= 0.5 {
		a *= 2
		return (1 - sqrt(1-a*a)) / 2
	}
	a--
	a *= 2
	return (sqrt(1-a*a) + 1) / 2
}

func (circle) String() string { return "circle" }

type circleIn struct{}

func (circleIn) Interpolate(percent float32) float32 { return 1 - sqrt(1-percent*percent) }
func (circleIn) String() string                      { return "circleIn" }

type circleOut struct{}

func (circleOut) Interpolate(percent float32) float32 {
	a := percent - 1
	return sqrt(1 - a*a)
}

func (circleOut) String() string { return "circleOut" }

// elasticParams describes an elastic curve: value^(power*(a-1)) scaled by a
// sine wave with the given number of half oscillations.
type elasticParams struct {
	value, power, scale float32
	bounces             float32
}

func newElasticParams(value, power float32, bounces int, scale float32) elasticParams {
	sign := float32(-1)
	if bounces%2 == 0 {
		sign = 1
	}
	return elasticParams{
		value:   value,
		power:   power,
		scale:   scale,
		bounces: float32(bounces) * math.Pi * sign,
	}
}

type elastic struct{ elasticParams }

// NewElastic returns an elastic ease-in-out curve.
func NewElastic(value, power float32, bounces int, scale float32) Interpolation {
	return elastic{newElasticParams(value, power, bounces, scale)}
}

func (e elastic) Interpolate(percent float32) float32 {
	a := percent
	if a <= 0.5 {
		a *= 2
		return pow(e.value, e.power*(a-1)) * sin(a*e.bounces) * e.scale / 2
	}
	a = (1 - a) * 2
	return 1 - pow(e.value, e.power*(a-1))*sin(a*e.bounces)*e.scale/2
}

func (elastic) String() string { return "elastic" }

type elasticIn struct{ elasticParams }

// NewElasticIn returns an elastic ease-in curve. Percentages from 0.99 on map
// to exactly 1.
func NewElasticIn(value, power float32, bounces int, scale float32) Interpolation {
	return elasticIn{newElasticParams(value, power, bounces, scale)}
}

func (e elasticIn) Interpolate(percent float32) float32 {
	if percent >= 0.99 {
		return 1
	}
	return pow(e.value, e.power*(percent-1)) * sin(percent*e.bounces) * e.scale
}

func (elasticIn) String() string { return "elasticIn" }

type elasticOut struct{ elasticParams }

// NewElasticOut returns an elastic ease-out curve.
func NewElasticOut(value, power float32, bounces int, scale float32) Interpolation {
	return elasticOut{newElasticParams(value, power, bounces, scale)}
}

func (e elasticOut) Interpolate(percent float32) float32 {
	if percent == 0 {
		return 0
	}
	a := 1 - percent
	return 1 - pow(e.value, e.power*(a-1))*sin(a*e.bounces)*e.scale
}

func (elasticOut) String() string { return "elasticOut" }

type expInOut struct {
	value, power float32
	floor, scale float32
}

func newExp(value, power float32) expInOut {
	floor := pow(value, -power)
	return expInOut{value: value, power: power, floor: floor, scale: 1 / (1 - floor)}
}

// NewExp returns an exponential ease-in-out curve.
func NewExp(value, power float32) Interpolation { return newExp(value, power) }

func (e expInOut) Interpolate(percent float32) float32 {
	if percent <= 0.5 {
		return (pow(e.value, e.power*(percent*2-1)) - e.floor) * e.scale / 2
	}
	return (2 - (pow(e.value, -e.power*(percent*2-1))-e.floor)*e.scale) / 2
}

func (e expInOut) String() string { return fmt.Sprintf("exp%g", e.power) }

type expIn struct{ expInOut }

// NewExpIn returns an exponential ease-in curve.
func NewExpIn(value, power float32) Interpolation { return expIn{newExp(value, power)} }

func (e expIn) Interpolate(percent float32) float32 {
	return (pow(e.value, e.power*(percent-1)) - e.floor) * e.scale
}

func (e expIn) String() string { return fmt.Sprintf("exp%gIn", e.power) }

type expOut struct{ expInOut }

// NewExpOut returns an exponential ease-out curve.
func NewExpOut(value, power float32) Interpolation { return expOut{newExp(value, power)} }

func (e expOut) Interpolate(percent float32) float32 {
	return 1 - (pow(e.value, -e.power*percent)-e.floor)*e.scale
}

func (e expOut) String() string { return fmt.Sprintf("exp%gOut", e.power) }

type swing struct{ scale float32 }

// NewSwing returns a curve that backs up at both ends. The scale is the
// amount of overshoot.
func NewSwing(scale float32) Interpolation { return swing{scale * 2} }

func (s swing) Interpolate(percent float32) float32 {
	a := percent
	if a <= 0.5 {
		a *= 2
		return a * a * ((s.scale+1)*a - s.scale) / 2
	}
	a--
	a *= 2
	return a*a*((s.scale+1)*a+s.scale)/2 + 1
}

func (swing) String() string { return "swing" }

type swingIn struct{ scale float32 }

// NewSwingIn returns a curve that backs up before moving forward.
func NewSwingIn(scale float32) Interpolation { return swingIn{scale} }

func (s swingIn) Interpolate(percent float32) float32 {
	return percent * percent * ((s.scale+1)*percent - s.scale)
}

func (swingIn) String() string { return "swingIn" }

type swingOut struct{ scale float32 }

// NewSwingOut returns a curve that overshoots the end before settling.
func NewSwingOut(scale float32) Interpolation { return swingOut{scale} }

func (s swingOut) Interpolate(percent float32) float32 {
	a := percent - 1
	return a*a*((s.scale+1)*a+s.scale) + 1
}

func (swingOut) String() string { return "swingOut" }

// bounceTable holds the width and height of each bounce.
type bounceTable struct {
	widths  []float32
	heights []float32
}

func newBounceTable(bounces int) (bounceTable, error) {
	if bounces < 2 || bounces > 5 {
		return bounceTable{}, fmt.Errorf("%w: %d", ErrBounces, bounces)
	}
	var t bounceTable
	switch bounces {
	case 2:
		t.widths = []float32{0.6, 0.4}
		t.heights = []float32{1, 0.33}
	case 3:
		t.widths = []float32{0.4, 0.4, 0.2}
		t.heights = []float32{1, 0.33, 0.1}
	case 4:
		t.widths = []float32{0.34, 0.34, 0.2, 0.15}
		t.heights = []float32{1, 0.26, 0.11, 0.03}
	case 5:
		t.widths = []float32{0.3, 0.3, 0.2, 0.1, 0.1}
		t.heights = []float32{1, 0.45, 0.3, 0.15, 0.06}
	}
	t.widths[0] *= 2
	return t, nil
}

func (t bounceTable) out(percent float32) float32 {
	a := percent
	if a == 1 {
		return 1
	}
	a += t.widths[0] / 2
	var width, height float32
	for i := range t.widths {
		width = t.widths[i]
		if a <= width {
			height = t.heights[i]
			break
		}
		a -= width
	}
	a /= width
	z := 4 / width * height * a
	return 1 - (z-z*a)*width
}

type bounceOut struct{ bounceTable }

// NewBounceOut returns a curve bouncing against the end value.
func NewBounceOut(bounces int) (Interpolation, error) {
	t, err := newBounceTable(bounces)
	if err != nil {
		return nil, err
	}
	return bounceOut{t}, nil
}

func (b bounceOut) Interpolate(percent float32) float32 { return b.out(percent) }
func (bounceOut) String() string                        { return "bounceOut" }

type bounceIn struct{ bounceTable }

// NewBounceIn returns a curve bouncing against the start value.
func NewBounceIn(bounces int) (Interpolation, error) {
	t, err := newBounceTable(bounces)
	if err != nil {
		return nil, err
	}
	return bounceIn{t}, nil
}

func (b bounceIn) Interpolate(percent float32) float32 { return 1 - b.out(1-percent) }
func (bounceIn) String() string                        { return "bounceIn" }

type bounce struct{ bounceTable }

// NewBounce returns a curve bouncing against both ends.
func NewBounce(bounces int) (Interpolation, error) {
	t, err := newBounceTable(bounces)
	if err != nil {
		return nil, err
	}
	return bounce{t}, nil
}

func (b bounce) half(a float32) float32 {
	test := a + b.widths[0]/2
	if test < b.widths[0] {
		return test/(b.widths[0]/2) - 1
	}
	return b.out(a)
}

func (b bounce) Interpolate(percent float32) float32 {
	if percent <= 0.5 {
		return (1 - b.half(1-percent*2)) / 2
	}
	return b.half(percent*2-1)/2 + 0.5
}

func (bounce) String() string { return "bounce" }
