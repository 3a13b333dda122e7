// Package interpolation provides easing curves that map a progress percentage
// in [0, 1] to an eased percentage, plus blending helpers for floats,
// quaternions and transformation matrices.
package interpolation

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknown = errors.New("interpolation: unknown interpolation")
	ErrBounces = errors.New("interpolation: bounces must be between 2 and 5")
)

// Interpolation maps a percentage to an eased percentage. Every provided
// implementation maps 0 to 0 and 1 to 1; values in between may overshoot.
type Interpolation interface {
	Interpolate(percent float32) float32
	String() string
}

// Apply maps percent into the range [a, b] through i.
func Apply(i Interpolation, a, b, percent float32) float32 {
	return a + (b-a)*i.Interpolate(percent)
}

var (
	Linear Interpolation = linear{}

	Pow2 = NewPow(2)
	Pow3 = NewPow(3)
	Pow4 = NewPow(4)
	Pow5 = NewPow(5)

	PowIn2 = NewPowIn(2)
	PowIn3 = NewPowIn(3)
	PowIn4 = NewPowIn(4)
	PowIn5 = NewPowIn(5)

	PowOut2 = NewPowOut(2)
	PowOut3 = NewPowOut(3)
	PowOut4 = NewPowOut(4)
	PowOut5 = NewPowOut(5)

	Sine    Interpolation = sine{}
	SineIn  Interpolation = sineIn{}
	SineOut Interpolation = sineOut{}

	Circle    Interpolation = circle{}
	CircleIn  Interpolation = circleIn{}
	CircleOut Interpolation = circleOut{}

	Elastic    = NewElastic(2, 10, 7, 1)
	ElasticIn  = NewElasticIn(2, 10, 6, 1)
	ElasticOut = NewElasticOut(2, 10, 7, 1)

	Swing    = NewSwing(1.5)
	SwingIn  = NewSwingIn(2)
	SwingOut = NewSwingOut(2)

	Bounce    = mustBounce(NewBounce(4))
	BounceIn  = mustBounce(NewBounceIn(4))
	BounceOut = mustBounce(NewBounceOut(4))

	Exp10    = NewExp(2, 10)
	Exp10In  = NewExpIn(2, 10)
	Exp10Out = NewExpOut(2, 10)

	Exp5    = NewExp(2, 5)
	Exp5In  = NewExpIn(2, 5)
	Exp5Out = NewExpOut(2, 5)
)

var builtins = []Interpolation{
	Pow2, Pow3, Pow4, Pow5,
	PowIn2, PowIn3, PowIn4, PowIn5,
	PowOut2, PowOut3, PowOut4, PowOut5,

	Sine, SineIn, SineOut,

	Circle, CircleIn, CircleOut,

	Elastic, ElasticIn, ElasticOut,

	Swing, SwingIn, SwingOut,

	Bounce, BounceIn, BounceOut,

	Exp10, Exp10In, Exp10Out,
	Exp5, Exp5In, Exp5Out,

	Linear,
}

var registry = struct {
	mu     sync.RWMutex
	byName map[string]Interpolation
}{byName: map[string]Interpolation{}}

func init() {
	for _, i := range builtins {
		Register(i)
	}
}

// All returns the built-in interpolations.
func All() []Interpolation {
	out := make([]Interpolation, len(builtins))
	copy(out, builtins)
	return out
}

// Register makes i available to ByName under i.String(). Registering a name
// twice replaces the previous interpolation.
func Register(i Interpolation) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.byName[i.String()] = i
}

// ByName returns the interpolation registered under name.
func ByName(name string) (Interpolation, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	if i, ok := registry.byName[name]; ok {
		return i, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Names returns every registered name in sorted order.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustBounce(i Interpolation, err error) Interpolation {
	if err != nil {
		panic(err)
	}
	return i
}
