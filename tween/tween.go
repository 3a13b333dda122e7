// Package tween interpolates values over time. A Tween moves a value of any
// Shape from a start to an end value over a duration, with optional looping,
// reversing and ping-pong. Tweens usually live in a Factory component and are
// advanced each tick by System.
package tween

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/interpolation"
)

// Flags control how a Tween behaves when it completes.
type Flags struct {
	// Reverse plays the tween from end to start.
	Reverse bool
	// Loop restarts the tween after it completes.
	Loop bool
	// PingPong flips Reverse every time the tween completes.
	PingPong bool
	// Enabled tweens are advanced by System. Update ignores it.
	Enabled bool
}

// Option configures the Flags of a new Tween.
type Option func(*Flags)

func WithReverse(reverse bool) Option   { return func(f *Flags) { f.Reverse = reverse } }
func WithLoop(loop bool) Option         { return func(f *Flags) { f.Loop = loop } }
func WithPingPong(pingpong bool) Option { return func(f *Flags) { f.PingPong = pingpong } }
func WithEnabled(enabled bool) Option   { return func(f *Flags) { f.Enabled = enabled } }

// Result is the outcome of one update.
type Result[T any] struct {
	Value   T
	Percent float32
}

// Runner is the type-erased view of a Tween used by Factory and System.
type Runner interface {
	// Advance updates the tween and returns its completion percentage.
	Advance(delta float32) float32
	Active() bool
	Restart()
}

// Tween interpolates between two values of T.
type Tween[T any] struct {
	Flags

	Duration      float32
	Interpolation interpolation.Interpolation

	shape   Shape[T]
	start   []float32
	end     []float32
	current []float32
	elapsed float32
	result  Result[T]
	bind    func(T)
}

// New creates an enabled tween. A nil interpolation means linear.
func New[T any](shape Shape[T], start, end T, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[T] {
	if i == nil {
		i = interpolation.Linear
	}
	n := shape.Channels()
	t := &Tween[T]{
		Flags:         Flags{Enabled: true},
		Duration:      duration,
		Interpolation: i,
		shape:         shape,
		start:         make([]float32, n),
		end:           make([]float32, n),
		current:       make([]float32, n),
	}
	for _, opt := range opts {
		opt(&t.Flags)
	}
	shape.Extract(start, t.start)
	shape.Extract(end, t.end)
	copy(t.current, t.start)
	t.result = Result[T]{Value: start}
	return t
}

// NewFloat creates a float32 tween.
func NewFloat(start, end, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[float32] {
	return New(Float, start, end, duration, i, opts...)
}

// NewVec2 creates an mgl32.Vec2 tween.
func NewVec2(start, end mgl32.Vec2, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[mgl32.Vec2] {
	return New(Vec2, start, end, duration, i, opts...)
}

// NewVec3 creates an mgl32.Vec3 tween.
func NewVec3(start, end mgl32.Vec3, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[mgl32.Vec3] {
	return New(Vec3, start, end, duration, i, opts...)
}

// NewQuat creates a rotation tween.
func NewQuat(start, end mgl32.Quat, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[mgl32.Quat] {
	return New(Quat, start, end, duration, i, opts...)
}

// Update advances the tween by delta seconds and returns the new value.
//
// Elapsed time is clamped to [0, Duration]; a non-positive duration completes
// at once. On completion Loop restarts the clock and PingPong flips Reverse.
// Both may apply on the same update.
func (t *Tween[T]) Update(delta float32) Result[T] {
	t.elapsed += delta
	if t.elapsed > t.Duration {
		t.elapsed = t.Duration
	}
	if t.elapsed < 0 {
		t.elapsed = 0
	}

	percent := float32(1)
	if t.Duration > 0 {
		percent = t.elapsed / t.Duration
	}

	progress := percent
	if t.Reverse {
		progress = 1 - percent
	}

	eased := t.Interpolation.Interpolate(progress)
	for i := range t.current {
		t.current[i] = t.start[i] + (t.end[i]-t.start[i])*eased
	}
	value := t.shape.Build(t.current)

	if percent >= 1 && t.Loop {
		t.elapsed = 0
	}
	if percent >= 1 && t.PingPong {
		t.Reverse = !t.Reverse
	}

	t.result = Result[T]{Value: value, Percent: percent}
	if t.bind != nil {
		t.bind(value)
	}
	return t.result
}

// Reset rewinds the tween to its start value.
func (t *Tween[T]) Reset() *Tween[T] {
	t.elapsed = 0
	copy(t.current, t.start)
	value := t.shape.Build(t.current)
	t.result = Result[T]{Value: value}
	if t.bind != nil {
		t.bind(value)
	}
	return t
}

// SetStart replaces the start value. The current value is left untouched
// until the next update.
func (t *Tween[T]) SetStart(value T) *Tween[T] {
	t.shape.Extract(value, t.start)
	return t
}

// SetEnd replaces the end value.
func (t *Tween[T]) SetEnd(value T) *Tween[T] {
	t.shape.Extract(value, t.end)
	return t
}

// Bind registers fn to receive every value produced by Update and Reset.
func (t *Tween[T]) Bind(fn func(T)) *Tween[T] {
	t.bind = fn
	return t
}

// Current returns the result of the last update.
func (t *Tween[T]) Current() Result[T] {
	return t.result
}

// Elapsed returns the time accumulated in the current cycle.
func (t *Tween[T]) Elapsed() float32 {
	return t.elapsed
}

// Advance implements Runner.
func (t *Tween[T]) Advance(delta float32) float32 {
	return t.Update(delta).Percent
}

// Active implements Runner.
func (t *Tween[T]) Active() bool {
	return t.Enabled
}

// Restart implements Runner.
func (t *Tween[T]) Restart() {
	t.Reset()
}
