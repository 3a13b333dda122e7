package interpolation

import (
	"github.com/tanema/gween/ease"
)

type eased struct {
	name string
	fn   ease.TweenFunc
}

// Ease adapts a gween easing function. The function is evaluated over a unit
// range and a unit duration, so percent flows straight through it.
func Ease(name string, fn ease.TweenFunc) Interpolation {
	return eased{name: name, fn: fn}
}

func (e eased) Interpolate(percent float32) float32 { return e.fn(percent, 0, 1, 1) }
func (e eased) String() string                      { return e.name }

// gween easings registered under their gween names, next to the built-ins.
func init() {
	for name, fn := range map[string]ease.TweenFunc{
		"inQuad":       ease.InQuad,
		"outQuad":      ease.OutQuad,
		"inOutQuad":    ease.InOutQuad,
		"inCubic":      ease.InCubic,
		"outCubic":     ease.OutCubic,
		"inOutCubic":   ease.InOutCubic,
		"inQuart":      ease.InQuart,
		"outQuart":     ease.OutQuart,
		"inOutQuart":   ease.InOutQuart,
		"inQuint":      ease.InQuint,
		"outQuint":     ease.OutQuint,
		"inOutQuint":   ease.InOutQuint,
		"inSine":       ease.InSine,
		"outSine":      ease.OutSine,
		"inOutSine":    ease.InOutSine,
		"inExpo":       ease.InExpo,
		"outExpo":      ease.OutExpo,
		"inOutExpo":    ease.InOutExpo,
		"inCirc":       ease.InCirc,
		"outCirc":      ease.OutCirc,
		"inOutCirc":    ease.InOutCirc,
		"inBack":       ease.InBack,
		"outBack":      ease.OutBack,
		"inOutBack":    ease.InOutBack,
		"inBounce":     ease.InBounce,
		"outBounce":    ease.OutBounce,
		"inOutBounce":  ease.InOutBounce,
		"inElastic":    ease.InElastic,
		"outElastic":   ease.OutElastic,
		"inOutElastic": ease.InOutElastic,
	} {
		Register(Ease(name, fn))
	}
}
