package mathutil

import "errors"

var (
	// ErrInvalidBounds is returned when a bound pair would put max below min.
	ErrInvalidBounds = errors.New("max bound is below min bound")
	// ErrTooLow is returned when a starting value sits below the min bound.
	ErrTooLow = errors.New("value is below min bound")
	// ErrTooHigh is returned when a starting value sits above the max bound.
	ErrTooHigh = errors.New("value is above max bound")
)

// BoundedFloat is a float64 held inside an inclusive [min, max] range.
// Construction is strict: out-of-range inputs are errors. Arithmetic on an
// already valid value is lenient: results saturate to the bounds instead of
// erroring. Value semantics throughout; every method returns a new value.
type BoundedFloat struct {
	current float64
	min     float64
	max     float64
}

// NewBoundedFloat builds a BoundedFloat over [min, max] starting at current.
func NewBoundedFloat(current, min, max float64) (BoundedFloat, error) {
	if max < min {
		return BoundedFloat{}, ErrInvalidBounds
	}
	if current < min {
		return BoundedFloat{}, ErrTooLow
	}
	if current > max {
		return BoundedFloat{}, ErrTooHigh
	}
	return BoundedFloat{current: current, min: min, max: max}, nil
}

// NewZeroMin builds a BoundedFloat over [0, max], the common case for
// stats like hit points and capacity gauges.
func NewZeroMin(current, max float64) (BoundedFloat, error) {
	return NewBoundedFloat(current, 0, max)
}

// Current returns the held value, guaranteed inside [Min, Max].
func (b BoundedFloat) Current() float64 { return b.current }

// Min returns the lower bound.
func (b BoundedFloat) Min() float64 { return b.min }

// Max returns the upper bound.
func (b BoundedFloat) Max() float64 { return b.max }

// Remaining returns the headroom between the current value and the max bound.
func (b BoundedFloat) Remaining() float64 { return b.max - b.current }

// Add returns the value increased by v, saturating at the max bound.
func (b BoundedFloat) Add(v float64) BoundedFloat { return b.clamped(b.current + v) }

// Sub returns the value decreased by v, saturating at the min bound.
func (b BoundedFloat) Sub(v float64) BoundedFloat { return b.clamped(b.current - v) }

// Mul returns the value multiplied by v, saturating at the bounds.
func (b BoundedFloat) Mul(v float64) BoundedFloat { return b.clamped(b.current * v) }

// Div returns the value divided by v, saturating at the bounds.
func (b BoundedFloat) Div(v float64) BoundedFloat { return b.clamped(b.current / v) }

// WithMax rebinds the upper bound. The current value re-clamps into the new
// range. Fails if the new max would sit below min.
func (b BoundedFloat) WithMax(max float64) (BoundedFloat, error) {
	if max < b.min {
		return BoundedFloat{}, ErrInvalidBounds
	}
	b.max = max
	return b.clamped(b.current), nil
}

// WithMin rebinds the lower bound. The current value re-clamps into the new
// range. Fails if the new min would sit above max.
func (b BoundedFloat) WithMin(min float64) (BoundedFloat, error) {
	if b.max < min {
		return BoundedFloat{}, ErrInvalidBounds
	}
	b.min = min
	return b.clamped(b.current), nil
}

func (b BoundedFloat) clamped(v float64) BoundedFloat {
	if v < b.min {
		v = b.min
	}
	if v > b.max {
		v = b.max
	}
	b.current = v
	return b
}
